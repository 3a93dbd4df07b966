package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

type createNavItemRequest struct {
	Label        string `json:"label" binding:"required"`
	Href         string `json:"href" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
	IsVisible    *bool  `json:"is_visible"`
	IsExternal   *bool  `json:"is_external"`
}

type updateNavItemRequest struct {
	Label        *string `json:"label"`
	Href         *string `json:"href"`
	DisplayOrder *int    `json:"display_order"`
	IsVisible    *bool   `json:"is_visible"`
	IsExternal   *bool   `json:"is_external"`
}

func (r updateNavItemRequest) patch() store.Patch {
	patch := store.Patch{}
	if r.Label != nil {
		patch["label"] = *r.Label
	}
	if r.Href != nil {
		patch["href"] = *r.Href
	}
	if r.DisplayOrder != nil {
		patch["display_order"] = *r.DisplayOrder
	}
	if r.IsVisible != nil {
		patch["is_visible"] = *r.IsVisible
	}
	if r.IsExternal != nil {
		patch["is_external"] = *r.IsExternal
	}
	return patch
}

func (h HandlerSet) ListNavItems(c *gin.Context) {
	filter := store.Filter{}
	if boolQuery(c, "visible_only", false) {
		filter["is_visible"] = true
	}

	items, err := h.cols.Navigation.List(c.Request.Context(), store.Query{
		Filter: filter,
		Sort:   &store.Sort{Field: "display_order", Numeric: true},
		Limit:  20,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h HandlerSet) CreateNavItem(c *gin.Context) {
	var req createNavItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.NavItem{
		ID:        uuid.NewString(),
		Label:     req.Label,
		Href:      req.Href,
		IsVisible: true,
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsVisible != nil {
		item.IsVisible = *req.IsVisible
	}
	if req.IsExternal != nil {
		item.IsExternal = *req.IsExternal
	}

	if err := h.cols.Navigation.Insert(c.Request.Context(), item); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) UpdateNavItem(c *gin.Context) {
	var req updateNavItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.cols.Navigation.Update(c.Request.Context(), "id", c.Param("id"), req.patch())
	if err != nil {
		h.notFound(c, err, "Navigation item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) DeleteNavItem(c *gin.Context) {
	if err := h.cols.Navigation.Delete(c.Request.Context(), "id", c.Param("id")); err != nil {
		h.notFound(c, err, "Navigation item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Navigation item deleted"})
}
