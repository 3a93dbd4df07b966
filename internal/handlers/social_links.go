package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

type createSocialLinkRequest struct {
	Platform     string `json:"platform" binding:"required"`
	URL          string `json:"url" binding:"required"`
	IsVisible    *bool  `json:"is_visible"`
	DisplayOrder *int   `json:"display_order"`
}

type updateSocialLinkRequest struct {
	Platform     *string `json:"platform"`
	URL          *string `json:"url"`
	IsVisible    *bool   `json:"is_visible"`
	DisplayOrder *int    `json:"display_order"`
}

func (r updateSocialLinkRequest) patch() store.Patch {
	patch := store.Patch{}
	if r.Platform != nil {
		patch["platform"] = *r.Platform
	}
	if r.URL != nil {
		patch["url"] = *r.URL
	}
	if r.IsVisible != nil {
		patch["is_visible"] = *r.IsVisible
	}
	if r.DisplayOrder != nil {
		patch["display_order"] = *r.DisplayOrder
	}
	return patch
}

func (h HandlerSet) ListSocialLinks(c *gin.Context) {
	filter := store.Filter{}
	if boolQuery(c, "visible_only", false) {
		filter["is_visible"] = true
	}

	links, err := h.cols.SocialLinks.List(c.Request.Context(), store.Query{
		Filter: filter,
		Sort:   &store.Sort{Field: "display_order", Numeric: true},
		Limit:  20,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h HandlerSet) CreateSocialLink(c *gin.Context) {
	var req createSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link := models.SocialLink{
		ID:        uuid.NewString(),
		Platform:  req.Platform,
		URL:       req.URL,
		IsVisible: true,
	}
	if req.IsVisible != nil {
		link.IsVisible = *req.IsVisible
	}
	if req.DisplayOrder != nil {
		link.DisplayOrder = *req.DisplayOrder
	}

	if err := h.cols.SocialLinks.Insert(c.Request.Context(), link); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h HandlerSet) UpdateSocialLink(c *gin.Context) {
	var req updateSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.cols.SocialLinks.Update(c.Request.Context(), "id", c.Param("id"), req.patch())
	if err != nil {
		h.notFound(c, err, "Social link not found")
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h HandlerSet) DeleteSocialLink(c *gin.Context) {
	if err := h.cols.SocialLinks.Delete(c.Request.Context(), "id", c.Param("id")); err != nil {
		h.notFound(c, err, "Social link not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Social link deleted"})
}
