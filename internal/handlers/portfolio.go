package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

type createPortfolioRequest struct {
	Title        string   `json:"title" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	ToolsUsed    []string `json:"tools_used"`
	MediaType    *string  `json:"media_type"`
	MediaURL     *string  `json:"media_url"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	IsFeatured   *bool    `json:"is_featured"`
	IsPublished  *bool    `json:"is_published"`
}

type updatePortfolioRequest struct {
	Title        *string   `json:"title"`
	Category     *string   `json:"category"`
	Description  *string   `json:"description"`
	ToolsUsed    *[]string `json:"tools_used"`
	MediaType    *string   `json:"media_type"`
	MediaURL     *string   `json:"media_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	IsFeatured   *bool     `json:"is_featured"`
	IsPublished  *bool     `json:"is_published"`
}

func (r updatePortfolioRequest) patch() store.Patch {
	patch := store.Patch{}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Category != nil {
		patch["category"] = *r.Category
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.ToolsUsed != nil {
		patch["tools_used"] = *r.ToolsUsed
	}
	if r.MediaType != nil {
		patch["media_type"] = *r.MediaType
	}
	if r.MediaURL != nil {
		patch["media_url"] = *r.MediaURL
	}
	if r.ThumbnailURL != nil {
		patch["thumbnail_url"] = *r.ThumbnailURL
	}
	if r.IsFeatured != nil {
		patch["is_featured"] = *r.IsFeatured
	}
	if r.IsPublished != nil {
		patch["is_published"] = *r.IsPublished
	}
	return patch
}

func (h HandlerSet) ListPortfolio(c *gin.Context) {
	filter := store.Filter{}
	if boolQuery(c, "published_only", true) {
		filter["is_published"] = true
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if boolQuery(c, "featured_only", false) {
		filter["is_featured"] = true
	}

	items, err := h.cols.Portfolio.List(c.Request.Context(), store.Query{
		Filter: filter,
		Sort:   &store.Sort{Field: "created_at", Desc: true},
		Limit:  100,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h HandlerSet) GetPortfolioItem(c *gin.Context) {
	item, err := h.cols.Portfolio.Get(c.Request.Context(), "id", c.Param("id"))
	if err != nil {
		h.notFound(c, err, "Portfolio item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) CreatePortfolioItem(c *gin.Context) {
	var req createPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item := models.PortfolioItem{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		ToolsUsed:    req.ToolsUsed,
		MediaType:    req.MediaType,
		MediaURL:     req.MediaURL,
		ThumbnailURL: req.ThumbnailURL,
		IsFeatured:   false,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}
	if item.ToolsUsed == nil {
		item.ToolsUsed = []string{}
	}

	if err := h.cols.Portfolio.Insert(c.Request.Context(), item); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) UpdatePortfolioItem(c *gin.Context) {
	var req updatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := req.patch()
	patch["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	item, err := h.cols.Portfolio.Update(c.Request.Context(), "id", c.Param("id"), patch)
	if err != nil {
		h.notFound(c, err, "Portfolio item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) DeletePortfolioItem(c *gin.Context) {
	if err := h.cols.Portfolio.Delete(c.Request.Context(), "id", c.Param("id")); err != nil {
		h.notFound(c, err, "Portfolio item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}
