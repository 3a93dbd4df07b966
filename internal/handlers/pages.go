package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

type createPageRequest struct {
	Title           string           `json:"title" binding:"required"`
	Slug            string           `json:"slug" binding:"required"`
	MetaTitle       *string          `json:"meta_title"`
	MetaDescription *string          `json:"meta_description"`
	IsPublished     *bool            `json:"is_published"`
	Sections        []map[string]any `json:"sections"`
}

type updatePageRequest struct {
	Title           *string           `json:"title"`
	Slug            *string           `json:"slug"`
	MetaTitle       *string           `json:"meta_title"`
	MetaDescription *string           `json:"meta_description"`
	IsPublished     *bool             `json:"is_published"`
	Sections        *[]map[string]any `json:"sections"`
}

func (r updatePageRequest) patch() store.Patch {
	patch := store.Patch{}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Slug != nil {
		patch["slug"] = *r.Slug
	}
	if r.MetaTitle != nil {
		patch["meta_title"] = *r.MetaTitle
	}
	if r.MetaDescription != nil {
		patch["meta_description"] = *r.MetaDescription
	}
	if r.IsPublished != nil {
		patch["is_published"] = *r.IsPublished
	}
	if r.Sections != nil {
		patch["sections"] = *r.Sections
	}
	return patch
}

func (h HandlerSet) ListPages(c *gin.Context) {
	filter := store.Filter{}
	if boolQuery(c, "published_only", false) {
		filter["is_published"] = true
	}

	pages, err := h.cols.Pages.List(c.Request.Context(), store.Query{Filter: filter, Limit: 100})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

func (h HandlerSet) GetPage(c *gin.Context) {
	page, err := h.cols.Pages.Get(c.Request.Context(), "slug", c.Param("slug"))
	if err != nil {
		h.notFound(c, err, "Page not found")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h HandlerSet) CreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.cols.Pages.Get(ctx, "slug", req.Slug); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Page with this slug already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, err)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	page := models.Page{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Slug:            req.Slug,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     true,
		Sections:        req.Sections,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if page.Sections == nil {
		page.Sections = []map[string]any{}
	}

	if err := h.cols.Pages.Insert(ctx, page); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h HandlerSet) UpdatePage(c *gin.Context) {
	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := req.patch()
	patch["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	page, err := h.cols.Pages.Update(c.Request.Context(), "id", c.Param("id"), patch)
	if err != nil {
		h.notFound(c, err, "Page not found")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h HandlerSet) DeletePage(c *gin.Context) {
	if err := h.cols.Pages.Delete(c.Request.Context(), "id", c.Param("id")); err != nil {
		h.notFound(c, err, "Page not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}
