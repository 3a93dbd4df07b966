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

type createContentBlockRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value string  `json:"value" binding:"required"`
	Type  *string `json:"type"`
}

type updateContentBlockRequest struct {
	Value *string `json:"value"`
	Type  *string `json:"type"`
}

func (h HandlerSet) ListContentBlocks(c *gin.Context) {
	blocks, err := h.cols.Content.List(c.Request.Context(), store.Query{Limit: 100})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

func (h HandlerSet) GetContentBlock(c *gin.Context) {
	block, err := h.cols.Content.Get(c.Request.Context(), "key", c.Param("key"))
	if err != nil {
		h.notFound(c, err, "Content block not found")
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h HandlerSet) CreateContentBlock(c *gin.Context) {
	var req createContentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.cols.Content.Get(ctx, "key", req.Key); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content block with this key already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, err)
		return
	}

	block := models.ContentBlock{
		ID:        uuid.NewString(),
		Key:       req.Key,
		Value:     req.Value,
		Type:      "text",
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if req.Type != nil {
		block.Type = *req.Type
	}

	if err := h.cols.Content.Insert(ctx, block); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h HandlerSet) UpdateContentBlock(c *gin.Context) {
	var req updateContentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.Patch{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Value != nil {
		patch["value"] = *req.Value
	}
	if req.Type != nil {
		patch["type"] = *req.Type
	}

	block, err := h.cols.Content.Update(c.Request.Context(), "key", c.Param("key"), patch)
	if err != nil {
		h.notFound(c, err, "Content block not found")
		return
	}
	c.JSON(http.StatusOK, block)
}
