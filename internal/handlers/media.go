package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/service"
)

func (h HandlerSet) UploadMedia(c *gin.Context) {
	if h.mediaService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	upload, err := h.mediaService.Upload(c.Request.Context(), file, header)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMedia) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported media type"})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}
