package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Seed(c *gin.Context) {
	seeded, err := h.seedService.Run(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Data already seeded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sample data seeded successfully"})
}
