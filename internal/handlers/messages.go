package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/service"
	"imacms/api/internal/store"
)

type createMessageRequest struct {
	Name                string  `json:"name" binding:"required"`
	Email               string  `json:"email" binding:"required,email"`
	Subject             *string `json:"subject"`
	Message             string  `json:"message" binding:"required"`
	SubscribeNewsletter bool    `json:"subscribe_newsletter"`
}

func (h HandlerSet) ListMessages(c *gin.Context) {
	messages, err := h.cols.Messages.List(c.Request.Context(), store.Query{
		Sort:  &store.Sort{Field: "created_at", Desc: true},
		Limit: 100,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h HandlerSet) CreateMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Create(c.Request.Context(), service.CreateMessageInput{
		Name:                req.Name,
		Email:               req.Email,
		Subject:             req.Subject,
		Message:             req.Message,
		SubscribeNewsletter: req.SubscribeNewsletter,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h HandlerSet) MarkMessageRead(c *gin.Context) {
	_, err := h.cols.Messages.Update(c.Request.Context(), "id", c.Param("id"), store.Patch{"is_read": true})
	if err != nil {
		h.notFound(c, err, "Message not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

func (h HandlerSet) DeleteMessage(c *gin.Context) {
	if err := h.cols.Messages.Delete(c.Request.Context(), "id", c.Param("id")); err != nil {
		h.notFound(c, err, "Message not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
