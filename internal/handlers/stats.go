package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/store"
)

func (h HandlerSet) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioCount, err := h.cols.Portfolio.Count(ctx, nil)
	if err != nil {
		h.internalError(c, err)
		return
	}
	pagesCount, err := h.cols.Pages.Count(ctx, nil)
	if err != nil {
		h.internalError(c, err)
		return
	}
	messagesCount, err := h.cols.Messages.Count(ctx, nil)
	if err != nil {
		h.internalError(c, err)
		return
	}
	unreadCount, err := h.cols.Messages.Count(ctx, store.Filter{"is_read": false})
	if err != nil {
		h.internalError(c, err)
		return
	}
	leadsCount, err := h.cols.Leads.Count(ctx, nil)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio_items": portfolioCount,
		"pages":           pagesCount,
		"messages":        messagesCount,
		"unread_messages": unreadCount,
		"leads":           leadsCount,
	})
}
