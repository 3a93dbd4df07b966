package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/store"
)

func (h HandlerSet) ListLeads(c *gin.Context) {
	leads, err := h.cols.Leads.List(c.Request.Context(), store.Query{
		Sort:  &store.Sort{Field: "created_at", Desc: true},
		Limit: 500,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}
