package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/store"
)

type updateSettingsRequest struct {
	SiteName     *string `json:"site_name"`
	LogoURL      *string `json:"logo_url"`
	FaviconURL   *string `json:"favicon_url"`
	PrimaryColor *string `json:"primary_color"`
	FooterText   *string `json:"footer_text"`
}

func (r updateSettingsRequest) patch() store.Patch {
	patch := store.Patch{}
	if r.SiteName != nil {
		patch["site_name"] = *r.SiteName
	}
	if r.LogoURL != nil {
		patch["logo_url"] = *r.LogoURL
	}
	if r.FaviconURL != nil {
		patch["favicon_url"] = *r.FaviconURL
	}
	if r.PrimaryColor != nil {
		patch["primary_color"] = *r.PrimaryColor
	}
	if r.FooterText != nil {
		patch["footer_text"] = *r.FooterText
	}
	return patch
}

func (h HandlerSet) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h HandlerSet) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req.patch())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
