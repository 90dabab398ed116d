package handlers

import (
	"net/http"

	"invoice-service/internal/models"
	"invoice-service/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService services.ISettingsService
}

func NewSettingsHandler(settingsService services.ISettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settingsGr := router.Group("/settings")
	settingsGr.POST("", h.CreateSettings)
	settingsGr.GET("", h.GetSettings)
	settingsGr.GET("/details", h.GetDetails)
	settingsGr.PUT("/:id", h.UpdateSettings)
	settingsGr.DELETE("/:id", h.DeleteSettings)
}

// CreateSettings accepts JSON or a multipart form carrying branding images.
func (h *SettingsHandler) CreateSettings(c *gin.Context) {
	var req models.SettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.settingsService.CreateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, settings)
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, settings)
}

func (h *SettingsHandler) GetDetails(c *gin.Context) {
	details, err := h.settingsService.GetDetails(c.Request.Context(), c.Query("company_id"), c.Query("bank_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, details)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.SettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, settings)
}

func (h *SettingsHandler) DeleteSettings(c *gin.Context) {
	if err := h.settingsService.DeleteSettings(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Settings deleted successfully")
}
