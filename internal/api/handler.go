package api

import (
	"github.com/gin-gonic/gin"

	"prodtrack/internal/config"
	"prodtrack/internal/store"
)

// Handler serves the JSON API.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
}

// NewHandler creates the API handler.
func NewHandler(store *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)

	// Specification import
	router.POST("/import", h.Import)
	router.GET("/import/logs", h.ListImportLogs)

	// Catalog
	router.GET("/objects", h.ListObjects)
	router.GET("/objects/:id", h.GetObject)
	router.DELETE("/objects/:id", h.DeleteObject)

	// Blacklist management
	router.GET("/blacklist", h.ListBlacklist)
	router.POST("/blacklist", h.AddBlacklistPattern)
	router.DELETE("/blacklist/:id", h.DeleteBlacklistPattern)

	// Configuration
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
}
