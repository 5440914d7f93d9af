package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prodtrack/internal/config"
)

// ConfigResponse exposes the import-relevant configuration.
type ConfigResponse struct {
	SheetName   string `json:"sheetName"`
	StartRow    int    `json:"startRow"`
	MarkerColor string `json:"markerColor"`
}

// GetConfig returns the current import configuration.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		SheetName:   h.cfg.Import.SheetName,
		StartRow:    h.cfg.Import.StartRow,
		MarkerColor: h.cfg.Import.MarkerColor,
	})
}

// UpdateConfigRequest allows partial updates of the import settings.
type UpdateConfigRequest struct {
	SheetName   *string `json:"sheetName"`
	StartRow    *int    `json:"startRow"`
	MarkerColor *string `json:"markerColor"`
}

// UpdateConfig patches the import configuration and persists it to
// config.toml. Changes apply to subsequent import runs.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.SheetName != nil && *req.SheetName != "" {
		h.cfg.Import.SheetName = *req.SheetName
	}
	if req.StartRow != nil && *req.StartRow > 0 {
		h.cfg.Import.StartRow = *req.StartRow
	}
	if req.MarkerColor != nil && *req.MarkerColor != "" {
		h.cfg.Import.MarkerColor = *req.MarkerColor
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{
		SheetName:   h.cfg.Import.SheetName,
		StartRow:    h.cfg.Import.StartRow,
		MarkerColor: h.cfg.Import.MarkerColor,
	})
}
