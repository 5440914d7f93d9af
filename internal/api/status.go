package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system status payload.
type StatusResponse struct {
	Initialized   bool   `json:"initialized"`
	Objects       int    `json:"objects"`
	Products      int    `json:"products"`
	LastImport    string `json:"lastImport,omitempty"`
	BlacklistSize int    `json:"blacklistSize"`
}

// GetStatus reports whether any catalog exists and how big it is.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	objects, err := h.store.ListObjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	products, err := h.store.CountProducts()
	if err != nil {
		products = 0
	}

	patterns, err := h.store.ListBlacklist()
	blacklistSize := 0
	if err == nil {
		blacklistSize = len(patterns)
	}

	resp := StatusResponse{
		Initialized:   len(objects) > 0,
		Objects:       len(objects),
		Products:      products,
		BlacklistSize: blacklistSize,
	}

	if logs, err := h.store.ListImportLogs(1); err == nil && len(logs) > 0 {
		resp.LastImport = logs[0].CreatedAt.Format("2006-01-02 15:04:05")
	}

	c.JSON(http.StatusOK, resp)
}
