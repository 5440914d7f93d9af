package api

import (
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListBlacklist returns the ignore patterns.
// GET /api/blacklist
func (h *Handler) ListBlacklist(c *gin.Context) {
	patterns, err := h.store.ListBlacklist()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}

// AddBlacklistRequest is the body of a pattern creation.
type AddBlacklistRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

// AddBlacklistPattern stores a new ignore pattern. The pattern must be
// valid glob syntax; it takes effect on the next import run.
// POST /api/blacklist
func (h *Handler) AddBlacklistPattern(c *gin.Context) {
	var req AddBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern is required"})
		return
	}

	if _, err := path.Match(req.Pattern, ""); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid glob pattern"})
		return
	}

	pattern, err := h.store.AddBlacklistPattern(req.Pattern)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pattern)
}

// DeleteBlacklistPattern removes a pattern by id.
// DELETE /api/blacklist/:id
func (h *Handler) DeleteBlacklistPattern(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pattern id"})
		return
	}

	if err := h.store.DeleteBlacklistPattern(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
