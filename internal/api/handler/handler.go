// Package handler contains the gin handlers for the registration portal.
package handler

import (
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/tfgkk/schoolcomp/internal/database"
)

// Handler serves the portal API. Every operation is one or two repository
// calls against the shared store; there is no other state.
type Handler struct {
	db database.DB
}

// New creates a new handler backed by the given store.
func New(db database.DB) *Handler {
	return &Handler{db: db}
}

// pathID parses the :id path parameter. On failure it writes a 400 response
// and returns false.
func pathID(c *gin.Context) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	id, err := safecast.ToUint(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
