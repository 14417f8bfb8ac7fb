package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tfgkk/schoolcomp/internal/database"
)

// ListCompetitions returns all competitions newest-first, optionally
// narrowed by a keyword matching title or description.
func (h *Handler) ListCompetitions(c *gin.Context) {
	competitions, err := h.db.GetCompetitions(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list competitions"})
		return
	}
	c.JSON(http.StatusOK, competitions)
}

// CreateCompetition publishes a new competition as given.
func (h *Handler) CreateCompetition(c *gin.Context) {
	var competition database.Competition
	if err := c.ShouldBindJSON(&competition); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.db.CreateCompetition(c.Request.Context(), &competition); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create competition"})
		return
	}
	c.JSON(http.StatusOK, competition)
}

// DeleteCompetition removes a competition and every registration that
// references it in a single transaction.
func (h *Handler) DeleteCompetition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteCompetitionCascade(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete competition"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "competition deleted"})
}
