package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/tfgkk/schoolcomp/internal/database"
	"gorm.io/gorm"
)

// ListRegistrations returns every registration for the competition given by
// the competitionId query parameter.
func (h *Handler) ListRegistrations(c *gin.Context) {
	raw, err := strconv.ParseUint(c.Query("competitionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competitionId"})
		return
	}
	competitionID, err := safecast.ToUint(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competitionId"})
		return
	}

	registrations, err := h.db.GetRegistrationsByCompetition(c.Request.Context(), competitionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}
	c.JSON(http.StatusOK, registrations)
}

// CreateRegistration submits a registration. A student may hold at most one
// registration per competition: the existence check gives the friendly
// rejection, the unique index catches concurrent duplicates.
func (h *Handler) CreateRegistration(c *gin.Context) {
	var registration database.Registration
	if err := c.ShouldBindJSON(&registration); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	exists, err := h.db.RegistrationExists(c.Request.Context(), registration.CompetitionID, registration.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check registration"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "already registered for this competition"})
		return
	}

	if err := h.db.CreateRegistration(c.Request.Context(), &registration); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "already registered for this competition"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create registration"})
		return
	}
	c.JSON(http.StatusOK, registration)
}

// AuditRegistration sets the audit status of a registration.
func (h *Handler) AuditRegistration(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	status, err := strconv.Atoi(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	registration, err := h.db.GetRegistrationByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up registration"})
		return
	}
	if registration == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "registration not found"})
		return
	}

	registration.Status = status
	if err := h.db.UpdateRegistration(c.Request.Context(), registration); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update registration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "audit saved"})
}

// DeleteRegistration removes a single registration. The delete is
// unconditional and always acknowledged, even for ids that never existed.
func (h *Handler) DeleteRegistration(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteRegistration(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration deleted"})
}
