package handler

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/tfgkk/schoolcomp/internal/api/models"
	"github.com/tfgkk/schoolcomp/internal/database"
	"github.com/tfgkk/schoolcomp/internal/spreadsheet"
)

// ListUsers returns all accounts without their passwords.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, models.FromDatabaseUsers(users))
}

// DeleteUser removes an account. Unlike registration deletes, a missing
// account is reported as 404.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type profileRequest struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile overwrites name and phone of an account. Username, password
// and role are untouched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

type passwordRequest struct {
	ID          *uint  `json:"id"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdatePassword changes an account password after verifying the old one.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user id is required"})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), *req.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if user.Password != req.OldPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "old password is incorrect"})
		return
	}

	user.Password = req.NewPassword
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type accountRequest struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateStudentAccount lets a student change username and/or password.
// Both fields are optional and applied independently; a new username must
// not belong to a different account.
func (h *Handler) UpdateStudentAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		existing, err := h.db.GetUserByUsername(c.Request.Context(), username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check username"})
			return
		}
		if existing != nil && existing.ID != user.ID {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username already taken"})
			return
		}
		user.Username = username
	}
	if strings.TrimSpace(req.Password) != "" {
		user.Password = req.Password
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account updated, please log in again"})
}

// ImportUsers bulk-creates student accounts from an uploaded xlsx file.
// Rows without a phone number and rows whose phone already exists as a
// username are skipped; the phone becomes both username and initial
// password. A single summary is returned either way.
func (h *Handler) ImportUsers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close() //nolint: errcheck

	rows, err := spreadsheet.ParseRows(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse spreadsheet"})
		return
	}
	rows = lo.Filter(rows, func(row spreadsheet.Row, _ int) bool {
		return strings.TrimSpace(row.Phone) != ""
	})

	var created, skipped int
	for _, row := range rows {
		existing, err := h.db.GetUserByUsername(c.Request.Context(), row.Phone)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check account"})
			return
		}
		if existing != nil {
			skipped++
			continue
		}

		student := database.User{
			Username: row.Phone,
			Password: row.Phone,
			Role:     "student",
			Name:     row.Name,
			Phone:    row.Phone,
		}
		if err := h.db.CreateUser(c.Request.Context(), &student); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}
		created++
	}

	log.Info("student import finished", "created", created, "skipped", skipped)
	c.JSON(http.StatusOK, gin.H{"message": "import finished, duplicate accounts skipped"})
}

// DownloadTemplate streams an empty import sheet with the two importable
// columns and no data rows.
func (h *Handler) DownloadTemplate(c *gin.Context) {
	data, err := spreadsheet.RenderTemplate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render template"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+spreadsheet.TemplateFilename+`"`)
	c.Data(http.StatusOK, spreadsheet.ContentType, data)
}
