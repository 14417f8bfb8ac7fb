package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tfgkk/schoolcomp/internal/api/models"
	"github.com/tfgkk/schoolcomp/internal/database"
	"gorm.io/gorm"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks a username/password pair against the stored account.
// Any failure, whether the account is missing or the password is wrong,
// yields the same 401 so the response never reveals which part failed.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up account"})
		return
	}
	if user == nil || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "account or password incorrect"})
		return
	}

	c.JSON(http.StatusOK, models.FromDatabaseUser(*user))
}

// Register creates a new account. Accounts registered without a role become
// students. Username uniqueness is enforced by the storage constraint.
func (h *Handler) Register(c *gin.Context) {
	var user database.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if user.Role == "" {
		user.Role = "student"
	}

	if err := h.db.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	// Parity with the original API: the stored record is echoed back,
	// password included.
	c.JSON(http.StatusOK, user)
}
