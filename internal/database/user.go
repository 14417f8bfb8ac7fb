package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a login account.
// The role tag distinguishes administrators from students but is not
// enforced anywhere; it only informs the frontend.
// Passwords are stored as submitted. See DESIGN.md.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"password,omitempty"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Error("failed to update user", "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&User{}, id).Error; err != nil {
		log.Error("failed to delete user", "error", err)
		return err
	}
	return nil
}
