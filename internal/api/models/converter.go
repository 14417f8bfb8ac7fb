package models

import (
	"github.com/samber/lo"
	"github.com/tfgkk/schoolcomp/internal/database"
)

// FromDatabaseUser converts a stored account to its public representation.
func FromDatabaseUser(user database.User) User {
	return User{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Name:     user.Name,
		Phone:    user.Phone,
	}
}

// FromDatabaseUsers converts a list of stored accounts.
func FromDatabaseUsers(users []database.User) []User {
	return lo.Map(users, func(user database.User, _ int) User {
		return FromDatabaseUser(user)
	})
}
