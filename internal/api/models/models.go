// Package models holds the API representations of stored records.
package models

// User is the public representation of an account. It carries everything
// the frontend needs but never the stored password.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}
