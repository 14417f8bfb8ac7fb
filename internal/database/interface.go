package database

import "context"

// DB defines the storage operations the handlers depend on.
// Lookups by id or username return a nil record when nothing matched,
// so callers always handle absence explicitly.
type DB interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uint) error

	// Competitions
	CreateCompetition(ctx context.Context, competition *Competition) error
	GetCompetitions(ctx context.Context, keyword string) ([]Competition, error)
	DeleteCompetitionCascade(ctx context.Context, id uint) error

	// Registrations
	CreateRegistration(ctx context.Context, registration *Registration) error
	GetRegistrationsByCompetition(ctx context.Context, competitionID uint) ([]Registration, error)
	GetRegistrationByID(ctx context.Context, id uint) (*Registration, error)
	RegistrationExists(ctx context.Context, competitionID uint, studentID string) (bool, error)
	UpdateRegistration(ctx context.Context, registration *Registration) error
	DeleteRegistration(ctx context.Context, id uint) error

	// Utility
	Close() error
}
