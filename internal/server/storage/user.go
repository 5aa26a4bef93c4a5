package storage

import (
	"context"
	"time"
)

// Роли пользователей CRM. Только FIELD_AGENT работает с мобильными
// эндпоинтами, остальные — с веб-интерфейсом.
const (
	RoleFieldAgent  = "FIELD_AGENT"
	RoleBackendUser = "BACKEND_USER"
	RoleAdmin       = "ADMIN"
)

// User учетная запись в CRM
type User struct {
	ID           string
	Username     string
	Name         string
	Role         string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*User, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
