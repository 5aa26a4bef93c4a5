package storage

import "context"

// Session хранит данные аутентифицированной сессии полевого агента
type Session struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DeviceID     string `json:"device_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

//go:generate moq -out sessionstorage_mock.go . SessionStorage

// SessionStorage defines interface for storing the authentication session
type SessionStorage interface {
	// SaveSession persists the session, replacing any existing one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session
	DeleteSession(ctx context.Context) error
}
