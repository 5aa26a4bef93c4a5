package auth

import (
	"context"

	"github.com/iudanet/caseflow/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service defines the interface for agent authentication and session state.
// Сессия хранится локально, чтобы агент мог работать офлайн после логина.
type Service interface {
	// Login выполняет аутентификацию полевого агента и сохраняет сессию
	Login(ctx context.Context, username, password string) (*storage.Session, error)

	// Refresh обновляет токены сессии по сохраненному refresh token
	Refresh(ctx context.Context) (*storage.Session, error)

	// Logout удаляет локальную сессию
	Logout(ctx context.Context) error

	// Session возвращает сохраненную сессию
	Session(ctx context.Context) (*storage.Session, error)

	// AccessToken возвращает access token текущей сессии.
	// Возвращает ErrNoAuthToken, если сессии нет.
	AccessToken(ctx context.Context) (string, error)

	// IsAuthenticated проверяет наличие сохраненной сессии
	IsAuthenticated(ctx context.Context) (bool, error)
}
