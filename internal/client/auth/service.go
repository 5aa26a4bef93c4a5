package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/caseflow/internal/client/api"
	"github.com/iudanet/caseflow/internal/client/storage"
	"github.com/iudanet/caseflow/internal/validation"
	pkgapi "github.com/iudanet/caseflow/pkg/api"
)

// ErrNoAuthToken возвращается, когда локальной сессии нет
// и операция требует авторизации
var ErrNoAuthToken = errors.New("no auth token: login required")

// service реализует Service поверх API клиента и локального хранилища
type service struct {
	apiClient api.ClientAPI
	sessions  storage.SessionStorage
	deviceID  string
}

// NewService создает сервис авторизации агента
func NewService(apiClient api.ClientAPI, sessions storage.SessionStorage, deviceID string) Service {
	return &service{
		apiClient: apiClient,
		sessions:  sessions,
		deviceID:  deviceID,
	}
}

// Login выполняет аутентификацию полевого агента и сохраняет сессию
func (s *service) Login(ctx context.Context, username, password string) (*storage.Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, errors.New("password must not be empty")
	}

	data, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
		DeviceID: s.deviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.Session{
		UserID:       data.User.ID,
		Username:     data.User.Username,
		Name:         data.User.Name,
		Role:         data.User.Role,
		DeviceID:     s.deviceID,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ExpiresAt:    time.Now().Unix() + data.ExpiresIn,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Refresh обновляет токены сессии по сохраненному refresh token
func (s *service) Refresh(ctx context.Context) (*storage.Session, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.apiClient.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	session.AccessToken = data.AccessToken
	session.RefreshToken = data.RefreshToken
	session.ExpiresAt = time.Now().Unix() + data.ExpiresIn
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Logout удаляет локальную сессию. Отсутствие сессии не считается ошибкой.
func (s *service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session возвращает сохраненную сессию
func (s *service) Session(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNoAuthToken
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// accessTokenSkew запас до истечения токена, при котором он уже
// считается протухшим: токен не должен умереть посреди запроса
const accessTokenSkew = 30 // секунды

// AccessToken возвращает access token текущей сессии.
// Истекший или истекающий токен прозрачно обновляется по refresh token.
func (s *service) AccessToken(ctx context.Context) (string, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return "", err
	}

	if time.Now().Unix() < session.ExpiresAt-accessTokenSkew {
		return session.AccessToken, nil
	}

	refreshed, err := s.Refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("access token expired: %w", err)
	}
	return refreshed.AccessToken, nil
}

// IsAuthenticated проверяет наличие сохраненной сессии
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := s.Session(ctx)
	if err != nil {
		if errors.Is(err, ErrNoAuthToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
