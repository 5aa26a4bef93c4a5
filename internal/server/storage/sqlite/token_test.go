package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/internal/server/storage"
)

func TestSaveRefreshToken(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, s, "agent.one")

	token := &storage.RefreshToken{
		Token:     "refresh-token-1",
		UserID:    userID,
		DeviceID:  "device-1",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	got, err := s.GetRefreshToken(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "device-1", got.DeviceID)
}

func TestSaveRefreshToken_ReplacesExisting(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, s, "agent.one")

	token := &storage.RefreshToken{
		Token:     "refresh-token-1",
		UserID:    userID,
		DeviceID:  "device-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	// Повторное сохранение того же токена перезаписывает запись
	token.DeviceID = "device-2"
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	got, err := s.GetRefreshToken(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.Equal(t, "device-2", got.DeviceID)
}

func TestGetRefreshToken_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetRefreshToken(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestDeleteRefreshToken(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, s, "agent.one")

	token := &storage.RefreshToken{
		Token:     "refresh-token-1",
		UserID:    userID,
		DeviceID:  "device-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	require.NoError(t, s.DeleteRefreshToken(ctx, "refresh-token-1"))

	_, err := s.GetRefreshToken(ctx, "refresh-token-1")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	err = s.DeleteRefreshToken(ctx, "refresh-token-1")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestDeleteUserTokens(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, s, "agent.one")
	otherID := createTestUser(t, s, "agent.two")

	for i, owner := range []string{userID, userID, otherID} {
		require.NoError(t, s.SaveRefreshToken(ctx, &storage.RefreshToken{
			Token:     uuid.New().String(),
			UserID:    owner,
			DeviceID:  "device",
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	deleted, err := s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Токены другого пользователя не затронуты
	deleted, err = s.DeleteUserTokens(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestDeleteExpiredTokens(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, s, "agent.one")

	expired := &storage.RefreshToken{
		Token:     "expired",
		UserID:    userID,
		DeviceID:  "device",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	alive := &storage.RefreshToken{
		Token:     "alive",
		UserID:    userID,
		DeviceID:  "device",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, expired))
	require.NoError(t, s.SaveRefreshToken(ctx, alive))

	deleted, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = s.GetRefreshToken(ctx, "expired")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	_, err = s.GetRefreshToken(ctx, "alive")
	assert.NoError(t, err)
}

// createTestUser создает пользователя и возвращает его id
func createTestUser(t *testing.T, s *Storage, username string) string {
	t.Helper()

	user := &storage.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         username,
		Role:         storage.RoleFieldAgent,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user.ID
}
