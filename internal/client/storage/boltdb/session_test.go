package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/internal/client/storage"
)

func TestSession_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSession_SaveGetDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session := &storage.Session{
		UserID:       "user-1",
		Username:     "agent.petrov",
		Role:         "FIELD_AGENT",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    1893456000,
	}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "agent.petrov", got.Username)
	assert.Equal(t, "FIELD_AGENT", got.Role)
	assert.Equal(t, int64(1893456000), got.ExpiresAt)

	require.NoError(t, store.DeleteSession(ctx))
	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}
