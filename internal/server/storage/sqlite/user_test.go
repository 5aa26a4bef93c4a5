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

func TestCreateUser(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	user := &storage.User{
		ID:           uuid.New().String(),
		Username:     "agent.petrov",
		Name:         "Petr Petrov",
		Role:         storage.RoleFieldAgent,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	got, err := s.GetUserByUsername(ctx, "agent.petrov")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, storage.RoleFieldAgent, got.Role)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.LastLogin)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	user := &storage.User{
		ID:           uuid.New().String(),
		Username:     "agent.petrov",
		Name:         "Petr Petrov",
		Role:         storage.RoleFieldAgent,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := &storage.User{
		ID:           uuid.New().String(),
		Username:     "agent.petrov",
		Name:         "Another Petrov",
		Role:         storage.RoleFieldAgent,
		PasswordHash: "hash2",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	user := &storage.User{
		ID:           uuid.New().String(),
		Username:     "agent.ivanova",
		Name:         "Anna Ivanova",
		Role:         storage.RoleFieldAgent,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	loginAt := time.Now().Truncate(time.Second)
	require.NoError(t, s.UpdateLastLogin(ctx, user.ID, loginAt))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, loginAt, *got.LastLogin, time.Second)

	err = s.UpdateLastLogin(ctx, uuid.New().String(), loginAt)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
