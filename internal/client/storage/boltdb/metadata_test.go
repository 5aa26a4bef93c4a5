package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastSyncTimestamp_NotSet(t *testing.T) {
	store := newTestStorage(t)

	ts, err := store.GetLastSyncTimestamp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", ts, "no sync yet means empty timestamp")
}

func TestLastSyncTimestamp_SaveAndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLastSyncTimestamp(ctx, "2026-02-01T12:00:00Z"))

	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01T12:00:00Z", ts)

	// Перезапись новым значением
	require.NoError(t, store.SaveLastSyncTimestamp(ctx, "2026-02-02T08:00:00Z"))
	ts, err = store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02T08:00:00Z", ts)
}
