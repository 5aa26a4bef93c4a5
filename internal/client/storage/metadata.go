package storage

import "context"

//go:generate moq -out metadatastorage_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp persists the timestamp of the last successful
	// delta sync (RFC3339). The caller only advances it, never rewinds.
	SaveLastSyncTimestamp(ctx context.Context, timestamp string) error

	// GetLastSyncTimestamp returns the persisted timestamp of the last
	// successful delta sync. Returns "" if no sync has been performed yet.
	GetLastSyncTimestamp(ctx context.Context) (string, error)
}
