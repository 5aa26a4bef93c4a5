package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyLastSyncTimestamp = "last_sync_timestamp"

// SaveLastSyncTimestamp saves the RFC3339 timestamp of the last successful sync
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyLastSyncTimestamp), []byte(timestamp)); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}
		return nil
	})
}

// GetLastSyncTimestamp retrieves the RFC3339 timestamp of the last
// successful sync. Returns "" if no sync has been performed yet.
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (string, error) {
	var timestamp string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if data := bucket.Get([]byte(keyLastSyncTimestamp)); data != nil {
			timestamp = string(data)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get last sync timestamp: %w", err)
	}

	return timestamp, nil
}
