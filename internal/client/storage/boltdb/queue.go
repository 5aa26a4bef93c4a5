package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/caseflow/internal/models"
)

// keyQueue ключ очереди офлайн-мутаций. Очередь хранится одним JSON
// массивом: порядок вставки (FIFO) важен для повтора.
const keyQueue = "queue"

// AppendQueueItem appends a pending mutation to the end of the queue
func (s *Storage) AppendQueueItem(ctx context.Context, item models.SyncQueueItem) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		var queue []models.SyncQueueItem
		if data := bucket.Get([]byte(keyQueue)); data != nil {
			if err := json.Unmarshal(data, &queue); err != nil {
				return fmt.Errorf("failed to unmarshal queue: %w", err)
			}
		}

		queue = append(queue, item)

		data, err := json.Marshal(queue)
		if err != nil {
			return fmt.Errorf("failed to marshal queue: %w", err)
		}
		if err := bucket.Put([]byte(keyQueue), data); err != nil {
			return fmt.Errorf("failed to save queue: %w", err)
		}
		return nil
	})
}

// GetQueue returns all queued mutations in insertion order
func (s *Storage) GetQueue(ctx context.Context) ([]models.SyncQueueItem, error) {
	var queue []models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		data := bucket.Get([]byte(keyQueue))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &queue); err != nil {
			return fmt.Errorf("failed to unmarshal queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get queue: %w", err)
	}

	return queue, nil
}

// SaveQueue replaces the whole queue (used after a replay pass)
func (s *Storage) SaveQueue(ctx context.Context, items []models.SyncQueueItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal queue: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}
		if err := bucket.Put([]byte(keyQueue), data); err != nil {
			return fmt.Errorf("failed to save queue: %w", err)
		}
		return nil
	})
}
