package storage

import (
	"context"

	"github.com/iudanet/caseflow/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines interface for the durable offline mutation queue.
// Items keep FIFO insertion order.
type QueueStorage interface {
	// AppendQueueItem appends a pending mutation to the end of the queue
	AppendQueueItem(ctx context.Context, item models.SyncQueueItem) error

	// GetQueue returns all queued mutations in insertion order
	GetQueue(ctx context.Context) ([]models.SyncQueueItem, error)

	// SaveQueue replaces the whole queue (used after a replay pass)
	SaveQueue(ctx context.Context, items []models.SyncQueueItem) error
}
