package storage

import (
	"context"
	"time"
)

// Notification push-уведомление, ожидающее подтверждения от клиента.
// Недоставленные уведомления доигрываются при следующем подключении.
type Notification struct {
	ID          string
	UserID      string
	CaseID      string
	EventType   string // mobile:case:assigned, mobile:case:status:changed, ...
	Payload     []byte // сериализованная полезная нагрузка события
	Delivered   bool
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// NotificationStorage defines interface for notification bookkeeping
type NotificationStorage interface {
	// CreateNotification stores a new undelivered notification
	CreateNotification(ctx context.Context, n *Notification) error

	// MarkDelivered marks the notification acknowledged by the client
	// Returns ErrNotificationNotFound if notification doesn't exist
	MarkDelivered(ctx context.Context, id string, at time.Time) error

	// UndeliveredForUser returns unacknowledged notifications of the user,
	// oldest first
	UndeliveredForUser(ctx context.Context, userID string) ([]Notification, error)

	// DeleteDeliveredBefore removes acknowledged notifications older than cutoff
	// Returns number of deleted notifications
	DeleteDeliveredBefore(ctx context.Context, cutoff time.Time) (int, error)
}
