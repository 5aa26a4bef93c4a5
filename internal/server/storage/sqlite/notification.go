package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iudanet/caseflow/internal/server/storage"
)

// CreateNotification stores a new undelivered notification
func (s *Storage) CreateNotification(ctx context.Context, n *storage.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, case_id, event_type, payload, delivered, created_at, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.CaseID, n.EventType, n.Payload,
		boolToInt(n.Delivered), n.CreatedAt, n.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// MarkDelivered marks the notification acknowledged by the client
func (s *Storage) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE notifications SET delivered = 1, delivered_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification delivered: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrNotificationNotFound
	}

	return nil
}

// UndeliveredForUser returns unacknowledged notifications of the user, oldest first
func (s *Storage) UndeliveredForUser(ctx context.Context, userID string) ([]storage.Notification, error) {
	query := `
		SELECT id, user_id, case_id, event_type, payload, delivered, created_at, delivered_at
		FROM notifications
		WHERE user_id = ? AND delivered = 0
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []storage.Notification
	for rows.Next() {
		var n storage.Notification
		var delivered int
		var deliveredAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.CaseID, &n.EventType, &n.Payload,
			&delivered, &n.CreatedAt, &deliveredAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Delivered = delivered != 0
		if deliveredAt.Valid {
			n.DeliveredAt = &deliveredAt.Time
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// DeleteDeliveredBefore removes acknowledged notifications older than cutoff
func (s *Storage) DeleteDeliveredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE delivered = 1 AND delivered_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
