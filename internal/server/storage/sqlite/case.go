package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/caseflow/internal/server/storage"
)

const caseColumns = `id, case_number, title, description, status, priority,
	verification_type, verification_outcome, customer_name, customer_contact,
	client_name, visit_address, notes, assigned_to,
	created_at, updated_at, completed_at, in_progress_at, deleted, deleted_at`

// prioritySortExpr порядок приоритетов при сортировке: HIGH > MEDIUM > LOW > не задан
const prioritySortExpr = `CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*storage.CaseRecord, error) {
	c := &storage.CaseRecord{}
	var completedAt, inProgressAt, deletedAt sql.NullTime
	var deleted int

	err := row.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.Priority,
		&c.VerificationType,
		&c.VerificationOutcome,
		&c.CustomerName,
		&c.CustomerContact,
		&c.ClientName,
		&c.VisitAddress,
		&c.Notes,
		&c.AssignedTo,
		&c.CreatedAt,
		&c.UpdatedAt,
		&completedAt,
		&inProgressAt,
		&deleted,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Deleted = deleted != 0
	if completedAt.Valid {
		c.CompletedAt = &completedAt.Time
	}
	if inProgressAt.Valid {
		c.InProgressAt = &inProgressAt.Time
	}
	if deletedAt.Valid {
		c.DeletedAt = &deletedAt.Time
	}

	return c, nil
}

// CreateCase creates a new case
func (s *Storage) CreateCase(ctx context.Context, c *storage.CaseRecord) error {
	query := `
		INSERT INTO cases (` + caseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.CaseNumber, c.Title, c.Description, c.Status, c.Priority,
		c.VerificationType, c.VerificationOutcome, c.CustomerName, c.CustomerContact,
		c.ClientName, c.VisitAddress, c.Notes, c.AssignedTo,
		c.CreatedAt, c.UpdatedAt, c.CompletedAt, c.InProgressAt, boolToInt(c.Deleted), c.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert case: %w", err)
	}

	return nil
}

// GetCase retrieves a case by ID, deleted cases included
func (s *Storage) GetCase(ctx context.Context, id string) (*storage.CaseRecord, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`

	c, err := scanCase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	return c, nil
}

// ListCases returns a page of non-deleted cases matching the filter
func (s *Storage) ListCases(ctx context.Context, f storage.CaseFilter) ([]storage.CaseRecord, int, error) {
	where := []string{"deleted = 0"}
	args := []any{}

	if f.AssignedTo != "" {
		where = append(where, "assigned_to = ?")
		args = append(args, f.AssignedTo)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.VerificationType != "" {
		where = append(where, "verification_type = ?")
		args = append(args, f.VerificationType)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, `(LOWER(title) LIKE ? OR LOWER(customer_name) LIKE ?
			OR LOWER(client_name) LIKE ? OR LOWER(visit_address) LIKE ?
			OR CAST(case_number AS TEXT) LIKE ?)`)
		args = append(args, needle, needle, needle, needle, needle)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM cases WHERE ` + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	sortExpr := "updated_at"
	switch f.SortBy {
	case "createdAt":
		sortExpr = "created_at"
	case "priority":
		sortExpr = prioritySortExpr
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM cases WHERE %s ORDER BY %s %s LIMIT ? OFFSET ?`,
		caseColumns, whereClause, sortExpr, order)
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []storage.CaseRecord
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate cases: %w", err)
	}

	return cases, total, nil
}

// UpdateCase persists the full case record
func (s *Storage) UpdateCase(ctx context.Context, c *storage.CaseRecord) error {
	query := `
		UPDATE cases SET
			title = ?, description = ?, status = ?, priority = ?,
			verification_type = ?, verification_outcome = ?,
			customer_name = ?, customer_contact = ?, client_name = ?, visit_address = ?,
			notes = ?, assigned_to = ?, updated_at = ?, completed_at = ?, in_progress_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		c.Title, c.Description, c.Status, c.Priority,
		c.VerificationType, c.VerificationOutcome,
		c.CustomerName, c.CustomerContact, c.ClientName, c.VisitAddress,
		c.Notes, c.AssignedTo, c.UpdatedAt, c.CompletedAt, c.InProgressAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCaseNotFound
	}

	return nil
}

// SoftDeleteCase marks the case revoked so delta sync can report it
func (s *Storage) SoftDeleteCase(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE cases SET deleted = 1, deleted_at = ?, updated_at = ? WHERE id = ? AND deleted = 0`

	result, err := s.db.ExecContext(ctx, query, at, at, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete case: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCaseNotFound
	}

	return nil
}

// ChangedSince returns up to limit non-deleted cases of the user changed after since
func (s *Storage) ChangedSince(ctx context.Context, userID string, since time.Time, limit int) ([]storage.CaseRecord, bool, error) {
	// Берем на одну запись больше, чтобы узнать о хвосте
	query := `SELECT ` + caseColumns + `
		FROM cases
		WHERE assigned_to = ? AND deleted = 0 AND updated_at > ?
		ORDER BY updated_at ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, since, limit+1)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query changed cases: %w", err)
	}
	defer rows.Close()

	var cases []storage.CaseRecord
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, false, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to iterate changed cases: %w", err)
	}

	hasMore := len(cases) > limit
	if hasMore {
		cases = cases[:limit]
	}

	return cases, hasMore, nil
}

// DeletedSince returns ids of the user's cases revoked after since
func (s *Storage) DeletedSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	query := `SELECT id FROM cases WHERE assigned_to = ? AND deleted = 1 AND deleted_at > ?`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted cases: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deleted case id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deleted cases: %w", err)
	}

	return ids, nil
}

// AppendHistory adds a history entry for a case
func (s *Storage) AppendHistory(ctx context.Context, h *storage.HistoryRecord) error {
	query := `
		INSERT INTO case_history (id, case_id, action, user_id, user_name, details, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.CaseID, h.Action, h.UserID, h.UserName, h.Details, h.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// CaseHistory returns history entries for a case, newest first
func (s *Storage) CaseHistory(ctx context.Context, caseID string) ([]storage.HistoryRecord, error) {
	query := `
		SELECT id, case_id, action, user_id, user_name, details, timestamp
		FROM case_history
		WHERE case_id = ?
		ORDER BY timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query case history: %w", err)
	}
	defer rows.Close()

	var entries []storage.HistoryRecord
	for rows.Next() {
		var h storage.HistoryRecord
		if err := rows.Scan(&h.ID, &h.CaseID, &h.Action, &h.UserID, &h.UserName, &h.Details, &h.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate case history: %w", err)
	}

	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
