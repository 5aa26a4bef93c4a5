package storage

import (
	"context"
	"time"
)

// CaseRecord серверная запись дела верификации. Статус и приоритет
// хранятся в wire-нотации (ASSIGNED, IN_PROGRESS, HIGH и т.д.).
type CaseRecord struct {
	ID                  string
	CaseNumber          int64 // человекочитаемый сквозной номер
	Title               string
	Description         string
	Status              string
	Priority            string // LOW, MEDIUM, HIGH или пусто
	VerificationType    string
	VerificationOutcome string
	CustomerName        string
	CustomerContact     string
	ClientName          string
	VisitAddress        string
	Notes               string
	AssignedTo          string // id пользователя-агента
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
	InProgressAt        *time.Time
	Deleted             bool // отозванные дела остаются для дельта-синхронизации
	DeletedAt           *time.Time
}

// HistoryRecord запись в истории изменений дела
type HistoryRecord struct {
	ID        string
	CaseID    string
	Action    string // CREATED, STATUS_CHANGED, UPDATED, SUBMITTED, ...
	UserID    string
	UserName  string
	Details   string
	Timestamp time.Time
}

// CaseFilter параметры выборки списка дел
type CaseFilter struct {
	AssignedTo       string
	Status           string
	VerificationType string
	Search           string // подстрока по title, customer_name, client_name, visit_address
	SortBy           string // createdAt, updatedAt, priority
	SortOrder        string // asc, desc
	Page             int
	Limit            int
}

// CaseStorage defines interface for server-side case persistence
type CaseStorage interface {
	// CreateCase creates a new case
	CreateCase(ctx context.Context, c *CaseRecord) error

	// GetCase retrieves a case by ID, deleted cases included
	// Returns ErrCaseNotFound if case doesn't exist
	GetCase(ctx context.Context, id string) (*CaseRecord, error)

	// ListCases returns a page of non-deleted cases matching the filter
	// together with the total match count
	ListCases(ctx context.Context, f CaseFilter) ([]CaseRecord, int, error)

	// UpdateCase persists the full case record
	// Returns ErrCaseNotFound if case doesn't exist
	UpdateCase(ctx context.Context, c *CaseRecord) error

	// SoftDeleteCase marks the case revoked so delta sync can report it
	SoftDeleteCase(ctx context.Context, id string, at time.Time) error

	// ChangedSince returns up to limit non-deleted cases of the user
	// changed strictly after since, ordered by updated_at ascending,
	// plus a flag that more changes remain
	ChangedSince(ctx context.Context, userID string, since time.Time, limit int) ([]CaseRecord, bool, error)

	// DeletedSince returns ids of the user's cases revoked after since
	DeletedSince(ctx context.Context, userID string, since time.Time) ([]string, error)

	// AppendHistory adds a history entry for a case
	AppendHistory(ctx context.Context, h *HistoryRecord) error

	// CaseHistory returns history entries for a case, newest first
	CaseHistory(ctx context.Context, caseID string) ([]HistoryRecord, error)
}
