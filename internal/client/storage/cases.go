package storage

import (
	"context"

	"github.com/iudanet/caseflow/internal/models"
)

//go:generate moq -out casestorage_mock.go . CaseStorage

// CaseStorage defines interface for the persisted local case collection.
// The collection is read and written as a full snapshot: callers read
// the whole set, mutate in memory and write the whole set back, so no
// partial state is ever observable.
type CaseStorage interface {
	// GetCases returns the full local case collection
	GetCases(ctx context.Context) ([]models.Case, error)

	// SaveCases replaces the full local case collection
	SaveCases(ctx context.Context, cases []models.Case) error

	// GetCase returns a single case by id
	// Returns ErrCaseNotFound if the case doesn't exist locally
	GetCase(ctx context.Context, id string) (*models.Case, error)
}
