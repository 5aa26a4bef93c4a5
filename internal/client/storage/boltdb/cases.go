package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/caseflow/internal/client/storage"
	"github.com/iudanet/caseflow/internal/models"
)

// keyCases ключ, под которым хранится вся коллекция дел одним JSON
// документом. Коллекция читается и пишется целиком — снимком, поэтому
// читатели никогда не видят частично обновленное состояние и порядок
// вставки сохраняется.
const keyCases = "cases"

// GetCases returns the full local case collection
func (s *Storage) GetCases(ctx context.Context) ([]models.Case, error) {
	var cases []models.Case

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCases)
		if bucket == nil {
			return fmt.Errorf("cases bucket not found")
		}

		data := bucket.Get([]byte(keyCases))
		if data == nil {
			// Пустое хранилище — пустая коллекция
			return nil
		}

		if err := json.Unmarshal(data, &cases); err != nil {
			return fmt.Errorf("failed to unmarshal cases: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cases: %w", err)
	}

	return cases, nil
}

// SaveCases replaces the full local case collection
func (s *Storage) SaveCases(ctx context.Context, cases []models.Case) error {
	data, err := json.Marshal(cases)
	if err != nil {
		return fmt.Errorf("failed to marshal cases: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCases)
		if bucket == nil {
			return fmt.Errorf("cases bucket not found")
		}

		if err := bucket.Put([]byte(keyCases), data); err != nil {
			return fmt.Errorf("failed to save cases: %w", err)
		}
		return nil
	})
}

// GetCase returns a single case by id
// Returns storage.ErrCaseNotFound if the case doesn't exist locally
func (s *Storage) GetCase(ctx context.Context, id string) (*models.Case, error) {
	cases, err := s.GetCases(ctx)
	if err != nil {
		return nil, err
	}

	for i := range cases {
		if cases[i].ID == id {
			c := cases[i]
			return &c, nil
		}
	}

	return nil, storage.ErrCaseNotFound
}
