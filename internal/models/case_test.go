package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/pkg/api"
)

// TestCaseFromWire проверяет нормализацию wire-формата в локальную модель
func TestCaseFromWire(t *testing.T) {
	w := api.Case{
		ID:               "case-1",
		CaseID:           1042,
		Title:            "Residence verification",
		Status:           "IN_PROGRESS",
		Priority:         "HIGH",
		VerificationType: "Residence",
		CustomerName:     "Ivan Petrov",
		CustomerContact:  "+7 900 000 00 00",
		CreatedAt:        "2026-01-10T10:00:00Z",
		UpdatedAt:        "2026-01-12T08:30:00Z",
	}

	c := CaseFromWire(w)

	assert.Equal(t, "case-1", c.ID)
	assert.Equal(t, int64(1042), c.CaseID)
	assert.Equal(t, StatusInProgress, c.Status)
	assert.Equal(t, TypeResidence, c.VerificationType)
	require.NotNil(t, c.Priority)
	assert.Equal(t, PriorityHigh, *c.Priority)
	assert.Equal(t, "Ivan Petrov", c.Customer.Name)
	assert.False(t, c.IsSaved)
}

// TestCaseFromWire_Defaults проверяет значения по умолчанию для
// неизвестных или отсутствующих полей
func TestCaseFromWire_Defaults(t *testing.T) {
	c := CaseFromWire(api.Case{ID: "case-2", Status: "SOMETHING_NEW"})

	assert.Equal(t, StatusAssigned, c.Status, "unknown status falls back to Assigned")
	assert.Equal(t, TypeResidence, c.VerificationType)
	assert.Nil(t, c.Priority)
	assert.NotEmpty(t, c.CreatedAt)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

// TestCase_ToWire проверяет обратную конвертацию статуса и приоритета
func TestCase_ToWire(t *testing.T) {
	p := PriorityMedium
	c := Case{
		ID:       "case-3",
		Status:   StatusCompleted,
		Priority: &p,
		Customer: Customer{Name: "Anna"},
	}

	w := c.ToWire()

	assert.Equal(t, "COMPLETED", w.Status)
	assert.Equal(t, "MEDIUM", w.Priority)
	assert.Equal(t, "Anna", w.CustomerName)
}

// TestStatusRoundTrip проверяет что все статусы переживают конвертацию
// туда и обратно
func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []CaseStatus{StatusAssigned, StatusInProgress, StatusCompleted, StatusPending} {
		assert.Equal(t, s, statusFromWire(statusToWire(s)))
	}
}
