package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

func seedSubmittable(t *testing.T, e *testEngine) {
	t.Helper()
	require.NoError(t, e.store.SaveCases(context.Background(), []models.Case{
		{
			ID:                  "c-1",
			CaseID:              101,
			Title:               "Residence check",
			Status:              models.StatusInProgress,
			VerificationType:    models.TypeResidence,
			VerificationOutcome: "Positive",
			IsSaved:             true,
			SavedAt:             "2024-01-10T09:00:00Z",
		},
	}))
}

func TestSubmitCase_Success(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	seedSubmittable(t, e)

	e.api.SubmitCaseFunc = func(_ context.Context, accessToken, id string, req api.SubmitRequest) error {
		require.Equal(t, "test-token", accessToken)
		require.Equal(t, "c-1", id)
		// Серверу уходит полный снимок в завершенном состоянии
		require.Equal(t, "COMPLETED", req.CaseData.Status)
		require.Equal(t, "Positive", req.CaseData.VerificationOutcome)
		require.NotEmpty(t, req.Timestamp)
		return nil
	}

	require.NoError(t, e.svc.SubmitCase(ctx, "c-1"))

	c, err := e.store.GetCase(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, c.Status)
	assert.Equal(t, models.SubmissionSuccess, c.SubmissionStatus)
	assert.Empty(t, c.SubmissionError)
	assert.False(t, c.IsSaved)
	assert.Empty(t, c.SavedAt)
	assert.NotEmpty(t, c.CompletedAt)
	assert.NotEmpty(t, c.LastSubmissionAt)
}

func TestSubmitCase_ServerFailure(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	seedSubmittable(t, e)

	e.api.SubmitCaseFunc = func(_ context.Context, _, _ string, _ api.SubmitRequest) error {
		return errors.New("VALIDATION_FAILED: outcome required")
	}

	err := e.svc.SubmitCase(ctx, "c-1")
	require.Error(t, err)

	c, err := e.store.GetCase(ctx, "c-1")
	require.NoError(t, err)
	// Дело не завершено, неуспех записан на деле и восстановим resubmit-ом
	assert.Equal(t, models.StatusInProgress, c.Status)
	assert.Equal(t, models.SubmissionFailed, c.SubmissionStatus)
	assert.Contains(t, c.SubmissionError, "VALIDATION_FAILED")

	// Серверный неуспех не ставит завершение в очередь
	pending, err := e.svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestSubmitCase_OfflineQueuesCompletion(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	seedSubmittable(t, e)

	e.online.Store(false)

	err := e.svc.SubmitCase(ctx, "c-1")
	require.ErrorIs(t, err, ErrOffline)

	c, err := e.store.GetCase(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionFailed, c.SubmissionStatus)

	queue, err := e.store.GetQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, models.ActionSubmit, queue[0].Action)

	// Сеть вернулась: отложенное завершение доигрывается
	e.online.Store(true)
	e.api.SubmitCaseFunc = func(_ context.Context, _, id string, req api.SubmitRequest) error {
		require.Equal(t, "c-1", id)
		require.Equal(t, "COMPLETED", req.CaseData.Status)
		return nil
	}

	dropped, err := e.svc.ReplayQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	c, err = e.store.GetCase(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, c.Status)
	assert.Equal(t, models.SubmissionSuccess, c.SubmissionStatus)
	assert.Empty(t, c.SubmissionError)
}

func TestResubmitCase(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	seedSubmittable(t, e)

	// Первая попытка падает
	e.api.SubmitCaseFunc = func(_ context.Context, _, _ string, _ api.SubmitRequest) error {
		return errors.New("server error (503)")
	}
	require.Error(t, e.svc.SubmitCase(ctx, "c-1"))

	// Повтор той же процедурой проходит
	e.api.SubmitCaseFunc = func(_ context.Context, _, _ string, _ api.SubmitRequest) error {
		return nil
	}
	require.NoError(t, e.svc.ResubmitCase(ctx, "c-1"))

	c, err := e.store.GetCase(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, c.Status)
	assert.Equal(t, models.SubmissionSuccess, c.SubmissionStatus)
}

func TestSubmitCase_EmptyID(t *testing.T) {
	e := newTestEngine(t, Config{})
	require.Error(t, e.svc.SubmitCase(context.Background(), ""))
}
