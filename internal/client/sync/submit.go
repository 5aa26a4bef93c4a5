package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

// SubmitCase отправляет заполненное дело на сервер.
// Протокол в три фазы: сначала дело помечается как отправляемое
// (submitting + отметка времени попытки), затем POST submit, затем
// фиксация исхода: успех переводит дело в Completed и снимает флаг
// черновика, неуспех записывает submissionStatus=failed с текстом
// ошибки. Офлайн-неуспех дополнительно ставит завершение в очередь.
func (s *service) SubmitCase(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("case id must not be empty")
	}

	local, err := s.getLocalCases(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range local {
		if local[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("cannot submit case %s: not found locally", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	// Фаза 1: отмечаем попытку отправки
	local[idx].SubmissionStatus = models.SubmissionSubmitting
	local[idx].LastSubmissionAt = now
	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		return fmt.Errorf("failed to mark submission attempt: %w", err)
	}

	// Полный снимок дела в завершенном состоянии
	completed := local[idx]
	completed.Status = models.StatusCompleted
	req := api.SubmitRequest{
		CaseData:  completed.ToWire(),
		Timestamp: now,
	}

	if !s.connectivity.IsOnline() {
		return s.failSubmission(ctx, local, idx, req, ErrOffline, true)
	}

	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return s.failSubmission(ctx, local, idx, req, err, false)
	}

	// Фаза 2: отправка
	if err := s.apiClient.SubmitCase(ctx, accessToken, id, req); err != nil {
		return s.failSubmission(ctx, local, idx, req, err, false)
	}

	// Фаза 3: фиксация успеха
	local[idx].Status = models.StatusCompleted
	local[idx].SubmissionStatus = models.SubmissionSuccess
	local[idx].SubmissionError = ""
	local[idx].IsSaved = false
	local[idx].SavedAt = ""
	local[idx].CompletedAt = now
	local[idx].UpdatedAt = now
	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		return fmt.Errorf("failed to record submission success: %w", err)
	}

	s.logger.Info("Case submitted", "case_id", id)
	return nil
}

// ResubmitCase повторяет отправку после неудачи. Процедура идентична
// первичной отправке.
func (s *service) ResubmitCase(ctx context.Context, id string) error {
	return s.SubmitCase(ctx, id)
}

// failSubmission фиксирует неуспех отправки на деле. При офлайн-неуспехе
// завершение дополнительно ставится в очередь, чтобы доиграться при
// восстановлении сети.
func (s *service) failSubmission(
	ctx context.Context,
	local []models.Case,
	idx int,
	req api.SubmitRequest,
	cause error,
	enqueue bool,
) error {
	local[idx].SubmissionStatus = models.SubmissionFailed
	local[idx].SubmissionError = cause.Error()
	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		s.logger.Warn("Failed to record submission failure",
			"case_id", local[idx].ID, "error", err)
	}

	if enqueue {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal submit payload: %w", err)
		}
		item := models.NewSyncQueueItem(local[idx].ID, models.ActionSubmit, payload)
		if err := s.appendQueueItem(ctx, item); err != nil {
			return fmt.Errorf("failed to queue submission: %w", err)
		}
		s.logger.Info("Submission queued for replay",
			"case_id", local[idx].ID, "queue_item", item.ID)
	}

	return fmt.Errorf("submission failed: %w", cause)
}
