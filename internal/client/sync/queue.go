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

// UpdateCase обновляет дело. Онлайн: PUT на сервер + обновление кеша.
// Офлайн или при ошибке сети: немедленное локальное обновление и
// постановка мутации в очередь на повтор.
func (s *service) UpdateCase(ctx context.Context, id string, updates api.CaseUpdateRequest) (*models.Case, error) {
	if id == "" {
		return nil, errors.New("case id must not be empty")
	}

	if s.connectivity.IsOnline() {
		updated, err := s.updateRemote(ctx, id, updates)
		if err == nil {
			return updated, nil
		}
		s.logger.Warn("Remote update failed, applying locally and queueing",
			"case_id", id, "error", err)
	}

	return s.updateLocalAndQueue(ctx, id, updates)
}

func (s *service) updateRemote(ctx context.Context, id string, updates api.CaseUpdateRequest) (*models.Case, error) {
	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	w, err := s.apiClient.UpdateCase(ctx, accessToken, id, updates)
	if err != nil {
		return nil, err
	}

	c := models.CaseFromWire(*w)
	if migrated, changed := models.MigrateOutcome(c.VerificationOutcome); changed {
		c.VerificationOutcome = migrated
	}
	if err := s.cacheCases(ctx, []models.Case{c}); err != nil {
		s.logger.Warn("Failed to cache updated case", "case_id", id, "error", err)
	}
	return &c, nil
}

func (s *service) updateLocalAndQueue(ctx context.Context, id string, updates api.CaseUpdateRequest) (*models.Case, error) {
	local, err := s.getLocalCases(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range local {
		if local[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("cannot update case %s: not found locally", id)
	}

	local[idx].ApplyUpdate(updates)
	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save local update: %w", err)
	}

	payload, err := json.Marshal(updates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update payload: %w", err)
	}
	item := models.NewSyncQueueItem(id, models.ActionUpdate, payload)
	if err := s.appendQueueItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to queue update: %w", err)
	}

	s.logger.Info("Case updated locally, mutation queued", "case_id", id, "queue_item", item.ID)
	c := local[idx]
	return &c, nil
}

// ReplayQueue проигрывает очередь офлайн-мутаций в порядке FIFO.
// Успешная мутация убирается из очереди; неуспешная получает RetryCount+1
// и остается; достигшая потолка выбрасывается и попадает в возвращаемый
// список — вызывающий обязан показать это агенту.
func (s *service) ReplayQueue(ctx context.Context) ([]ReplayError, error) {
	if !s.connectivity.IsOnline() {
		return nil, ErrOffline
	}

	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	queue, err := s.queueStorage.GetQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue: %w", err)
	}
	if len(queue) == 0 {
		return nil, nil
	}

	s.logger.Info("Replaying offline mutation queue", "pending", len(queue))

	var dropped []ReplayError
	remaining := make([]models.SyncQueueItem, 0, len(queue))

	for _, item := range queue {
		replayErr := s.replayItem(ctx, accessToken, item)
		if replayErr == nil {
			s.logger.Info("Queued mutation replayed", "queue_item", item.ID, "case_id", item.CaseID)
			continue
		}

		item.RetryCount++
		if item.RetryCount >= s.cfg.RetryLimit {
			s.logger.Warn("Queued mutation dropped after retry ceiling",
				"queue_item", item.ID,
				"case_id", item.CaseID,
				"attempts", item.RetryCount,
				"error", replayErr)
			dropped = append(dropped, ReplayError{
				CaseID:   item.CaseID,
				Action:   item.Action,
				Attempts: item.RetryCount,
				Reason:   replayErr.Error(),
			})
			continue
		}

		s.logger.Warn("Queued mutation failed, will retry",
			"queue_item", item.ID,
			"attempt", item.RetryCount,
			"error", replayErr)
		remaining = append(remaining, item)
	}

	// Перезапись очереди не должна затереть мутации, добавленные
	// пока replay ходил по сети: доливаем их по ID поверх остатка
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	processed := make(map[string]bool, len(queue))
	for _, item := range queue {
		processed[item.ID] = true
	}
	current, err := s.queueStorage.GetQueue(ctx)
	if err != nil {
		return dropped, fmt.Errorf("failed to reread queue: %w", err)
	}
	for _, item := range current {
		if !processed[item.ID] {
			remaining = append(remaining, item)
		}
	}

	if err := s.queueStorage.SaveQueue(ctx, remaining); err != nil {
		return dropped, fmt.Errorf("failed to save queue: %w", err)
	}

	return dropped, nil
}

// appendQueueItem добавляет мутацию под queueMu, чтобы перезапись
// очереди в ReplayQueue ее не потеряла
func (s *service) appendQueueItem(ctx context.Context, item models.SyncQueueItem) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queueStorage.AppendQueueItem(ctx, item)
}

func (s *service) replayItem(ctx context.Context, accessToken string, item models.SyncQueueItem) error {
	switch item.Action {
	case models.ActionUpdate:
		var updates api.CaseUpdateRequest
		if err := json.Unmarshal(item.Payload, &updates); err != nil {
			return fmt.Errorf("corrupt update payload: %w", err)
		}
		w, err := s.apiClient.UpdateCase(ctx, accessToken, item.CaseID, updates)
		if err != nil {
			return err
		}
		c := models.CaseFromWire(*w)
		if err := s.cacheCases(ctx, []models.Case{c}); err != nil {
			s.logger.Warn("Failed to cache replayed update", "case_id", item.CaseID, "error", err)
		}
		return nil

	case models.ActionSubmit:
		var req api.SubmitRequest
		if err := json.Unmarshal(item.Payload, &req); err != nil {
			return fmt.Errorf("corrupt submit payload: %w", err)
		}
		if err := s.apiClient.SubmitCase(ctx, accessToken, item.CaseID, req); err != nil {
			return err
		}
		if err := s.markSubmitted(ctx, item.CaseID); err != nil {
			s.logger.Warn("Failed to mark replayed submission", "case_id", item.CaseID, "error", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported queued action %q", item.Action)
	}
}

// markSubmitted переводит дело в завершенное состояние после успешной
// отправки (прямой или доигранной из очереди)
func (s *service) markSubmitted(ctx context.Context, id string) error {
	local, err := s.caseStorage.GetCases(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range local {
		if local[i].ID != id {
			continue
		}
		local[i].Status = models.StatusCompleted
		local[i].SubmissionStatus = models.SubmissionSuccess
		local[i].SubmissionError = ""
		local[i].IsSaved = false
		local[i].SavedAt = ""
		local[i].CompletedAt = now
		local[i].UpdatedAt = now
		return s.caseStorage.SaveCases(ctx, local)
	}
	return nil
}
