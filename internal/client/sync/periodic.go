package sync

import (
	"context"
	"errors"
	"time"
)

// StartPeriodic запускает фоновую периодическую синхронизацию.
// Тик пропускается, пока сеть недоступна; пересечение с идущей
// синхронизацией схлопывается single-flight защитой SyncCases.
// Повторный вызов игнорируется.
func (s *service) StartPeriodic(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(s.doneCh)

		ticker := time.NewTicker(s.cfg.PeriodicInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.periodicTick(ctx)
			}
		}
	}()
}

func (s *service) periodicTick(ctx context.Context) {
	if !s.connectivity.IsOnline() {
		s.logger.Debug("Periodic sync skipped: offline")
		return
	}

	if dropped, err := s.ReplayQueue(ctx); err != nil {
		if !errors.Is(err, ErrOffline) {
			s.logger.Warn("Periodic queue replay failed", "error", err)
		}
	} else if len(dropped) > 0 {
		for _, d := range dropped {
			s.logger.Warn("Queued mutation dropped during periodic replay", "error", d.Error())
		}
	}

	result := s.SyncCases(ctx)
	if result.Err != nil && !errors.Is(result.Err, ErrSyncInProgress) && !errors.Is(result.Err, ErrOffline) {
		s.logger.Warn("Periodic sync failed", "error", result.Err)
	}
}

// Close останавливает фоновую синхронизацию. Повторный вызов безопасен.
func (s *service) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(s.stopCh)
	if s.started.Load() {
		<-s.doneCh
	}
	return nil
}
