package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	httpClient "github.com/iudanet/caseflow/internal/client/api"
	"github.com/iudanet/caseflow/internal/client/auth"
	"github.com/iudanet/caseflow/internal/client/storage"
	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

var (
	// ErrSyncInProgress сигнал координации: синхронизация уже идет,
	// повторный вызов схлопывается без побочных эффектов
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOffline операция требует сети, а ее нет
	ErrOffline = errors.New("network unavailable")
)

//go:generate moq -out connectivity_mock.go . Connectivity

// Connectivity определяет источник знания о доступности сети
type Connectivity interface {
	IsOnline() bool
}

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс движка синхронизации дел
type Service interface {
	// GetCases возвращает страницу дел: с сервера, если сеть доступна,
	// иначе из локального кеша с теми же правилами фильтрации
	GetCases(ctx context.Context, params api.CaseListParams) (*CaseList, error)

	// GetCase возвращает дело из локального кеша,
	// при промахе и доступной сети дотягивает с сервера
	GetCase(ctx context.Context, id string) (*models.Case, error)

	// SyncCases выполняет инкрементальную синхронизацию с сервером
	SyncCases(ctx context.Context) *SyncResult

	// ForceSyncCases именованный путь запуска синхронизации
	// для realtime-событий
	ForceSyncCases(ctx context.Context) *SyncResult

	// ReplayQueue проигрывает очередь офлайн-мутаций в порядке FIFO
	ReplayQueue(ctx context.Context) ([]ReplayError, error)

	// UpdateCase обновляет дело: онлайн через сервер,
	// офлайн локально с постановкой мутации в очередь
	UpdateCase(ctx context.Context, id string, updates api.CaseUpdateRequest) (*models.Case, error)

	// SubmitCase отправляет заполненное дело на сервер
	SubmitCase(ctx context.Context, id string) error

	// ResubmitCase повторяет отправку после неудачи
	ResubmitCase(ctx context.Context, id string) error

	// PendingCount возвращает количество мутаций, ожидающих повтора
	PendingCount(ctx context.Context) (int, error)

	// StartPeriodic запускает фоновую периодическую синхронизацию
	StartPeriodic(ctx context.Context)

	// Close останавливает фоновую синхронизацию
	Close() error
}

// Config параметры движка синхронизации
type Config struct {
	BatchLimit       int           // размер страницы инкрементальной выгрузки
	RetryLimit       int           // потолок повторов мутации в очереди
	PeriodicInterval time.Duration // период фоновой синхронизации
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		BatchLimit:       100,
		RetryLimit:       3,
		PeriodicInterval: 5 * time.Minute,
	}
}

// SyncResult содержит результат инкрементальной синхронизации
type SyncResult struct {
	Err          error
	NewCases     int  // новых дел добавлено в кеш
	UpdatedCases int  // существующих дел обновлено
	Success      bool
}

// ReplayError фиксирует мутацию, выброшенную из очереди по достижении
// потолка повторов. Потерянных молча мутаций не бывает: каждая либо
// доиграна, либо попала в этот список.
type ReplayError struct {
	CaseID   string
	Action   models.SyncAction
	Reason   string
	Attempts int
}

func (e ReplayError) Error() string {
	return fmt.Sprintf("replay %s for case %s dropped after %d attempts: %s",
		e.Action, e.CaseID, e.Attempts, e.Reason)
}

// CaseList страница дел с метаданными пагинации
type CaseList struct {
	Cases      []models.Case
	Pagination api.Pagination
}

// service реализует движок синхронизации
type service struct {
	apiClient    httpClient.ClientAPI
	caseStorage  storage.CaseStorage
	queueStorage storage.QueueStorage
	metadata     storage.MetadataStorage
	authSvc      auth.Service
	connectivity Connectivity
	logger       *slog.Logger
	cfg          Config

	inProgress atomic.Bool
	started    atomic.Bool
	closed     atomic.Bool
	stopCh     chan struct{}
	doneCh     chan struct{}

	// queueMu сериализует чтение-перезапись очереди при replay
	// с конкурентными добавлениями мутаций
	queueMu stdsync.Mutex
}

// NewService создает движок синхронизации
func NewService(
	apiClient httpClient.ClientAPI,
	caseStorage storage.CaseStorage,
	queueStorage storage.QueueStorage,
	metadata storage.MetadataStorage,
	authSvc auth.Service,
	connectivity Connectivity,
	logger *slog.Logger,
	cfg Config,
) Service {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = DefaultConfig().BatchLimit
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = DefaultConfig().RetryLimit
	}
	if cfg.PeriodicInterval <= 0 {
		cfg.PeriodicInterval = DefaultConfig().PeriodicInterval
	}
	return &service{
		apiClient:    apiClient,
		caseStorage:  caseStorage,
		queueStorage: queueStorage,
		metadata:     metadata,
		authSvc:      authSvc,
		connectivity: connectivity,
		logger:       logger,
		cfg:          cfg,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SyncCases выполняет инкрементальную синхронизацию.
// Одновременно может идти только одна: конкурентный вызов получает
// {Success:false, Err:ErrSyncInProgress} и не трогает ни кеш, ни timestamp.
func (s *service) SyncCases(ctx context.Context) *SyncResult {
	if !s.inProgress.CompareAndSwap(false, true) {
		return &SyncResult{Success: false, Err: ErrSyncInProgress}
	}
	defer s.inProgress.Store(false)

	return s.doSync(ctx)
}

// ForceSyncCases именованный путь запуска для realtime-событий
func (s *service) ForceSyncCases(ctx context.Context) *SyncResult {
	return s.SyncCases(ctx)
}

func (s *service) doSync(ctx context.Context) *SyncResult {
	if !s.connectivity.IsOnline() {
		return &SyncResult{Success: false, Err: ErrOffline}
	}

	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return &SyncResult{Success: false, Err: err}
	}

	lastSync, err := s.metadata.GetLastSyncTimestamp(ctx)
	if err != nil {
		s.logger.Warn("Failed to get last sync timestamp, full sync", "error", err)
		lastSync = ""
	}

	s.logger.Info("Starting synchronization", "last_sync", lastSync)

	local, err := s.getLocalCases(ctx)
	if err != nil {
		return &SyncResult{Success: false, Err: err}
	}

	index := make(map[string]int, len(local))
	for i := range local {
		index[local[i].ID] = i
	}

	result := &SyncResult{}
	deleted := make(map[string]bool)
	cursor := lastSync

	for {
		data, err := s.apiClient.SyncDownload(ctx, accessToken, cursor, s.cfg.BatchLimit)
		if err != nil {
			return &SyncResult{Success: false, Err: fmt.Errorf("sync download failed: %w", err)}
		}

		for _, w := range data.Cases {
			incoming := models.CaseFromWire(w)
			if migrated, changed := models.MigrateOutcome(incoming.VerificationOutcome); changed {
				incoming.VerificationOutcome = migrated
			}

			if i, ok := index[incoming.ID]; ok {
				// Сервер выигрывает конфликт, но клиентские поля
				// (черновик, состояние отправки) серверу неизвестны
				incoming.IsSaved = local[i].IsSaved
				incoming.SavedAt = local[i].SavedAt
				incoming.SubmissionStatus = local[i].SubmissionStatus
				incoming.SubmissionError = local[i].SubmissionError
				incoming.LastSubmissionAt = local[i].LastSubmissionAt
				local[i] = incoming
				result.UpdatedCases++
			} else {
				local = append(local, incoming)
				index[incoming.ID] = len(local) - 1
				result.NewCases++
			}
		}

		for _, id := range data.DeletedCaseIDs {
			deleted[id] = true
		}

		cursor = data.SyncTimestamp
		if !data.HasMore {
			break
		}
	}

	if len(deleted) > 0 {
		kept := local[:0]
		for _, c := range local {
			if !deleted[c.ID] {
				kept = append(kept, c)
			}
		}
		local = kept
	}

	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		return &SyncResult{Success: false, Err: fmt.Errorf("failed to save cases: %w", err)}
	}

	// Timestamp продвигается только после успешного применения выгрузки
	if cursor != "" && cursor != lastSync {
		if err := s.metadata.SaveLastSyncTimestamp(ctx, cursor); err != nil {
			return &SyncResult{Success: false, Err: fmt.Errorf("failed to save sync timestamp: %w", err)}
		}
	}

	result.Success = true
	s.logger.Info("Synchronization completed",
		"new", result.NewCases,
		"updated", result.UpdatedCases,
		"deleted", len(deleted),
		"sync_timestamp", cursor)

	return result
}

// PendingCount возвращает количество мутаций, ожидающих повтора
func (s *service) PendingCount(ctx context.Context) (int, error) {
	queue, err := s.queueStorage.GetQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get queue: %w", err)
	}
	return len(queue), nil
}
