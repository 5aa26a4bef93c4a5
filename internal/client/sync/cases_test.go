package sync

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/internal/client/auth"
	"github.com/iudanet/caseflow/internal/client/storage"
	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

func TestGetCases_Online(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	e.api.ListCasesFunc = func(_ context.Context, accessToken string, params api.CaseListParams) (*api.CaseListData, error) {
		require.Equal(t, "test-token", accessToken)
		require.Equal(t, 1, params.Page)
		return &api.CaseListData{
			Cases: []api.Case{
				{ID: "c-1", CaseID: 101, Title: "Residence check", Status: "ASSIGNED"},
				{ID: "c-2", CaseID: 102, Title: "Office check", Status: "IN_PROGRESS"},
			},
			Pagination: api.Pagination{Page: 1, Limit: 20, Total: 2, TotalPages: 1},
		}, nil
	}

	list, err := e.svc.GetCases(ctx, api.CaseListParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, list.Cases, 2)
	assert.Equal(t, 2, list.Pagination.Total)

	// Серверная выборка должна осесть в локальном кеше
	cached, err := e.store.GetCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestGetCases_OnlinePreservesLocalOnly(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	// Локальная запись, которой нет в серверном ответе
	require.NoError(t, e.store.SaveCases(ctx, []models.Case{
		{ID: "c-local", CaseID: 999, Title: "Draft only", Status: models.StatusInProgress, IsSaved: true},
	}))

	e.api.ListCasesFunc = func(_ context.Context, _ string, _ api.CaseListParams) (*api.CaseListData, error) {
		return &api.CaseListData{
			Cases:      []api.Case{{ID: "c-1", CaseID: 101, Status: "ASSIGNED"}},
			Pagination: api.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
		}, nil
	}

	_, err := e.svc.GetCases(ctx, api.CaseListParams{})
	require.NoError(t, err)

	cached, err := e.store.GetCases(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)

	local, err := e.store.GetCase(ctx, "c-local")
	require.NoError(t, err)
	assert.True(t, local.IsSaved)
}

func TestGetCases_OfflineFallback(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	p2 := models.PriorityMedium
	p3 := models.PriorityHigh
	require.NoError(t, e.store.SaveCases(ctx, []models.Case{
		{ID: "c-1", CaseID: 101, Title: "Residence check", Status: models.StatusAssigned, VerificationType: models.TypeResidence, UpdatedAt: "2024-01-01T10:00:00Z", Priority: &p2},
		{ID: "c-2", CaseID: 102, Title: "Office check", Status: models.StatusInProgress, VerificationType: models.TypeOffice, UpdatedAt: "2024-01-03T10:00:00Z", Priority: &p3},
		{ID: "c-3", CaseID: 103, Title: "Another residence", Status: models.StatusAssigned, VerificationType: models.TypeResidence, UpdatedAt: "2024-01-02T10:00:00Z"},
	}))

	e.online.Store(false)

	// Фильтр по статусу
	list, err := e.svc.GetCases(ctx, api.CaseListParams{Status: "Assigned"})
	require.NoError(t, err)
	require.Len(t, list.Cases, 2)
	assert.Equal(t, 2, list.Pagination.Total)
	// Сортировка по умолчанию: updatedAt desc
	assert.Equal(t, "c-3", list.Cases[0].ID)
	assert.Equal(t, "c-1", list.Cases[1].ID)

	// Подстрочный поиск без учета регистра
	list, err = e.svc.GetCases(ctx, api.CaseListParams{Search: "office"})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, "c-2", list.Cases[0].ID)

	// Поиск по номеру дела
	list, err = e.svc.GetCases(ctx, api.CaseListParams{Search: "103"})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, "c-3", list.Cases[0].ID)

	// Сортировка по приоритету asc: отсутствующий приоритет идет первым
	list, err = e.svc.GetCases(ctx, api.CaseListParams{SortBy: "priority", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, list.Cases, 3)
	assert.Equal(t, "c-3", list.Cases[0].ID)
	assert.Equal(t, "c-2", list.Cases[2].ID)

	// Постраничная нарезка
	list, err = e.svc.GetCases(ctx, api.CaseListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, 3, list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.TotalPages)

	// Страница за пределами коллекции пуста, но отвечает честными итогами
	list, err = e.svc.GetCases(ctx, api.CaseListParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, list.Cases)
	assert.Equal(t, 3, list.Pagination.Total)
}

func TestGetCases_RemoteFailureFallsBack(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	require.NoError(t, e.store.SaveCases(ctx, []models.Case{
		{ID: "c-1", CaseID: 101, Title: "Residence check", Status: models.StatusAssigned},
	}))

	e.api.ListCasesFunc = func(_ context.Context, _ string, _ api.CaseListParams) (*api.CaseListData, error) {
		return nil, assert.AnError
	}

	list, err := e.svc.GetCases(ctx, api.CaseListParams{})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, "c-1", list.Cases[0].ID)
}

// countingCaseStorage считает записи снимка, чтобы проверить что миграция
// перезаписывает хранилище только при фактических изменениях
type countingCaseStorage struct {
	storage.CaseStorage
	saves atomic.Int32
}

func (c *countingCaseStorage) SaveCases(ctx context.Context, cases []models.Case) error {
	c.saves.Add(1)
	return c.CaseStorage.SaveCases(ctx, cases)
}

func TestGetCases_OutcomeMigrationOnRead(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	require.NoError(t, e.store.SaveCases(ctx, []models.Case{
		{ID: "c-1", CaseID: 101, Status: models.StatusCompleted, VerificationOutcome: "Positive & Door Lock"},
		{ID: "c-2", CaseID: 102, Status: models.StatusCompleted, VerificationOutcome: "ERT"},
		{ID: "c-3", CaseID: 103, Status: models.StatusCompleted, VerificationOutcome: "Positive"},
	}))

	counting := &countingCaseStorage{CaseStorage: e.store}
	svc := NewService(e.api, counting, e.store, e.store, &auth.ServiceMock{}, &ConnectivityMock{
		IsOnlineFunc: func() bool { return false },
	}, testLogger(), Config{})

	list, err := svc.GetCases(ctx, api.CaseListParams{})
	require.NoError(t, err)
	require.Len(t, list.Cases, 3)

	outcomes := map[string]string{}
	for _, c := range list.Cases {
		outcomes[c.ID] = c.VerificationOutcome
	}
	assert.Equal(t, "Positive", outcomes["c-1"])
	assert.Equal(t, "Not Verified", outcomes["c-2"])
	assert.Equal(t, "Positive", outcomes["c-3"])

	// Первый проход переписал хранилище один раз
	assert.Equal(t, int32(1), counting.saves.Load())

	// Повторное чтение уже ничего не мигрирует и не пишет
	_, err = svc.GetCases(ctx, api.CaseListParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), counting.saves.Load())
}

func TestGetCase_LocalHitAndRemoteMiss(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	require.NoError(t, e.store.SaveCases(ctx, []models.Case{
		{ID: "c-1", CaseID: 101, Title: "Residence check", Status: models.StatusAssigned},
	}))

	c, err := e.svc.GetCase(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(101), c.CaseID)
	assert.Empty(t, e.api.GetCaseCalls())

	e.api.GetCaseFunc = func(_ context.Context, _ string, id string) (*api.CaseDetailData, error) {
		require.Equal(t, "c-9", id)
		return &api.CaseDetailData{
			Case: api.Case{ID: "c-9", CaseID: 109, Title: "Fetched", Status: "ASSIGNED"},
		}, nil
	}

	c, err = e.svc.GetCase(ctx, "c-9")
	require.NoError(t, err)
	assert.Equal(t, int64(109), c.CaseID)

	// Дотянутое с сервера дело кешируется
	cached, err := e.store.GetCase(ctx, "c-9")
	require.NoError(t, err)
	assert.Equal(t, "Fetched", cached.Title)
}

func TestGetCase_EmptyID(t *testing.T) {
	e := newTestEngine(t, Config{})
	_, err := e.svc.GetCase(context.Background(), "")
	require.Error(t, err)
}
