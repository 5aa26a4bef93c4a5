package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/internal/server/storage"
	"github.com/iudanet/caseflow/pkg/api"
)

// mockCaseStorage is a mock implementation of CaseStorage for testing
type mockCaseStorage struct {
	cases      map[string]*storage.CaseRecord
	history    []storage.HistoryRecord
	lastFilter storage.CaseFilter
	listResult []storage.CaseRecord
	listTotal  int

	changedResult []storage.CaseRecord
	changedSince  time.Time
	changedLimit  int
	hasMore       bool
	deletedIDs    []string
}

func newMockCaseStorage() *mockCaseStorage {
	return &mockCaseStorage{cases: make(map[string]*storage.CaseRecord)}
}

func (m *mockCaseStorage) CreateCase(ctx context.Context, c *storage.CaseRecord) error {
	cp := *c
	m.cases[c.ID] = &cp
	return nil
}

func (m *mockCaseStorage) GetCase(ctx context.Context, id string) (*storage.CaseRecord, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, storage.ErrCaseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCaseStorage) ListCases(ctx context.Context, f storage.CaseFilter) ([]storage.CaseRecord, int, error) {
	m.lastFilter = f
	return m.listResult, m.listTotal, nil
}

func (m *mockCaseStorage) UpdateCase(ctx context.Context, c *storage.CaseRecord) error {
	if _, ok := m.cases[c.ID]; !ok {
		return storage.ErrCaseNotFound
	}
	cp := *c
	m.cases[c.ID] = &cp
	return nil
}

func (m *mockCaseStorage) SoftDeleteCase(ctx context.Context, id string, at time.Time) error {
	c, ok := m.cases[id]
	if !ok || c.Deleted {
		return storage.ErrCaseNotFound
	}
	c.Deleted = true
	c.DeletedAt = &at
	return nil
}

func (m *mockCaseStorage) ChangedSince(ctx context.Context, userID string, since time.Time, limit int) ([]storage.CaseRecord, bool, error) {
	m.changedSince = since
	m.changedLimit = limit
	return m.changedResult, m.hasMore, nil
}

func (m *mockCaseStorage) DeletedSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	return m.deletedIDs, nil
}

func (m *mockCaseStorage) AppendHistory(ctx context.Context, h *storage.HistoryRecord) error {
	m.history = append(m.history, *h)
	return nil
}

func (m *mockCaseStorage) CaseHistory(ctx context.Context, caseID string) ([]storage.HistoryRecord, error) {
	var entries []storage.HistoryRecord
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].CaseID == caseID {
			entries = append(entries, m.history[i])
		}
	}
	return entries, nil
}

func testCaseRecord(id, agentID string) *storage.CaseRecord {
	now := time.Now()
	return &storage.CaseRecord{
		ID:               id,
		CaseNumber:       4001,
		Title:            "Address verification",
		Status:           "ASSIGNED",
		Priority:         "MEDIUM",
		VerificationType: "ADDRESS",
		CustomerName:     "Ivan Ivanov",
		AssignedTo:       agentID,
		CreatedAt:        now.Add(-time.Hour),
		UpdatedAt:        now,
	}
}

// mockCaseNotifier is a mock implementation of CaseNotifier for testing
type mockCaseNotifier struct {
	statusCalls  []api.CaseStatusChangedPayload
	statusUsers  []string
	syncTriggers []string
	notifyErr    error
}

func (m *mockCaseNotifier) NotifyCaseStatusChanged(_ context.Context, userID string, payload api.CaseStatusChangedPayload) error {
	m.statusUsers = append(m.statusUsers, userID)
	m.statusCalls = append(m.statusCalls, payload)
	return m.notifyErr
}

func (m *mockCaseNotifier) TriggerSync(userID string) {
	m.syncTriggers = append(m.syncTriggers, userID)
}

func newTestCaseHandler(t *testing.T) (*CaseHandler, *mockCaseStorage) {
	t.Helper()

	store := newMockCaseStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCaseHandler(logger, store, nil), store
}

func newNotifyingCaseHandler(t *testing.T) (*CaseHandler, *mockCaseStorage, *mockCaseNotifier) {
	t.Helper()

	store := newMockCaseStorage()
	notifier := &mockCaseNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCaseHandler(logger, store, notifier), store, notifier
}

// authedRequest подкладывает в контекст пользователя, как это делает AuthMiddleware
func authedRequest(method, target, userID string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, UsernameKey, "agent.petrov")
	ctx = context.WithValue(ctx, UserRoleKey, storage.RoleFieldAgent)
	return req.WithContext(ctx)
}

func TestCaseList_ScopedToAgent(t *testing.T) {
	h, store := newTestCaseHandler(t)
	store.listResult = []storage.CaseRecord{*testCaseRecord("case-1", "user-1")}
	store.listTotal = 45

	req := authedRequest(http.MethodGet,
		"/api/mobile/cases?status=IN_PROGRESS&search=ivanov&sortBy=priority&sortOrder=asc&page=2&limit=20",
		"user-1", nil)

	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Фильтр всегда ограничен текущим агентом
	assert.Equal(t, "user-1", store.lastFilter.AssignedTo)
	assert.Equal(t, "IN_PROGRESS", store.lastFilter.Status)
	assert.Equal(t, "ivanov", store.lastFilter.Search)
	assert.Equal(t, "priority", store.lastFilter.SortBy)
	assert.Equal(t, "asc", store.lastFilter.SortOrder)
	assert.Equal(t, 2, store.lastFilter.Page)
	assert.Equal(t, 20, store.lastFilter.Limit)

	var resp api.CaseListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.Len(t, resp.Data.Cases, 1)
	assert.Equal(t, int64(4001), resp.Data.Cases[0].CaseID)
	assert.Equal(t, 45, resp.Data.Pagination.Total)
	assert.Equal(t, 3, resp.Data.Pagination.TotalPages)
}

func TestCaseList_InvalidLimit(t *testing.T) {
	h, _ := newTestCaseHandler(t)

	for _, limit := range []string{"abc", "0", "-5"} {
		req := authedRequest(http.MethodGet, "/api/mobile/cases?limit="+limit, "user-1", nil)
		w := httptest.NewRecorder()
		h.List(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)

		var resp api.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, api.CodeInvalidLimit, resp.Error.Code)
	}
}

func TestCaseGet(t *testing.T) {
	h, store := newTestCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))
	require.NoError(t, store.AppendHistory(context.Background(), &storage.HistoryRecord{
		ID: "h-1", CaseID: "case-1", Action: "CREATED", UserID: "system", Timestamp: time.Now(),
	}))

	req := authedRequest(http.MethodGet, "/api/mobile/cases/case-1", "user-1", nil)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CaseDetailResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "case-1", resp.Data.Case.ID)
	require.Len(t, resp.Data.History, 1)
	assert.Equal(t, "CREATED", resp.Data.History[0].Action)
}

func TestCaseGet_NotFoundCases(t *testing.T) {
	h, store := newTestCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "someone-else")))

	revoked := testCaseRecord("case-2", "user-1")
	revoked.Deleted = true
	require.NoError(t, store.CreateCase(context.Background(), revoked))

	tests := []struct {
		name   string
		caseID string
	}{
		{name: "missing case", caseID: "missing"},
		{name: "foreign case", caseID: "case-1"},
		{name: "revoked case", caseID: "case-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/api/mobile/cases/"+tt.caseID, "user-1", nil)
			req.SetPathValue("id", tt.caseID)

			w := httptest.NewRecorder()
			h.Get(w, req)

			require.Equal(t, http.StatusNotFound, w.Code)

			var resp api.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, api.CodeCaseNotFound, resp.Error.Code)
		})
	}
}

func TestCaseUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	h, store := newTestCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))

	status := "IN_PROGRESS"
	notes := "На месте, жду клиента"
	body, err := json.Marshal(api.CaseUpdateRequest{Status: &status, Notes: &notes})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/mobile/cases/case-1", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CaseUpdateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "IN_PROGRESS", resp.Data.Case.Status)
	assert.Equal(t, notes, resp.Data.Case.Notes)
	// Не переданные поля не тронуты
	assert.Equal(t, "MEDIUM", resp.Data.Case.Priority)
	assert.NotEmpty(t, resp.Data.Case.InProgressAt)

	// Смена статуса отражена в истории
	require.Len(t, store.history, 1)
	assert.Equal(t, historyActionStatusChanged, store.history[0].Action)
	assert.Equal(t, "user-1", store.history[0].UserID)
}

func TestCaseUpdate_PriorityConversion(t *testing.T) {
	h, store := newTestCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))

	priority := 3
	body, err := json.Marshal(api.CaseUpdateRequest{Priority: &priority})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/mobile/cases/case-1", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CaseUpdateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "HIGH", resp.Data.Case.Priority)

	// Обновление без смены статуса пишется как UPDATED
	require.Len(t, store.history, 1)
	assert.Equal(t, historyActionUpdated, store.history[0].Action)
}

func TestCaseSubmit(t *testing.T) {
	h, store := newTestCaseHandler(t)
	record := testCaseRecord("case-1", "user-1")
	record.Status = "IN_PROGRESS"
	require.NoError(t, store.CreateCase(context.Background(), record))

	submitted := *record
	submitted.Status = "COMPLETED"
	body, err := json.Marshal(api.SubmitRequest{
		CaseData:  caseToWireSubmit(&submitted, "POSITIVE", "Личность подтверждена"),
		Timestamp: time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/api/mobile/cases/case-1/submit", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Submit(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CaseUpdateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "COMPLETED", resp.Data.Case.Status)
	assert.Equal(t, "POSITIVE", resp.Data.Case.VerificationOutcome)
	assert.NotEmpty(t, resp.Data.Case.CompletedAt)

	require.Len(t, store.history, 1)
	assert.Equal(t, historyActionSubmitted, store.history[0].Action)
}

func TestCaseUpdate_PushesStatusChange(t *testing.T) {
	h, store, notifier := newNotifyingCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))

	status := "IN_PROGRESS"
	body, err := json.Marshal(api.CaseUpdateRequest{Status: &status})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/mobile/cases/case-1", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Update(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, notifier.statusCalls, 1)
	assert.Equal(t, "user-1", notifier.statusUsers[0])
	assert.Equal(t, "case-1", notifier.statusCalls[0].CaseID)
	assert.Equal(t, "ASSIGNED", notifier.statusCalls[0].OldStatus)
	assert.Equal(t, "IN_PROGRESS", notifier.statusCalls[0].NewStatus)
	assert.Equal(t, "user-1", notifier.statusCalls[0].UpdatedBy)

	// Остальные устройства агента получают запрос на синхронизацию
	assert.Equal(t, []string{"user-1"}, notifier.syncTriggers)
}

func TestCaseUpdate_PushWithoutStatusChange(t *testing.T) {
	h, store, notifier := newNotifyingCaseHandler(t)
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))

	notes := "Телефон не отвечает"
	body, err := json.Marshal(api.CaseUpdateRequest{Notes: &notes})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/mobile/cases/case-1", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Update(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Статус не менялся — событие не рассылается, sync запрашивается
	assert.Empty(t, notifier.statusCalls)
	assert.Equal(t, []string{"user-1"}, notifier.syncTriggers)
}

func TestCaseSubmit_PushesCompletion(t *testing.T) {
	h, store, notifier := newNotifyingCaseHandler(t)
	record := testCaseRecord("case-1", "user-1")
	record.Status = "IN_PROGRESS"
	require.NoError(t, store.CreateCase(context.Background(), record))

	submitted := *record
	submitted.Status = "COMPLETED"
	body, err := json.Marshal(api.SubmitRequest{
		CaseData:  caseToWireSubmit(&submitted, "POSITIVE", "Личность подтверждена"),
		Timestamp: time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/api/mobile/cases/case-1/submit", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Submit(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, notifier.statusCalls, 1)
	assert.Equal(t, "IN_PROGRESS", notifier.statusCalls[0].OldStatus)
	assert.Equal(t, "COMPLETED", notifier.statusCalls[0].NewStatus)
	assert.Equal(t, []string{"user-1"}, notifier.syncTriggers)
}

// Ошибка рассылки не ломает сам запрос
func TestCaseUpdate_PushFailureDoesNotFailRequest(t *testing.T) {
	h, store, notifier := newNotifyingCaseHandler(t)
	notifier.notifyErr = errors.New("no connections")
	require.NoError(t, store.CreateCase(context.Background(), testCaseRecord("case-1", "user-1")))

	status := "IN_PROGRESS"
	body, err := json.Marshal(api.CaseUpdateRequest{Status: &status})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/mobile/cases/case-1", "user-1", body)
	req.SetPathValue("id", "case-1")

	w := httptest.NewRecorder()
	h.Update(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func caseToWireSubmit(c *storage.CaseRecord, outcome, notes string) api.Case {
	wire := caseToWire(c)
	wire.VerificationOutcome = outcome
	wire.Notes = notes
	return wire
}
