package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caseflow/pkg/api"
)

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/mobile/auth/login", r.URL.Path)
		require.Equal(t, api.PlatformMobile, r.Header.Get(api.HeaderPlatform))
		require.Equal(t, "1.2.3", r.Header.Get(api.HeaderAppVersion))
		require.Equal(t, "device-1", r.Header.Get(api.HeaderDeviceID))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "agent1", req.Username)
		require.Equal(t, "secret", req.Password)

		resp := api.LoginResponse{
			Success: true,
			Data: &api.TokenData{
				User:         api.UserInfo{ID: "u-1", Username: "agent1", Name: "Agent One", Role: "FIELD_AGENT"},
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				ExpiresIn:    900,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	data, err := client.Login(context.Background(), api.LoginRequest{
		Username: "agent1",
		Password: "secret",
		DeviceID: "device-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", data.AccessToken)
	assert.Equal(t, "FIELD_AGENT", data.User.Role)
}

func TestClient_LoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.Response{
			Success: false,
			Error:   &api.Error{Code: api.CodeInvalidCredentials, Message: "invalid username or password"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "")
	_, err := client.Login(context.Background(), api.LoginRequest{Username: "agent1", Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), api.CodeInvalidCredentials)
}

func TestClient_ListCases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/mobile/cases", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("limit"))
		require.Equal(t, "In Progress", q.Get("status"))
		require.Equal(t, "updatedAt", q.Get("sortBy"))
		require.Equal(t, "desc", q.Get("sortOrder"))
		require.Equal(t, "true", q.Get("assignedToMe"))

		resp := api.CaseListResponse{
			Success: true,
			Data: &api.CaseListData{
				Cases: []api.Case{
					{ID: "c-1", CaseID: 101, Title: "Residence check", Status: "IN_PROGRESS"},
					{ID: "c-2", CaseID: 102, Title: "Office check", Status: "ASSIGNED"},
				},
				Pagination: api.Pagination{Page: 2, Limit: 10, Total: 12, TotalPages: 2},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	data, err := client.ListCases(context.Background(), "token-123", api.CaseListParams{
		Page:         2,
		Limit:        10,
		Status:       "In Progress",
		SortBy:       "updatedAt",
		SortOrder:    "desc",
		AssignedToMe: true,
	})
	require.NoError(t, err)
	require.Len(t, data.Cases, 2)
	assert.Equal(t, "c-1", data.Cases[0].ID)
	assert.Equal(t, 12, data.Pagination.Total)
}

func TestClient_GetCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/mobile/cases/c-1", r.URL.Path)

		resp := api.CaseDetailResponse{
			Success: true,
			Data: &api.CaseDetailData{
				Case: api.Case{ID: "c-1", CaseID: 101, Title: "Residence check", Status: "ASSIGNED"},
				History: []api.HistoryEntry{
					{ID: "h-1", Action: "CREATED", Timestamp: "2024-01-10T10:00:00Z", UserID: "u-2", UserName: "backoffice"},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	data, err := client.GetCase(context.Background(), "token-123", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", data.Case.ID)
	require.Len(t, data.History, 1)
	assert.Equal(t, "CREATED", data.History[0].Action)
}

func TestClient_GetCaseNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.Response{
			Success: false,
			Error:   &api.Error{Code: api.CodeCaseNotFound, Message: "case not found"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	_, err := client.GetCase(context.Background(), "token-123", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), api.CodeCaseNotFound)
}

func TestClient_UpdateCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/mobile/cases/c-1", r.URL.Path)

		var req api.CaseUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Status)
		require.Equal(t, "IN_PROGRESS", *req.Status)
		require.Nil(t, req.Priority)

		resp := api.CaseUpdateResponse{
			Success: true,
			Data:    &api.CaseUpdateData{Case: api.Case{ID: "c-1", Status: "IN_PROGRESS"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	status := "IN_PROGRESS"
	client := NewClient(server.URL, "1.2.3", "device-1")
	updated, err := client.UpdateCase(context.Background(), "token-123", "c-1", api.CaseUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", updated.Status)
}

func TestClient_SubmitCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/mobile/cases/c-1/submit", r.URL.Path)

		var req api.SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "c-1", req.CaseData.ID)
		require.NotEmpty(t, req.Timestamp)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.Response{Success: true, Message: "case submitted"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	err := client.SubmitCase(context.Background(), "token-123", "c-1", api.SubmitRequest{
		CaseData:  api.Case{ID: "c-1", Status: "COMPLETED"},
		Timestamp: "2024-01-10T12:00:00Z",
	})
	require.NoError(t, err)
}

func TestClient_SyncDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/mobile/sync/download", r.URL.Path)
		require.Equal(t, "2024-01-10T10:00:00Z", r.URL.Query().Get("lastSyncTimestamp"))
		require.Equal(t, "100", r.URL.Query().Get("limit"))

		resp := api.SyncDownloadResponse{
			Success: true,
			Data: &api.SyncDownloadData{
				Cases:          []api.Case{{ID: "c-3", CaseID: 103, Title: "New assignment", Status: "ASSIGNED"}},
				DeletedCaseIDs: []string{"c-old"},
				SyncTimestamp:  "2024-01-10T11:00:00Z",
				HasMore:        false,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	data, err := client.SyncDownload(context.Background(), "token-123", "2024-01-10T10:00:00Z", 100)
	require.NoError(t, err)
	require.Len(t, data.Cases, 1)
	assert.Equal(t, []string{"c-old"}, data.DeletedCaseIDs)
	assert.Equal(t, "2024-01-10T11:00:00Z", data.SyncTimestamp)
	assert.False(t, data.HasMore)
}

func TestClient_SyncDownloadRetriesServerError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		resp := api.SyncDownloadResponse{
			Success: true,
			Data:    &api.SyncDownloadData{SyncTimestamp: "2024-01-10T11:00:00Z"},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	data, err := client.SyncDownload(context.Background(), "token-123", "", 100)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10T11:00:00Z", data.SyncTimestamp)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_SyncDownloadNoRetryOnBadRequest(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(api.Response{
			Success: false,
			Error:   &api.Error{Code: api.CodeInvalidTimestamp, Message: "lastSyncTimestamp must be RFC3339"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "1.2.3", "device-1")
	_, err := client.SyncDownload(context.Background(), "token-123", "garbage", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), api.CodeInvalidTimestamp)
	assert.Equal(t, int32(1), attempts.Load())
}
