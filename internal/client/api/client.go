package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/caseflow/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс REST клиента мобильного API
type ClientAPI interface {
	// Login выполняет аутентификацию полевого агента
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenData, error)

	// Refresh обменивает refresh token на новую пару токенов
	Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenData, error)

	// ListCases возвращает страницу дел по фильтру
	ListCases(ctx context.Context, accessToken string, params api.CaseListParams) (*api.CaseListData, error)

	// GetCase возвращает дело с историей изменений
	GetCase(ctx context.Context, accessToken, id string) (*api.CaseDetailData, error)

	// UpdateCase обновляет поля дела на сервере
	UpdateCase(ctx context.Context, accessToken, id string, req api.CaseUpdateRequest) (*api.Case, error)

	// SubmitCase отправляет заполненное дело на сервер
	SubmitCase(ctx context.Context, accessToken, id string, req api.SubmitRequest) error

	// SyncDownload возвращает дела, измененные после lastSyncTimestamp
	SyncDownload(ctx context.Context, accessToken, lastSyncTimestamp string, limit int) (*api.SyncDownloadData, error)
}

// Client представляет HTTP клиент для взаимодействия с backend API
type Client struct {
	httpClient *http.Client
	baseURL    string
	appVersion string
	deviceID   string
}

// NewClient создает новый API клиент.
// appVersion и deviceID уходят в заголовки X-App-Version / X-Device-ID:
// по ним сервер отличает мобильного клиента.
func NewClient(baseURL, appVersion, deviceID string) *Client {
	return &Client{
		baseURL:    baseURL,
		appVersion: appVersion,
		deviceID:   deviceID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login выполняет аутентификацию полевого агента
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenData, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/mobile/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "login rejected")
	}
	return resp.Data, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenData, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/mobile/auth/refresh", "", req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "refresh rejected")
	}
	return resp.Data, nil
}

// ListCases возвращает страницу дел по фильтру
func (c *Client) ListCases(ctx context.Context, accessToken string, params api.CaseListParams) (*api.CaseListData, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.VerificationType != "" {
		q.Set("verificationType", params.VerificationType)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sortOrder", params.SortOrder)
	}
	if params.AssignedToMe {
		q.Set("assignedToMe", "true")
	}

	path := "/api/mobile/cases"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.CaseListResponse
	if err := c.doGetWithRetry(ctx, path, accessToken, &resp); err != nil {
		return nil, fmt.Errorf("list cases request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "list cases rejected")
	}
	return resp.Data, nil
}

// GetCase возвращает дело с историей изменений
func (c *Client) GetCase(ctx context.Context, accessToken, id string) (*api.CaseDetailData, error) {
	var resp api.CaseDetailResponse
	path := "/api/mobile/cases/" + url.PathEscape(id)
	if err := c.doGetWithRetry(ctx, path, accessToken, &resp); err != nil {
		return nil, fmt.Errorf("get case request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "get case rejected")
	}
	return resp.Data, nil
}

// UpdateCase обновляет поля дела на сервере
func (c *Client) UpdateCase(ctx context.Context, accessToken, id string, req api.CaseUpdateRequest) (*api.Case, error) {
	var resp api.CaseUpdateResponse
	path := "/api/mobile/cases/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("update case request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "update case rejected")
	}
	return &resp.Data.Case, nil
}

// SubmitCase отправляет заполненное дело на сервер
func (c *Client) SubmitCase(ctx context.Context, accessToken, id string, req api.SubmitRequest) error {
	var resp api.Response
	path := "/api/mobile/cases/" + url.PathEscape(id) + "/submit"
	if err := c.doRequest(ctx, http.MethodPost, path, accessToken, req, &resp); err != nil {
		return fmt.Errorf("submit case request failed: %w", err)
	}
	if !resp.Success {
		return envelopeError(resp.Error, "submission rejected")
	}
	return nil
}

// SyncDownload возвращает дела, измененные после lastSyncTimestamp
func (c *Client) SyncDownload(ctx context.Context, accessToken, lastSyncTimestamp string, limit int) (*api.SyncDownloadData, error) {
	q := url.Values{}
	if lastSyncTimestamp != "" {
		q.Set("lastSyncTimestamp", lastSyncTimestamp)
	}
	q.Set("limit", strconv.Itoa(limit))

	var resp api.SyncDownloadResponse
	path := "/api/mobile/sync/download?" + q.Encode()
	if err := c.doGetWithRetry(ctx, path, accessToken, &resp); err != nil {
		return nil, fmt.Errorf("sync download request failed: %w", err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, envelopeError(resp.Error, "sync download rejected")
	}
	return resp.Data, nil
}

// doGetWithRetry выполняет идемпотентный GET с ограниченным повтором.
// Повторяются только транспортные ошибки и 5xx; ошибки уровня API
// (4xx, отказ в конверте) не повторяются.
func (c *Client) doGetWithRetry(ctx context.Context, path, accessToken string, result interface{}) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, result)
		if err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

// serverError ошибка HTTP уровня с кодом статуса
type serverError struct {
	status int
	body   string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.status, e.body)
}

// isTransient определяет, имеет ли смысл повтор запроса
func isTransient(err error) bool {
	var se *serverError
	if errors.As(err, &se) {
		return se.status >= 500
	}
	// Сетевые ошибки транспорта (до получения ответа) считаем временными
	var ue *url.Error
	return errors.As(err, &ue)
}

// envelopeError конвертирует ошибку из конверта ответа в Go ошибку
func envelopeError(apiErr *api.Error, fallback string) error {
	if apiErr != nil {
		if apiErr.Message != "" {
			return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%s", apiErr.Code)
	}
	return fmt.Errorf("%s", fallback)
}

// doRequest выполняет HTTP запрос с мобильными заголовками
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Платформенные заголовки: по ним сервер пускает на /api/mobile/*
	req.Header.Set(api.HeaderAppVersion, c.appVersion)
	req.Header.Set(api.HeaderPlatform, api.PlatformMobile)
	if c.deviceID != "" {
		req.Header.Set(api.HeaderDeviceID, c.deviceID)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// 4xx/5xx без разбора конверта: тело может быть любым
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Пытаемся вытащить структурированную ошибку из конверта
		var envelope api.Response
		if jsonErr := json.Unmarshal(respBody, &envelope); jsonErr == nil && envelope.Error != nil {
			// Сохраняем статус для ретрая, но показываем код API
			if resp.StatusCode >= 500 {
				return &serverError{status: resp.StatusCode, body: envelope.Error.Code}
			}
			return envelopeError(envelope.Error, "request rejected")
		}
		return &serverError{status: resp.StatusCode, body: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
