package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/caseflow/internal/server/storage"
	"github.com/iudanet/caseflow/internal/validation"
	"github.com/iudanet/caseflow/pkg/api"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Действия в истории дела
const (
	historyActionUpdated       = "UPDATED"
	historyActionStatusChanged = "STATUS_CHANGED"
	historyActionSubmitted     = "SUBMITTED"
)

// CaseNotifier defines interface for realtime push on case changes
type CaseNotifier interface {
	NotifyCaseStatusChanged(ctx context.Context, userID string, payload api.CaseStatusChangedPayload) error
	TriggerSync(userID string)
}

// CaseHandler обрабатывает мобильные запросы по делам верификации
type CaseHandler struct {
	logger      *slog.Logger
	caseStorage storage.CaseStorage
	notifier    CaseNotifier
}

// NewCaseHandler создает новый handler для дел.
// Nil notifier отключает realtime-рассылку.
func NewCaseHandler(logger *slog.Logger, caseStorage storage.CaseStorage, notifier CaseNotifier) *CaseHandler {
	return &CaseHandler{
		logger:      logger,
		caseStorage: caseStorage,
		notifier:    notifier,
	}
}

// List обрабатывает GET /api/mobile/cases
// Мобильный клиент видит только дела, назначенные на него
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}

	q := r.URL.Query()

	limit, err := validation.ParseLimit(q.Get("limit"), defaultPageLimit, maxPageLimit)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidLimit, err.Error())
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			page = 1
		}
	}

	filter := storage.CaseFilter{
		AssignedTo:       userID,
		Status:           q.Get("status"),
		VerificationType: q.Get("verificationType"),
		Search:           q.Get("search"),
		SortBy:           q.Get("sortBy"),
		SortOrder:        q.Get("sortOrder"),
		Page:             page,
		Limit:            limit,
	}

	records, total, err := h.caseStorage.ListCases(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list cases", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	cases := make([]api.Case, 0, len(records))
	for i := range records {
		cases = append(cases, caseToWire(&records[i]))
	}

	totalPages := (total + limit - 1) / limit

	resp := api.CaseListResponse{
		Success: true,
		Data: &api.CaseListData{
			Cases: cases,
			Pagination: api.Pagination{
				Page:       page,
				Limit:      limit,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/mobile/cases/{id}
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}

	record, ok := h.ownedCase(w, r, userID)
	if !ok {
		return
	}

	entries, err := h.caseStorage.CaseHistory(ctx, record.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get case history", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	history := make([]api.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, api.HistoryEntry{
			ID:        e.ID,
			Action:    e.Action,
			Timestamp: e.Timestamp.Format(time.RFC3339),
			UserID:    e.UserID,
			UserName:  e.UserName,
			Details:   e.Details,
		})
	}

	resp := api.CaseDetailResponse{
		Success: true,
		Data: &api.CaseDetailData{
			Case:    caseToWire(record),
			History: history,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PUT /api/mobile/cases/{id}
// Nil-поля запроса не изменяют дело
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}
	username, _ := GetUsername(ctx)

	var req api.CaseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInternalError, "invalid request body")
		return
	}

	record, ok := h.ownedCase(w, r, userID)
	if !ok {
		return
	}

	now := time.Now()
	oldStatus := record.Status
	var details []string
	statusChanged := false

	if req.Status != nil && *req.Status != record.Status {
		statusChanged = true
		details = append(details, fmt.Sprintf("status: %s -> %s", record.Status, *req.Status))
		record.Status = *req.Status
		if *req.Status == "IN_PROGRESS" && record.InProgressAt == nil {
			record.InProgressAt = &now
		}
		if *req.Status == "COMPLETED" && record.CompletedAt == nil {
			record.CompletedAt = &now
		}
	}
	if req.Priority != nil {
		record.Priority = priorityToWire(*req.Priority)
		details = append(details, fmt.Sprintf("priority: %s", record.Priority))
	}
	if req.VerificationOutcome != nil {
		record.VerificationOutcome = *req.VerificationOutcome
		details = append(details, "verification outcome updated")
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
		details = append(details, "notes updated")
	}
	if req.AssignedTo != nil {
		record.AssignedTo = *req.AssignedTo
		details = append(details, fmt.Sprintf("assigned to %s", *req.AssignedTo))
	}

	record.UpdatedAt = now

	if err := h.caseStorage.UpdateCase(ctx, record); err != nil {
		if errors.Is(err, storage.ErrCaseNotFound) {
			sendError(h.logger, w, http.StatusNotFound, api.CodeCaseNotFound, "case not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update case", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	action := historyActionUpdated
	if statusChanged {
		action = historyActionStatusChanged
	}
	h.appendHistory(ctx, record.ID, action, userID, username, joinDetails(details))

	if statusChanged {
		h.notifyStatusChanged(ctx, record, oldStatus, userID)
	}
	if h.notifier != nil {
		// Остальные устройства агента подтягивают изменение через sync
		h.notifier.TriggerSync(record.AssignedTo)
	}

	h.logger.InfoContext(ctx, "case updated",
		slog.String("case_id", record.ID),
		slog.String("user_id", userID),
		slog.String("action", action))

	resp := api.CaseUpdateResponse{
		Success: true,
		Data:    &api.CaseUpdateData{Case: caseToWire(record)},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Submit обрабатывает POST /api/mobile/cases/{id}/submit
// Финальная отправка завершенного дела с мобильного клиента
func (h *CaseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}
	username, _ := GetUsername(ctx)

	var req api.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode submit request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInternalError, "invalid request body")
		return
	}

	record, ok := h.ownedCase(w, r, userID)
	if !ok {
		return
	}

	now := time.Now()
	oldStatus := record.Status
	record.Status = "COMPLETED"
	if record.CompletedAt == nil {
		record.CompletedAt = &now
	}
	// Снимок клиента авторитетен для полей, заполняемых агентом
	if req.CaseData.VerificationOutcome != "" {
		record.VerificationOutcome = req.CaseData.VerificationOutcome
	}
	if req.CaseData.Notes != "" {
		record.Notes = req.CaseData.Notes
	}
	record.UpdatedAt = now

	if err := h.caseStorage.UpdateCase(ctx, record); err != nil {
		if errors.Is(err, storage.ErrCaseNotFound) {
			sendError(h.logger, w, http.StatusNotFound, api.CodeCaseNotFound, "case not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to submit case", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	h.appendHistory(ctx, record.ID, historyActionSubmitted, userID, username,
		fmt.Sprintf("submitted from device at %s", req.Timestamp))

	if oldStatus != record.Status {
		h.notifyStatusChanged(ctx, record, oldStatus, userID)
	}
	if h.notifier != nil {
		h.notifier.TriggerSync(record.AssignedTo)
	}

	h.logger.InfoContext(ctx, "case submitted",
		slog.String("case_id", record.ID),
		slog.String("user_id", userID))

	resp := api.CaseUpdateResponse{
		Success: true,
		Data:    &api.CaseUpdateData{Case: caseToWire(record)},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ownedCase достает дело из path parameter и проверяет принадлежность
// агенту. Чужие и отозванные дела не раскрываются — всегда 404.
func (h *CaseHandler) ownedCase(w http.ResponseWriter, r *http.Request, userID string) (*storage.CaseRecord, bool) {
	ctx := r.Context()

	caseID := r.PathValue("id")
	if caseID == "" {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeCaseNotFound, "case id is required")
		return nil, false
	}

	record, err := h.caseStorage.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, storage.ErrCaseNotFound) {
			sendError(h.logger, w, http.StatusNotFound, api.CodeCaseNotFound, "case not found")
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get case", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return nil, false
	}

	if record.Deleted || record.AssignedTo != userID {
		h.logger.WarnContext(ctx, "case access denied",
			slog.String("case_id", caseID), slog.String("user_id", userID))
		sendError(h.logger, w, http.StatusNotFound, api.CodeCaseNotFound, "case not found")
		return nil, false
	}

	return record, true
}

// notifyStatusChanged рассылает смену статуса на устройства агента
// и подписчикам дела. Рассылка вторична, ошибка не прерывает запрос.
func (h *CaseHandler) notifyStatusChanged(ctx context.Context, record *storage.CaseRecord, oldStatus, updatedBy string) {
	if h.notifier == nil {
		return
	}
	payload := api.CaseStatusChangedPayload{
		CaseID:    record.ID,
		OldStatus: oldStatus,
		NewStatus: record.Status,
		UpdatedBy: updatedBy,
	}
	if err := h.notifier.NotifyCaseStatusChanged(ctx, record.AssignedTo, payload); err != nil {
		h.logger.WarnContext(ctx, "failed to push status change",
			slog.String("case_id", record.ID), slog.Any("error", err))
	}
}

func (h *CaseHandler) appendHistory(ctx context.Context, caseID, action, userID, username, details string) {
	entry := &storage.HistoryRecord{
		ID:        uuid.New().String(),
		CaseID:    caseID,
		Action:    action,
		UserID:    userID,
		UserName:  username,
		Details:   details,
		Timestamp: time.Now(),
	}
	// История вторична, ошибка не прерывает запрос
	if err := h.caseStorage.AppendHistory(ctx, entry); err != nil {
		h.logger.WarnContext(ctx, "failed to append case history",
			slog.String("case_id", caseID), slog.Any("error", err))
	}
}

// caseToWire конвертирует серверную запись в wire-формат мобильного API
func caseToWire(c *storage.CaseRecord) api.Case {
	wire := api.Case{
		ID:                  c.ID,
		CaseID:              c.CaseNumber,
		Title:               c.Title,
		Description:         c.Description,
		Status:              c.Status,
		Priority:            c.Priority,
		VerificationType:    c.VerificationType,
		VerificationOutcome: c.VerificationOutcome,
		CustomerName:        c.CustomerName,
		CustomerContact:     c.CustomerContact,
		ClientName:          c.ClientName,
		VisitAddress:        c.VisitAddress,
		Notes:               c.Notes,
		AssignedTo:          c.AssignedTo,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
	if c.CompletedAt != nil {
		wire.CompletedAt = c.CompletedAt.Format(time.RFC3339)
	}
	if c.InProgressAt != nil {
		wire.InProgressAt = c.InProgressAt.Format(time.RFC3339)
	}
	return wire
}

// priorityToWire конвертирует числовой приоритет клиента в серверную нотацию
func priorityToWire(p int) string {
	switch p {
	case 1:
		return "LOW"
	case 2:
		return "MEDIUM"
	case 3:
		return "HIGH"
	default:
		return ""
	}
}

func joinDetails(details []string) string {
	out := ""
	for i, d := range details {
		if i > 0 {
			out += "; "
		}
		out += d
	}
	return out
}
