package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/caseflow/internal/server/storage"
	"github.com/iudanet/caseflow/internal/validation"
	"github.com/iudanet/caseflow/pkg/api"
)

const (
	defaultSyncLimit = 100
	maxSyncLimit     = 500
)

// SyncHandler обрабатывает инкрементальную выгрузку дел на мобильный клиент
type SyncHandler struct {
	logger      *slog.Logger
	caseStorage storage.CaseStorage
}

// NewSyncHandler создает новый handler для синхронизации
func NewSyncHandler(logger *slog.Logger, caseStorage storage.CaseStorage) *SyncHandler {
	return &SyncHandler{
		logger:      logger,
		caseStorage: caseStorage,
	}
}

// Download обрабатывает GET /api/mobile/sync/download?lastSyncTimestamp=...&limit=...
// Отдает дела агента, измененные после lastSyncTimestamp, и id отозванных дел
func (h *SyncHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}

	q := r.URL.Query()

	limit, err := validation.ParseLimit(q.Get("limit"), defaultSyncLimit, maxSyncLimit)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid sync limit", slog.String("limit", q.Get("limit")))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidLimit, err.Error())
		return
	}

	since, err := validation.ParseSyncTimestamp(q.Get("lastSyncTimestamp"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid sync timestamp",
			slog.String("lastSyncTimestamp", q.Get("lastSyncTimestamp")))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidTimestamp, err.Error())
		return
	}

	records, hasMore, err := h.caseStorage.ChangedSince(ctx, userID, since, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query changed cases", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	deletedIDs, err := h.caseStorage.DeletedSince(ctx, userID, since)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query deleted cases", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	cases := make([]api.Case, 0, len(records))
	for i := range records {
		cases = append(cases, caseToWire(&records[i]))
	}
	if deletedIDs == nil {
		deletedIDs = []string{}
	}

	// При неполной выгрузке курсор указывает на последнюю отданную запись,
	// чтобы клиент продолжил с нее. При полной — серверное "сейчас".
	// Форматируем с наносекундами: курсор с секундной точностью откатывался
	// бы назад и повторно отдавал записи, измененные в ту же секунду.
	syncTimestamp := time.Now()
	if hasMore && len(records) > 0 {
		syncTimestamp = records[len(records)-1].UpdatedAt
	}

	h.logger.InfoContext(ctx, "sync download",
		slog.String("user_id", userID),
		slog.Int("cases", len(cases)),
		slog.Int("deleted", len(deletedIDs)),
		slog.Bool("has_more", hasMore))

	resp := api.SyncDownloadResponse{
		Success: true,
		Data: &api.SyncDownloadData{
			Cases:          cases,
			DeletedCaseIDs: deletedIDs,
			SyncTimestamp:  syncTimestamp.Format(time.RFC3339Nano),
			HasMore:        hasMore,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
