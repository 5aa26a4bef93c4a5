package api

// SyncDownloadData полезная нагрузка инкрементальной выгрузки
// GET /api/mobile/sync/download
type SyncDownloadData struct {
	Cases          []Case   `json:"cases"`          // дела, измененные после lastSyncTimestamp
	DeletedCaseIDs []string `json:"deletedCaseIds"` // дела, отозванные с момента последней синхронизации
	SyncTimestamp  string   `json:"syncTimestamp"`  // серверное время формирования ответа, RFC3339
	HasMore        bool     `json:"hasMore"`        // есть ли еще изменения сверх limit
}

// SyncDownloadResponse представляет ответ на GET /api/mobile/sync/download
type SyncDownloadResponse struct {
	Data    *SyncDownloadData `json:"data,omitempty"`
	Error   *Error            `json:"error,omitempty"`
	Success bool              `json:"success"`
}
