package api

// Case представляет дело в wire-формате мобильного API.
// Статус и приоритет передаются строками в серверной нотации
// (IN_PROGRESS, HIGH и т.д.); клиент нормализует их в свои типы.
type Case struct {
	ID                  string       `json:"id"`     // UUID, назначается сервером
	CaseID              int64        `json:"caseId"` // человекочитаемый сквозной номер
	Title               string       `json:"title"`
	Description         string       `json:"description,omitempty"`
	Status              string       `json:"status"`             // ASSIGNED, IN_PROGRESS, COMPLETED, PENDING
	Priority            string       `json:"priority,omitempty"` // LOW, MEDIUM, HIGH
	VerificationType    string       `json:"verificationType"`
	VerificationOutcome string       `json:"verificationOutcome,omitempty"`
	CustomerName        string       `json:"customerName"`
	CustomerContact     string       `json:"customerContact,omitempty"`
	ClientName          string       `json:"clientName,omitempty"`
	VisitAddress        string       `json:"visitAddress,omitempty"`
	Notes               string       `json:"notes,omitempty"`
	AssignedTo          string       `json:"assignedTo,omitempty"`
	CreatedAt           string       `json:"createdAt,omitempty"` // RFC3339
	UpdatedAt           string       `json:"updatedAt,omitempty"`
	CompletedAt         string       `json:"completedAt,omitempty"`
	InProgressAt        string       `json:"inProgressAt,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty"`
}

// Attachment ссылка на вложение дела (фото, документ)
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Pagination описывает страницу результата списка дел
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CaseListParams параметры запроса GET /api/mobile/cases
type CaseListParams struct {
	Status           string
	VerificationType string
	Search           string
	SortBy           string // createdAt, updatedAt, priority
	SortOrder        string // asc, desc
	Page             int
	Limit            int
	AssignedToMe     bool
}

// CaseListData полезная нагрузка ответа на список дел
type CaseListData struct {
	Cases      []Case     `json:"cases"`
	Pagination Pagination `json:"pagination"`
}

// CaseListResponse представляет ответ на GET /api/mobile/cases
type CaseListResponse struct {
	Data    *CaseListData `json:"data,omitempty"`
	Error   *Error        `json:"error,omitempty"`
	Success bool          `json:"success"`
}

// HistoryEntry запись в истории изменений дела
type HistoryEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Details   string `json:"details,omitempty"`
}

// CaseDetailData полезная нагрузка ответа на одно дело
type CaseDetailData struct {
	Case    Case           `json:"case"`
	History []HistoryEntry `json:"history"`
}

// CaseDetailResponse представляет ответ на GET /api/mobile/cases/{id}
type CaseDetailResponse struct {
	Data    *CaseDetailData `json:"data,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	Success bool            `json:"success"`
}

// CaseUpdateRequest тело PUT /api/mobile/cases/{id}.
// Nil-поля не изменяются на сервере.
type CaseUpdateRequest struct {
	Status              *string `json:"status,omitempty"`
	Priority            *int    `json:"priority,omitempty"`
	VerificationOutcome *string `json:"verificationOutcome,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	AssignedTo          *string `json:"assignedTo,omitempty"`
}

// CaseUpdateData полезная нагрузка ответа на обновление дела
type CaseUpdateData struct {
	Case Case `json:"case"`
}

// CaseUpdateResponse представляет ответ на PUT /api/mobile/cases/{id}
type CaseUpdateResponse struct {
	Data    *CaseUpdateData `json:"data,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	Success bool            `json:"success"`
}

// SubmitRequest тело POST /api/mobile/cases/{id}/submit
type SubmitRequest struct {
	CaseData  Case   `json:"caseData"`
	Timestamp string `json:"timestamp"` // момент отправки на клиенте, RFC3339
}
