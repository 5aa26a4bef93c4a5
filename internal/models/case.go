package models

import (
	"time"

	"github.com/iudanet/caseflow/pkg/api"
)

// CaseStatus статус дела в жизненном цикле верификации
type CaseStatus string

const (
	StatusAssigned   CaseStatus = "Assigned"
	StatusInProgress CaseStatus = "In Progress"
	StatusCompleted  CaseStatus = "Completed"
	StatusPending    CaseStatus = "Pending"
)

// VerificationType тип верификации, назначаемый делу
type VerificationType string

const (
	TypeResidence          VerificationType = "Residence"
	TypeResidenceCumOffice VerificationType = "Residence-cum-office"
	TypeOffice             VerificationType = "Office"
	TypeBusiness           VerificationType = "Business"
	TypeBuilder            VerificationType = "Builder"
	TypeNOC                VerificationType = "NOC"
	TypeConnector          VerificationType = "DSA/DST & Connector"
	TypePropertyAPF        VerificationType = "Property (APF)"
	TypePropertyIndividual VerificationType = "Property (Individual)"
	TypeUntraceable        VerificationType = "Untraceable"
)

// SubmissionStatus состояние отправки заполненного дела на сервер.
// Допустимые переходы: none/pending -> submitting -> success | failed.
// failed можно повторить через resubmit.
type SubmissionStatus string

const (
	SubmissionNone       SubmissionStatus = ""
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSuccess    SubmissionStatus = "success"
	SubmissionFailed     SubmissionStatus = "failed"
)

// Приоритеты дела. Nil приоритет означает "не задан".
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Customer данные клиента, к которому выезжает агент
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// Attachment ссылка на вложение дела
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Case представляет дело верификации в локальном хранилище клиента.
// Все timestamp-поля хранятся строками RFC3339; пустая строка = не задано.
type Case struct {
	ID                  string           `json:"id"`     // ID уникальный идентификатор (назначается сервером)
	CaseID              int64            `json:"caseId"` // CaseID человекочитаемый номер
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	Status              CaseStatus       `json:"status"`
	VerificationType    VerificationType `json:"verificationType"`
	VerificationOutcome string           `json:"verificationOutcome,omitempty"` // пусто = результат не выбран
	Customer            Customer         `json:"customer"`
	ClientName          string           `json:"clientName,omitempty"`
	VisitAddress        string           `json:"visitAddress,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	AssignedTo          string           `json:"assignedTo,omitempty"`
	SubmissionError     string           `json:"submissionError,omitempty"`
	SubmissionStatus    SubmissionStatus `json:"submissionStatus,omitempty"`
	CreatedAt           string           `json:"createdAt,omitempty"`
	UpdatedAt           string           `json:"updatedAt,omitempty"`
	CompletedAt         string           `json:"completedAt,omitempty"`
	InProgressAt        string           `json:"inProgressAt,omitempty"`
	SavedAt             string           `json:"savedAt,omitempty"`
	LastSubmissionAt    string           `json:"lastSubmissionAt,omitempty"`
	Attachments         []Attachment     `json:"attachments,omitempty"`
	Priority            *int             `json:"priority,omitempty"` // 1..3, nil = не задан
	IsSaved             bool             `json:"isSaved"`            // локальный черновик, не передается как смена статуса
}

// CaseFromWire нормализует wire-представление дела в локальную модель.
// Неизвестный статус приводится к Assigned; приоритет из строковой
// нотации сервера переводится в числовую шкалу 1..3.
func CaseFromWire(w api.Case) Case {
	c := Case{
		ID:                  w.ID,
		CaseID:              w.CaseID,
		Title:               w.Title,
		Description:         w.Description,
		Status:              statusFromWire(w.Status),
		VerificationType:    VerificationType(w.VerificationType),
		VerificationOutcome: w.VerificationOutcome,
		Customer: Customer{
			Name:    w.CustomerName,
			Contact: w.CustomerContact,
		},
		ClientName:   w.ClientName,
		VisitAddress: w.VisitAddress,
		Notes:        w.Notes,
		AssignedTo:   w.AssignedTo,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
		CompletedAt:  w.CompletedAt,
		InProgressAt: w.InProgressAt,
	}

	if c.VerificationType == "" {
		c.VerificationType = TypeResidence
	}
	if c.CreatedAt == "" {
		c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if c.UpdatedAt == "" {
		c.UpdatedAt = c.CreatedAt
	}

	if p, ok := priorityFromWire(w.Priority); ok {
		c.Priority = &p
	}

	for _, a := range w.Attachments {
		c.Attachments = append(c.Attachments, Attachment{
			ID:       a.ID,
			Name:     a.Name,
			MimeType: a.MimeType,
			URL:      a.URL,
		})
	}

	return c
}

// ToWire конвертирует локальную модель обратно в wire-формат
// (используется при submit: сервер получает полный снимок дела)
func (c *Case) ToWire() api.Case {
	w := api.Case{
		ID:                  c.ID,
		CaseID:              c.CaseID,
		Title:               c.Title,
		Description:         c.Description,
		Status:              statusToWire(c.Status),
		VerificationType:    string(c.VerificationType),
		VerificationOutcome: c.VerificationOutcome,
		CustomerName:        c.Customer.Name,
		CustomerContact:     c.Customer.Contact,
		ClientName:          c.ClientName,
		VisitAddress:        c.VisitAddress,
		Notes:               c.Notes,
		AssignedTo:          c.AssignedTo,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		CompletedAt:         c.CompletedAt,
		InProgressAt:        c.InProgressAt,
	}

	if c.Priority != nil {
		w.Priority = priorityToWire(*c.Priority)
	}

	for _, a := range c.Attachments {
		w.Attachments = append(w.Attachments, api.Attachment{
			ID:       a.ID,
			Name:     a.Name,
			MimeType: a.MimeType,
			URL:      a.URL,
		})
	}

	return w
}

// ApplyUpdate применяет частичное обновление (wire-нотация) к локальной
// модели и поднимает UpdatedAt. Nil-поля запроса не трогаются.
func (c *Case) ApplyUpdate(req api.CaseUpdateRequest) {
	if req.Status != nil {
		c.Status = statusFromWire(*req.Status)
	}
	if req.Priority != nil {
		p := *req.Priority
		c.Priority = &p
	}
	if req.VerificationOutcome != nil {
		c.VerificationOutcome = *req.VerificationOutcome
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		c.AssignedTo = *req.AssignedTo
	}
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Wire возвращает wire-представление статуса для REST запросов
func (s CaseStatus) Wire() string { return statusToWire(s) }

func statusFromWire(s string) CaseStatus {
	switch s {
	case "ASSIGNED":
		return StatusAssigned
	case "IN_PROGRESS":
		return StatusInProgress
	case "COMPLETED":
		return StatusCompleted
	case "PENDING":
		return StatusPending
	default:
		return StatusAssigned
	}
}

func statusToWire(s CaseStatus) string {
	switch s {
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusPending:
		return "PENDING"
	default:
		return "ASSIGNED"
	}
}

func priorityFromWire(p string) (int, bool) {
	switch p {
	case "LOW":
		return PriorityLow, true
	case "MEDIUM":
		return PriorityMedium, true
	case "HIGH":
		return PriorityHigh, true
	default:
		return 0, false
	}
}

func priorityToWire(p int) string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	default:
		return ""
	}
}
