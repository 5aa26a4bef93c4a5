package api

import "encoding/json"

// Входящие WS события (сервер -> клиент). Фиксированный словарь.
const (
	EventConnected           = "connected"
	EventDisconnected        = "disconnected"
	EventError               = "error"
	EventCaseAssigned        = "mobile:case:assigned"
	EventCaseStatusChanged   = "mobile:case:status:changed"
	EventCasePriorityChanged = "mobile:case:priority:changed"
	EventSyncTrigger         = "mobile:sync:trigger"
	EventSyncCompleted       = "mobile:sync:completed"
	EventPong                = "pong"
)

// Исходящие WS события (клиент -> сервер)
const (
	EventSubscribeCase      = "subscribe:case"
	EventUnsubscribeCase    = "unsubscribe:case"
	EventAppState           = "mobile:app:state"
	EventConnectivity       = "mobile:connectivity"
	EventNotificationAck    = "mobile:notification:ack"
	EventSyncRequest        = "mobile:sync:request"
	EventPing               = "ping"
)

// WSAuth первый кадр после установления соединения: handshake аутентификации
type WSAuth struct {
	Token    string `json:"token"`
	Platform string `json:"platform"` // "mobile" или "web"
	DeviceID string `json:"deviceId,omitempty"`
}

// WSEvent конверт для всех WS сообщений в обе стороны.
// NotificationID присутствует только в событиях, требующих подтверждения.
type WSEvent struct {
	Type           string          `json:"type"`
	NotificationID string          `json:"notificationId,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
	Timestamp      string          `json:"timestamp,omitempty"` // RFC3339
}

// CaseAssignedPayload полезная нагрузка события mobile:case:assigned
type CaseAssignedPayload struct {
	Case              Case   `json:"case"`
	Priority          string `json:"priority,omitempty"`
	RequiresImmediate bool   `json:"requiresImmediate"`
}

// CaseStatusChangedPayload полезная нагрузка события mobile:case:status:changed
type CaseStatusChangedPayload struct {
	CaseID    string `json:"caseId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	UpdatedBy string `json:"updatedBy,omitempty"`
}

// CasePriorityChangedPayload полезная нагрузка события mobile:case:priority:changed
type CasePriorityChangedPayload struct {
	CaseID            string `json:"caseId"`
	OldPriority       int    `json:"oldPriority"`
	NewPriority       int    `json:"newPriority"`
	UpdatedBy         string `json:"updatedBy,omitempty"`
	RequiresImmediate bool   `json:"requiresImmediate"`
}

// AckPayload полезная нагрузка исходящего mobile:notification:ack
type AckPayload struct {
	NotificationID string `json:"notificationId"`
}

// AppStatePayload полезная нагрузка исходящего mobile:app:state
type AppStatePayload struct {
	State string `json:"state"` // foreground, background, inactive
}

// ConnectivityPayload полезная нагрузка исходящего mobile:connectivity
type ConnectivityPayload struct {
	ConnectionType string `json:"connectionType"`
	PendingSync    int    `json:"pendingSync"`
	IsOnline       bool   `json:"isOnline"`
}

// SubscriptionPayload полезная нагрузка subscribe:case / unsubscribe:case
type SubscriptionPayload struct {
	CaseID string `json:"caseId"`
}
