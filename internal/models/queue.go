package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncAction тип отложенной мутации в очереди синхронизации
type SyncAction string

// Дела создаются и отзываются только на сервере, поэтому в очереди
// живут лишь правки и финальные отправки
const (
	ActionUpdate SyncAction = "update"
	ActionSubmit SyncAction = "submit"
)

// SyncQueueItem представляет отложенную офлайн-мутацию, ожидающую
// повтора на сервере. Создается когда мутация не смогла дойти до
// сервера; удаляется после успешного повтора либо по достижении
// потолка RetryCount (и тогда попадает в список ошибок, не теряется
// молча).
type SyncQueueItem struct {
	ID         string          `json:"id"` // "<action>_<caseId>_<unixmilli>"
	CaseID     string          `json:"caseId"`
	Action     SyncAction      `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  string          `json:"createdAt"` // RFC3339
	RetryCount int             `json:"retryCount"`
}

// NewSyncQueueItem создает элемент очереди для указанной мутации
func NewSyncQueueItem(caseID string, action SyncAction, payload json.RawMessage) SyncQueueItem {
	now := time.Now().UTC()
	return SyncQueueItem{
		ID:        fmt.Sprintf("%s_%s_%d", action, caseID, now.UnixMilli()),
		CaseID:    caseID,
		Action:    action,
		Payload:   payload,
		CreatedAt: now.Format(time.RFC3339),
	}
}
