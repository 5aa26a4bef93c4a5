package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/caseflow/internal/client/realtime"
	"github.com/iudanet/caseflow/internal/client/storage"
	casesync "github.com/iudanet/caseflow/internal/client/sync"
	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

//go:generate moq -out realtime_mock.go . Realtime

// Realtime часть realtime.Channel, которую использует контроллер
type Realtime interface {
	Connect(ctx context.Context) error
	Disconnect()
	Subscribe(h realtime.Handler) func()
	SubscribeCase(caseID string) error
	UnsubscribeCase(caseID string) error
	ConnectionState() realtime.ConnectionState
}

// Notification уведомление для показа пользователю,
// построенное из realtime-события
type Notification struct {
	Event  string
	CaseID string
	Title  string
	Body   string
}

// NotifyFunc получает уведомления контроллера. Nil отключает показ.
type NotifyFunc func(n Notification)

// Controller единая точка входа для смены статуса, приоритета и
// результата дела, для отправки заполненного дела и для связи
// realtime-событий с уведомлениями пользователя.
// Хранилище контроллер не трогает, все мутации идут через sync engine.
type Controller interface {
	Start(ctx context.Context) error
	Stop()
	SubscribeCase(caseID string) error
	UnsubscribeCase(caseID string) error
	SetStatus(ctx context.Context, caseID string, status models.CaseStatus) error
	SetPriority(ctx context.Context, caseID string, priority int) error
	SaveOutcome(ctx context.Context, caseID, outcome, notes string) error
	Submit(ctx context.Context, caseID string) error
	Resubmit(ctx context.Context, caseID string) error
	WatchConnection(ctx context.Context, fn func(realtime.ConnectionState))
}

type controller struct {
	engine  casesync.Service
	channel Realtime
	notify  NotifyFunc
	logger  *slog.Logger

	pollInterval time.Duration

	mu          sync.Mutex
	subs        map[string]bool
	unsubscribe func()
}

// NewController создает контроллер жизненного цикла дел
func NewController(engine casesync.Service, channel Realtime, notify NotifyFunc, logger *slog.Logger) Controller {
	return &controller{
		engine:       engine,
		channel:      channel,
		notify:       notify,
		logger:       logger,
		pollInterval: time.Second,
		subs:         make(map[string]bool),
	}
}

// Start подключает realtime-канал и подписывается на его события.
// Ошибка подключения не фатальна: канал переподключится сам,
// а уведомления начнут приходить после подключения.
func (c *controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.unsubscribe == nil {
		c.unsubscribe = c.channel.Subscribe(c.handleEvent)
	}
	c.mu.Unlock()

	if err := c.channel.Connect(ctx); err != nil {
		if errors.Is(err, realtime.ErrAlreadyConnecting) || errors.Is(err, realtime.ErrConnectionThrottled) {
			return nil
		}
		return fmt.Errorf("realtime connection unavailable: %v", err)
	}
	return nil
}

// Stop снимает подписку на события и отключает канал
func (c *controller) Stop() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.subs = make(map[string]bool)
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	c.channel.Disconnect()
}

// SubscribeCase подписывает на realtime-события дела.
// Повторная подписка на то же дело — no-op.
func (c *controller) SubscribeCase(caseID string) error {
	if caseID == "" {
		return errors.New("case id must not be empty")
	}

	c.mu.Lock()
	if c.subs[caseID] {
		c.mu.Unlock()
		return nil
	}
	c.subs[caseID] = true
	c.mu.Unlock()

	if err := c.channel.SubscribeCase(caseID); err != nil {
		c.mu.Lock()
		delete(c.subs, caseID)
		c.mu.Unlock()
		return fmt.Errorf("cannot follow case %s: %v", caseID, err)
	}
	return nil
}

// UnsubscribeCase снимает подписку на события дела
func (c *controller) UnsubscribeCase(caseID string) error {
	c.mu.Lock()
	subscribed := c.subs[caseID]
	delete(c.subs, caseID)
	c.mu.Unlock()
	if !subscribed {
		return nil
	}

	if err := c.channel.UnsubscribeCase(caseID); err != nil {
		return fmt.Errorf("cannot unfollow case %s: %v", caseID, err)
	}
	return nil
}

// SetStatus запрашивает смену статуса дела
func (c *controller) SetStatus(ctx context.Context, caseID string, status models.CaseStatus) error {
	wire := status.Wire()
	_, err := c.engine.UpdateCase(ctx, caseID, api.CaseUpdateRequest{Status: &wire})
	return c.humanize(caseID, "update", err)
}

// SetPriority запрашивает смену приоритета дела
func (c *controller) SetPriority(ctx context.Context, caseID string, priority int) error {
	if priority < models.PriorityLow || priority > models.PriorityHigh {
		return fmt.Errorf("priority must be between %d and %d", models.PriorityLow, models.PriorityHigh)
	}
	_, err := c.engine.UpdateCase(ctx, caseID, api.CaseUpdateRequest{Priority: &priority})
	return c.humanize(caseID, "update", err)
}

// SaveOutcome сохраняет результат верификации и заметки агента
func (c *controller) SaveOutcome(ctx context.Context, caseID, outcome, notes string) error {
	if outcome == "" {
		return errors.New("verification outcome must not be empty")
	}
	req := api.CaseUpdateRequest{VerificationOutcome: &outcome}
	if notes != "" {
		req.Notes = &notes
	}
	_, err := c.engine.UpdateCase(ctx, caseID, req)
	return c.humanize(caseID, "update", err)
}

// Submit отправляет заполненное дело на сервер
func (c *controller) Submit(ctx context.Context, caseID string) error {
	return c.humanize(caseID, "submit", c.engine.SubmitCase(ctx, caseID))
}

// Resubmit повторяет отправку дела после неудачи
func (c *controller) Resubmit(ctx context.Context, caseID string) error {
	return c.humanize(caseID, "submit", c.engine.ResubmitCase(ctx, caseID))
}

// humanize переводит ошибки движка в строки для показа пользователю.
// Сырые транспортные ошибки наружу не выходят.
func (c *controller) humanize(caseID, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, casesync.ErrOffline):
		if op == "submit" {
			return errors.New("no network connection: the completed case was queued and will be submitted automatically")
		}
		return errors.New("no network connection: the change was saved locally and will sync later")
	case errors.Is(err, storage.ErrCaseNotFound):
		return fmt.Errorf("case %s is not available on this device", caseID)
	default:
		c.logger.Warn("Case operation failed", "case_id", caseID, "op", op, "error", err)
		if op == "submit" {
			return fmt.Errorf("case %s could not be submitted, try again later", caseID)
		}
		return fmt.Errorf("case %s could not be updated, try again later", caseID)
	}
}

// WatchConnection опрашивает состояние канала с фиксированным
// интервалом и зовет fn на каждой смене. Для потребителей без
// push-колбеков. Блокируется до отмены контекста.
func (c *controller) WatchConnection(ctx context.Context, fn func(realtime.ConnectionState)) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	last := c.channel.ConnectionState()
	fn(last)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := c.channel.ConnectionState()
			if cur.State != last.State || cur.ReconnectAttempts != last.ReconnectAttempts {
				fn(cur)
				last = cur
			}
		}
	}
}

// handleEvent строит уведомления пользователя из realtime-событий.
// Принудительную синхронизацию запускает сам канал, здесь только
// пользовательская часть.
func (c *controller) handleEvent(ev api.WSEvent) {
	if c.notify == nil {
		return
	}

	switch ev.Type {
	case api.EventCaseAssigned:
		var p api.CaseAssignedPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			c.logger.Warn("Malformed case assignment event", "error", err)
			return
		}
		n := Notification{
			Event:  ev.Type,
			CaseID: p.Case.ID,
			Title:  "New case assigned",
			Body:   p.Case.Title,
		}
		if p.RequiresImmediate {
			n.Title = "Urgent case assigned"
		}
		c.notify(n)

	case api.EventCaseStatusChanged:
		var p api.CaseStatusChangedPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			c.logger.Warn("Malformed status change event", "error", err)
			return
		}
		c.notify(Notification{
			Event:  ev.Type,
			CaseID: p.CaseID,
			Title:  "Case status changed",
			Body:   fmt.Sprintf("%s -> %s", p.OldStatus, p.NewStatus),
		})

	case api.EventCasePriorityChanged:
		var p api.CasePriorityChangedPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			c.logger.Warn("Malformed priority change event", "error", err)
			return
		}
		n := Notification{
			Event:  ev.Type,
			CaseID: p.CaseID,
			Title:  "Case priority changed",
			Body:   fmt.Sprintf("priority is now %d", p.NewPriority),
		}
		if p.RequiresImmediate {
			n.Title = "Case needs immediate attention"
		}
		c.notify(n)

	case api.EventDisconnected:
		c.notify(Notification{
			Event: ev.Type,
			Title: "Connection lost",
			Body:  "realtime updates are paused, reconnecting",
		})
	}
}
