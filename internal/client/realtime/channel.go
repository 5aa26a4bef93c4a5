package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/caseflow/pkg/api"
)

// State состояние realtime-канала
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

var (
	// ErrAlreadyConnecting попытка подключения уже идет
	ErrAlreadyConnecting = errors.New("connection attempt already in flight")

	// ErrConnectionThrottled попытки подключения идут чаще разрешенного
	ErrConnectionThrottled = errors.New("connection attempts throttled")

	// ErrRetriesExhausted потолок автоматических переподключений исчерпан
	ErrRetriesExhausted = errors.New("reconnect attempts exhausted")

	// ErrNotConnected исходящее событие без установленного соединения
	ErrNotConnected = errors.New("realtime channel is not connected")
)

// TokenProvider отдает access token для handshake.
// auth.Service реализует этот интерфейс.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// SyncTrigger получает принудительный запуск синхронизации
// от realtime-событий
type SyncTrigger interface {
	TriggerSync(ctx context.Context)
}

// SyncTriggerFunc адаптер функции под SyncTrigger
type SyncTriggerFunc func(ctx context.Context)

func (f SyncTriggerFunc) TriggerSync(ctx context.Context) { f(ctx) }

// Handler обработчик входящих событий канала
type Handler func(event api.WSEvent)

// ConnectionState снимок состояния канала для опроса извне
type ConnectionState struct {
	ConnectedAt       time.Time
	LastError         string
	State             State
	ReconnectAttempts int
}

// Channel поддерживает одно WS соединение с сервером уведомлений:
// handshake с токеном, автоматическое переподключение с экспоненциальной
// задержкой, подтверждение уведомлений и раздача событий подписчикам.
// Локально инициированный Disconnect никогда не переподключается сам.
type Channel struct {
	cfg         Config
	tokens      TokenProvider
	syncTrigger SyncTrigger
	logger      *slog.Logger

	mu                sync.Mutex
	state             State
	conn              *websocket.Conn
	sendCh            chan api.WSEvent
	stopCh            chan struct{}
	reconnectTimer    *time.Timer
	reconnectAttempts int
	lastAttemptAt     time.Time
	connectedAt       time.Time
	lastErr           error
	closing           bool
	subs              map[int]Handler
	nextSubID         int
	caseSubs          map[string]bool
}

// NewChannel создает realtime-канал. Подключение не устанавливается
// до явного Connect.
func NewChannel(cfg Config, tokens TokenProvider, trigger SyncTrigger, logger *slog.Logger) *Channel {
	return &Channel{
		cfg:         cfg,
		tokens:      tokens,
		syncTrigger: trigger,
		logger:      logger,
		subs:        make(map[int]Handler),
		caseSubs:    make(map[string]bool),
	}
}

// Connect устанавливает соединение. Быстро завершается ошибкой, если
// попытка уже идет, если попытки идут чаще разрешенного или если нет
// токена.
func (c *Channel) Connect(ctx context.Context) error {
	return c.connect(ctx, false)
}

func (c *Channel) connect(ctx context.Context, isReconnect bool) error {
	c.mu.Lock()
	if c.state == StateConnected {
		c.mu.Unlock()
		return nil
	}
	if c.state == StateConnecting {
		c.mu.Unlock()
		return ErrAlreadyConnecting
	}
	if !isReconnect {
		if !c.lastAttemptAt.IsZero() && time.Since(c.lastAttemptAt) < c.cfg.ConnectThrottle {
			c.mu.Unlock()
			return ErrConnectionThrottled
		}
		// Ручной Connect снимает ожидающий таймер переподключения
		c.stopReconnectTimerLocked()
		c.closing = false
	}
	c.state = StateConnecting
	c.lastAttemptAt = time.Now()
	c.mu.Unlock()

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.lastErr = err
		c.mu.Unlock()
		return fmt.Errorf("cannot connect: %w", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.DialTimeout}
	conn, resp, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return c.connectFailed(fmt.Errorf("dial failed: %w", err))
	}

	// Handshake: первый кадр аутентифицирует соединение,
	// сервер отвечает connected либо закрывает
	deadline := time.Now().Add(c.cfg.DialTimeout)
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(api.WSAuth{
		Token:    token,
		Platform: c.cfg.Platform,
		DeviceID: c.cfg.DeviceID,
	}); err != nil {
		_ = conn.Close()
		return c.connectFailed(fmt.Errorf("auth frame failed: %w", err))
	}

	_ = conn.SetReadDeadline(deadline)
	var first api.WSEvent
	if err := conn.ReadJSON(&first); err != nil {
		_ = conn.Close()
		return c.connectFailed(fmt.Errorf("handshake read failed: %w", err))
	}
	if first.Type != api.EventConnected {
		_ = conn.Close()
		return c.connectFailed(fmt.Errorf("handshake rejected: %s", first.Type))
	}

	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		_ = conn.Close()
		return errors.New("channel was closed during connect")
	}
	c.conn = conn
	c.sendCh = make(chan api.WSEvent, 64)
	c.stopCh = make(chan struct{})
	c.state = StateConnected
	// Счетчик попыток сбрасывается только на подтвержденном подключении
	c.reconnectAttempts = 0
	c.connectedAt = time.Now()
	c.lastErr = nil
	resubscribe := make([]string, 0, len(c.caseSubs))
	for id := range c.caseSubs {
		resubscribe = append(resubscribe, id)
	}
	sendCh, stopCh := c.sendCh, c.stopCh
	c.mu.Unlock()

	go c.readPump(conn)
	go c.writePump(conn, sendCh, stopCh)

	c.logger.Info("Realtime channel connected", "url", c.cfg.URL)
	c.dispatch(first)

	// Восстанавливаем подписки на дела после переподключения
	for _, id := range resubscribe {
		if err := c.emit(api.EventSubscribeCase, api.SubscriptionPayload{CaseID: id}); err != nil {
			c.logger.Warn("Failed to resubscribe case", "case_id", id, "error", err)
		}
	}

	return nil
}

func (c *Channel) connectFailed(err error) error {
	c.logger.Warn("Realtime connect failed", "error", err)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = err
	if c.closing {
		c.state = StateDisconnected
		return err
	}
	c.state = StateReconnecting
	c.scheduleReconnectLocked()
	return err
}

// scheduleReconnectLocked взводит один таймер переподключения.
// Вызывается только под c.mu; второй таймер никогда не взводится.
func (c *Channel) scheduleReconnectLocked() {
	if c.reconnectTimer != nil {
		return
	}

	c.reconnectAttempts++
	if c.cfg.MaxReconnectAttempts > 0 && c.reconnectAttempts > c.cfg.MaxReconnectAttempts {
		c.state = StateDisconnected
		c.lastErr = ErrRetriesExhausted
		c.logger.Warn("Reconnect attempts exhausted", "attempts", c.reconnectAttempts-1)
		return
	}

	delay := backoffDelay(c.cfg.BackoffBase, c.cfg.BackoffCap, c.reconnectAttempts)
	c.logger.Info("Scheduling reconnect", "attempt", c.reconnectAttempts, "delay", delay)

	c.reconnectTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		c.reconnectTimer = nil
		closing := c.closing
		c.mu.Unlock()
		if closing {
			return
		}
		_ = c.connect(context.Background(), true)
	})
}

func (c *Channel) stopReconnectTimerLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

// Disconnect закрывает соединение по инициативе клиента: таймер
// переподключения снимается, подписки на дела очищаются, сам канал
// после этого не переподключается.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closing = true
	c.stopReconnectTimerLocked()
	c.reconnectAttempts = 0
	c.caseSubs = make(map[string]bool)
	conn := c.conn
	c.conn = nil
	stop := c.stopCh
	c.stopCh = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
		c.logger.Info("Realtime channel disconnected")
		c.dispatch(api.WSEvent{
			Type:      api.EventDisconnected,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// State возвращает текущее состояние канала
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConnectionState возвращает снимок состояния для опроса извне
func (c *Channel) ConnectionState() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := ConnectionState{
		State:             c.state,
		ReconnectAttempts: c.reconnectAttempts,
		ConnectedAt:       c.connectedAt,
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// Subscribe регистрирует обработчик входящих событий.
// Возвращенная функция снимает подписку.
func (c *Channel) Subscribe(h Handler) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = h
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Channel) dispatch(ev api.WSEvent) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.subs))
	for _, h := range c.subs {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// readPump читает входящие события до ошибки чтения или закрытия
func (c *Channel) readPump(conn *websocket.Conn) {
	defer c.connLost(conn)

	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		var ev api.WSEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Realtime read error", "error", err)
			}
			c.mu.Lock()
			if !c.closing {
				c.lastErr = err
			}
			c.mu.Unlock()
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		c.handleEvent(ev)
	}
}

// connLost обрабатывает потерю соединения, замеченную read pump-ом.
// Переподключение планируется только если закрытие не было локальным.
func (c *Channel) connLost(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		// Соединение уже снято (Disconnect или более новое подключение)
		c.mu.Unlock()
		return
	}
	c.conn = nil
	stop := c.stopCh
	c.stopCh = nil
	if c.closing {
		c.state = StateDisconnected
	} else {
		c.state = StateReconnecting
		c.scheduleReconnectLocked()
	}
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	_ = conn.Close()

	c.dispatch(api.WSEvent{
		Type:      api.EventDisconnected,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (c *Channel) writePump(conn *websocket.Conn, sendCh chan api.WSEvent, stopCh chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-sendCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				c.logger.Warn("Realtime write error", "error", err)
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		case <-stopCh:
			return
		}
	}
}

// handleEvent маршрутизирует входящее событие: подтверждение
// уведомления, принудительная синхронизация, раздача подписчикам
func (c *Channel) handleEvent(ev api.WSEvent) {
	switch ev.Type {
	case api.EventCaseAssigned, api.EventCaseStatusChanged:
		c.acknowledge(ev)
		c.triggerSync()
	case api.EventSyncTrigger:
		c.triggerSync()
	case api.EventCasePriorityChanged:
		c.acknowledge(ev)
	case api.EventError:
		c.logger.Warn("Realtime server error", "data", string(ev.Data))
	}

	c.dispatch(ev)
}

// acknowledge подтверждает доставку уведомления, несущего NotificationID
func (c *Channel) acknowledge(ev api.WSEvent) {
	if ev.NotificationID == "" {
		return
	}
	if err := c.emit(api.EventNotificationAck, api.AckPayload{NotificationID: ev.NotificationID}); err != nil {
		c.logger.Warn("Failed to acknowledge notification",
			"notification_id", ev.NotificationID, "error", err)
	}
}

// triggerSync запускает принудительную синхронизацию ровно один раз
// на событие, не блокируя read pump
func (c *Channel) triggerSync() {
	if c.syncTrigger == nil {
		return
	}
	go c.syncTrigger.TriggerSync(context.Background())
}

// emit отправляет исходящее событие через write pump
func (c *Channel) emit(eventType string, payload any) error {
	ev := api.WSEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		ev.Data = data
	}

	c.mu.Lock()
	if c.state != StateConnected || c.sendCh == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	ch := c.sendCh
	c.mu.Unlock()

	select {
	case ch <- ev:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// SubscribeCase подписывает канал на события конкретного дела.
// Подписка переживает переподключение и снимается Disconnect-ом.
func (c *Channel) SubscribeCase(caseID string) error {
	if caseID == "" {
		return errors.New("case id must not be empty")
	}

	c.mu.Lock()
	already := c.caseSubs[caseID]
	c.caseSubs[caseID] = true
	c.mu.Unlock()
	if already {
		return nil
	}

	err := c.emit(api.EventSubscribeCase, api.SubscriptionPayload{CaseID: caseID})
	if errors.Is(err, ErrNotConnected) {
		// Подписка уйдет при следующем подключении
		return nil
	}
	return err
}

// UnsubscribeCase снимает подписку на события дела
func (c *Channel) UnsubscribeCase(caseID string) error {
	c.mu.Lock()
	subscribed := c.caseSubs[caseID]
	delete(c.caseSubs, caseID)
	c.mu.Unlock()
	if !subscribed {
		return nil
	}

	err := c.emit(api.EventUnsubscribeCase, api.SubscriptionPayload{CaseID: caseID})
	if errors.Is(err, ErrNotConnected) {
		return nil
	}
	return err
}

// NotifyAppState сообщает серверу о смене состояния приложения
func (c *Channel) NotifyAppState(state string) error {
	return c.emit(api.EventAppState, api.AppStatePayload{State: state})
}

// NotifyConnectivity сообщает серверу о смене состояния сети
func (c *Channel) NotifyConnectivity(p api.ConnectivityPayload) error {
	return c.emit(api.EventConnectivity, p)
}

// RequestSync просит сервер инициировать синхронизацию
func (c *Channel) RequestSync() error {
	return c.emit(api.EventSyncRequest, nil)
}
