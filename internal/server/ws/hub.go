package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/caseflow/internal/server/handlers"
	"github.com/iudanet/caseflow/internal/server/storage"
	"github.com/iudanet/caseflow/pkg/api"
)

const (
	// authTimeout время на первый кадр аутентификации после upgrade
	authTimeout = 10 * time.Second

	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	// sendBuffer размер буфера исходящих событий на соединение
	sendBuffer = 64
)

// Hub держит активные WS соединения мобильных агентов и доставляет
// им события. Недоставленные уведомления сохраняются и доигрываются
// при следующем подключении.
type Hub struct {
	logger        *slog.Logger
	jwtConfig     handlers.JWTConfig
	notifications storage.NotificationStorage
	upgrader      websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]bool // userID -> соединения
}

// NewHub создает новый hub
func NewHub(logger *slog.Logger, jwtConfig handlers.JWTConfig, notifications storage.NotificationStorage) *Hub {
	return &Hub{
		logger:        logger,
		jwtConfig:     jwtConfig,
		notifications: notifications,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Origin проверяется на уровне reverse proxy
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]bool),
	}
}

// HandleWS обрабатывает GET /api/mobile/ws
// Первым кадром после upgrade клиент присылает WSAuth с JWT токеном
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	claims, deviceID, ok := h.authenticate(conn)
	if !ok {
		_ = conn.Close()
		return
	}

	c := &client{
		hub:      h,
		conn:     conn,
		userID:   claims.UserID,
		username: claims.Username,
		deviceID: deviceID,
		sendCh:   make(chan api.WSEvent, sendBuffer),
		stopCh:   make(chan struct{}),
		caseSubs: make(map[string]bool),
	}

	h.register(c)

	h.logger.Info("websocket client connected",
		"user_id", c.userID,
		"username", c.username,
		"device_id", c.deviceID)

	c.enqueue(api.WSEvent{
		Type:      api.EventConnected,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	// Доигрываем недоставленные уведомления, старые первыми
	h.replayPending(r.Context(), c)

	go c.writePump()
	c.readPump()
}

// authenticate читает первый кадр и валидирует JWT
func (h *Hub) authenticate(conn *websocket.Conn) (*handlers.CustomClaims, string, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))

	var auth api.WSAuth
	if err := conn.ReadJSON(&auth); err != nil {
		h.logger.Warn("websocket auth frame not received", "error", err)
		return nil, "", false
	}

	claims, err := handlers.ValidateAccessToken(h.jwtConfig, auth.Token)
	if err != nil {
		h.logger.Warn("websocket auth failed", "error", err)
		h.writeAuthError(conn, "invalid or expired token")
		return nil, "", false
	}

	if claims.Role != storage.RoleFieldAgent {
		h.logger.Warn("websocket auth rejected: not a field agent",
			"user_id", claims.UserID, "role", claims.Role)
		h.writeAuthError(conn, "mobile realtime channel is for field agents")
		return nil, "", false
	}

	if !strings.EqualFold(auth.Platform, api.PlatformMobile) {
		h.logger.Warn("websocket auth rejected: wrong platform",
			"user_id", claims.UserID, "platform", auth.Platform)
		h.writeAuthError(conn, "mobile platform required")
		return nil, "", false
	}

	_ = conn.SetReadDeadline(time.Time{})

	return claims, auth.DeviceID, true
}

func (h *Hub) writeAuthError(conn *websocket.Conn, message string) {
	data, _ := json.Marshal(map[string]string{"message": message})
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(api.WSEvent{
		Type:      api.EventError,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]bool)
	}
	h.clients[c.userID][c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if conns[c] {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, c.userID)
		}
	}
}

// replayPending отправляет клиенту накопленные недоставленные уведомления
func (h *Hub) replayPending(ctx context.Context, c *client) {
	pending, err := h.notifications.UndeliveredForUser(ctx, c.userID)
	if err != nil {
		h.logger.Error("failed to load pending notifications",
			"user_id", c.userID, "error", err)
		return
	}

	for _, n := range pending {
		c.enqueue(api.WSEvent{
			Type:           n.EventType,
			NotificationID: n.ID,
			Data:           n.Payload,
			Timestamp:      n.CreatedAt.Format(time.RFC3339),
		})
	}

	if len(pending) > 0 {
		h.logger.Info("replayed pending notifications",
			"user_id", c.userID, "count", len(pending))
	}
}

// NotifyCaseAssigned уведомляет агента о новом назначенном деле
func (h *Hub) NotifyCaseAssigned(ctx context.Context, userID string, payload api.CaseAssignedPayload) error {
	return h.notify(ctx, userID, payload.Case.ID, api.EventCaseAssigned, payload)
}

// NotifyCaseStatusChanged уведомляет агента о смене статуса его дела
func (h *Hub) NotifyCaseStatusChanged(ctx context.Context, userID string, payload api.CaseStatusChangedPayload) error {
	return h.notify(ctx, userID, payload.CaseID, api.EventCaseStatusChanged, payload)
}

// NotifyCasePriorityChanged уведомляет агента о смене приоритета его дела
func (h *Hub) NotifyCasePriorityChanged(ctx context.Context, userID string, payload api.CasePriorityChangedPayload) error {
	return h.notify(ctx, userID, payload.CaseID, api.EventCasePriorityChanged, payload)
}

// TriggerSync просит все устройства агента выполнить синхронизацию.
// Событие не персистится: после переподключения клиент синхронизируется сам.
func (h *Hub) TriggerSync(userID string) {
	h.deliver(userID, "", api.WSEvent{
		Type:      api.EventSyncTrigger,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// notify персистит уведомление и доставляет его в открытые соединения.
// NotificationID из записи требует подтверждения от клиента.
func (h *Hub) notify(ctx context.Context, userID, caseID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	n := &storage.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		CaseID:    caseID,
		EventType: eventType,
		Payload:   data,
		CreatedAt: time.Now(),
	}
	if err := h.notifications.CreateNotification(ctx, n); err != nil {
		return err
	}

	h.deliver(userID, caseID, api.WSEvent{
		Type:           eventType,
		NotificationID: n.ID,
		Data:           data,
		Timestamp:      n.CreatedAt.Format(time.RFC3339),
	})

	return nil
}

// deliver раскладывает событие по соединениям адресата и подписчикам дела
func (h *Hub) deliver(userID, caseID string, event api.WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*client]bool)
	for c := range h.clients[userID] {
		seen[c] = true
		c.enqueue(event)
	}

	if caseID == "" {
		return
	}
	// Подписчики дела получают событие без персистентного уведомления
	for owner, conns := range h.clients {
		if owner == userID {
			continue
		}
		for c := range conns {
			if !seen[c] && c.subscribedTo(caseID) {
				seen[c] = true
				c.enqueue(event)
			}
		}
	}
}

// ConnectedDevices возвращает число открытых соединений пользователя
func (h *Hub) ConnectedDevices(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Shutdown закрывает все активные соединения
func (h *Hub) Shutdown() {
	h.mu.Lock()
	var all []*client
	for _, conns := range h.clients {
		for c := range conns {
			all = append(all, c)
		}
	}
	h.clients = make(map[string]map[*client]bool)
	h.mu.Unlock()

	for _, c := range all {
		c.close()
	}
}
