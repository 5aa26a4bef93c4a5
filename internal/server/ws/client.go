package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/caseflow/pkg/api"
)

// client одно WS соединение мобильного устройства
type client struct {
	hub      *Hub
	conn     *websocket.Conn
	userID   string
	username string
	deviceID string

	sendCh    chan api.WSEvent
	stopCh    chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	caseSubs map[string]bool
}

// enqueue кладет событие в исходящий буфер без блокировки.
// Медленное соединение теряет события, клиент доберет их при синхронизации.
func (c *client) enqueue(event api.WSEvent) {
	select {
	case c.sendCh <- event:
	default:
		c.hub.logger.Warn("websocket send buffer full, dropping event",
			"user_id", c.userID, "type", event.Type)
	}
}

func (c *client) subscribedTo(caseID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caseSubs[caseID]
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		_ = c.conn.Close()
	})
}

// readPump читает входящие кадры до разрыва соединения
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
		c.hub.logger.Info("websocket client disconnected",
			"user_id", c.userID, "device_id", c.deviceID)
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var event api.WSEvent
		if err := c.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Warn("websocket read error", "user_id", c.userID, "error", err)
			}
			return
		}
		// Любой кадр подтверждает живость соединения
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		c.handleEvent(event)
	}
}

func (c *client) handleEvent(event api.WSEvent) {
	switch event.Type {
	case api.EventPing:
		c.enqueue(api.WSEvent{
			Type:      api.EventPong,
			Timestamp: time.Now().Format(time.RFC3339),
		})

	case api.EventNotificationAck:
		var ack api.AckPayload
		if err := json.Unmarshal(event.Data, &ack); err != nil || ack.NotificationID == "" {
			c.hub.logger.Warn("malformed notification ack", "user_id", c.userID)
			return
		}
		if err := c.hub.notifications.MarkDelivered(context.Background(), ack.NotificationID, time.Now()); err != nil {
			c.hub.logger.Warn("failed to mark notification delivered",
				"user_id", c.userID,
				"notification_id", ack.NotificationID,
				"error", err)
		}

	case api.EventSubscribeCase:
		if caseID := c.subscriptionCaseID(event); caseID != "" {
			c.mu.Lock()
			c.caseSubs[caseID] = true
			c.mu.Unlock()
		}

	case api.EventUnsubscribeCase:
		if caseID := c.subscriptionCaseID(event); caseID != "" {
			c.mu.Lock()
			delete(c.caseSubs, caseID)
			c.mu.Unlock()
		}

	case api.EventAppState:
		var state api.AppStatePayload
		if err := json.Unmarshal(event.Data, &state); err == nil {
			c.hub.logger.Debug("client app state",
				"user_id", c.userID, "state", state.State)
		}

	case api.EventConnectivity:
		var conn api.ConnectivityPayload
		if err := json.Unmarshal(event.Data, &conn); err == nil {
			c.hub.logger.Debug("client connectivity",
				"user_id", c.userID,
				"online", conn.IsOnline,
				"pending_sync", conn.PendingSync)
		}

	case api.EventSyncRequest:
		c.hub.logger.Debug("client requested sync", "user_id", c.userID)

	default:
		c.hub.logger.Debug("unhandled websocket event",
			"user_id", c.userID, "type", event.Type)
	}
}

func (c *client) subscriptionCaseID(event api.WSEvent) string {
	var sub api.SubscriptionPayload
	if err := json.Unmarshal(event.Data, &sub); err != nil {
		c.hub.logger.Warn("malformed subscription payload", "user_id", c.userID)
		return ""
	}
	return sub.CaseID
}

// writePump пишет исходящие события и поддерживает соединение ping-ами
func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case event := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				c.hub.logger.Warn("websocket write error", "user_id", c.userID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.stopCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
