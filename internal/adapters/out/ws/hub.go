// Package ws broadcasts domain events to connected dashboard and handheld
// clients over WebSocket. Delivery is best effort: a slow or absent
// subscriber never blocks or fails the publishing use case.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// envelope is the wire format pushed to subscribers.
type envelope struct {
	Topic   string    `json:"topic"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sentAt"`
}

// Hub fans domain events out to every connected client. It implements
// ports.EventPublisher; command handlers publish through the interface and
// never see connection state.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.RWMutex
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewHub creates a hub. Call Run on its own goroutine before serving
// connections.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 256),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_hub"),
	}
}

// Run drains the broadcast channel and writes each message to every
// connected client, dropping clients whose writes fail. Blocks until the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.writeToAll(msg)
		}
	}
}

// Publish queues one event for broadcast. When the queue is full the event
// is dropped and logged rather than blocking the caller; clients are
// expected to re-poll on reconnect anyway.
func (h *Hub) Publish(_ context.Context, topic string, payload any) error {
	msg, err := json.Marshal(envelope{
		Topic:   topic,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, event dropped", "topic", topic)
	}

	return nil
}

// HandleConnection upgrades an HTTP request to a WebSocket subscription.
// The read loop exists only to detect disconnects; clients never send
// messages the server acts on.
func (h *Hub) HandleConnection(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.addClient(conn)
	h.logger.Info("client connected", "clients", h.ClientCount())

	go func() {
		defer func() {
			h.removeClient(conn)
			h.logger.Info("client disconnected", "clients", h.ClientCount())
		}()
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(conn *websocket.Conn) {
	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
}

func (h *Hub) removeClient(conn *websocket.Conn) {
	h.mutex.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	h.mutex.Unlock()
}

func (h *Hub) writeToAll(msg []byte) {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.removeClient(conn)
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
	h.mutex.Unlock()
}

var _ ports.EventPublisher = (*Hub)(nil)
