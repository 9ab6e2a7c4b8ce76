package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/pipeline"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans pipeline progress events out to connected websocket clients.
type Hub struct {
	logger *logrus.Logger
	conns  map[*websocket.Conn]bool
	mu     sync.Mutex
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast pushes one progress event to every connected client. Dead
// connections are dropped on write failure.
func (h *Hub) Broadcast(event pipeline.ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.WithError(err).Debug("Dropping websocket client")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

type wsMessage struct {
	Type string `json:"type"`
}

// WebSocketHandler upgrades the connection and streams progress events
// until the client disconnects. Inbound traffic is only used for pings.
func (h *Handlers) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.hub.register(conn)
	defer func() {
		h.hub.unregister(conn)
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		if msg.Type == "ping" {
			h.hub.mu.Lock()
			err := conn.WriteJSON(map[string]string{"type": "pong"})
			h.hub.mu.Unlock()
			if err != nil {
				break
			}
		}
	}
}
