package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard is served from a separate origin in development
	},
}

// Update is the snapshot pushed to connected dashboards on every state
// change.
type Update struct {
	Position      domain.Position     `json:"position"`
	PendingAlerts int                 `json:"pending_alerts"`
	Device        domain.DeviceHealth `json:"device"`
}

// Hub fans tracker updates out to connected websocket clients.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(r *gin.RouterGroup) {
	r.GET("/live", h.Handle)
}

func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("live: websocket upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// the client only listens; the read loop exists to detect close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends the update to every connected client, dropping any
// connection whose write fails.
func (h *Hub) Broadcast(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(u); err != nil {
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}
