package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const reloadWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadMessage is sent to live-reload clients when the catalog changes.
type reloadMessage struct {
	Type     string `json:"type"`
	Revision uint64 `json:"revision"`
}

// reloadHub tracks the open live-reload connections.
type reloadHub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *zap.Logger
}

func newReloadHub(logger *zap.Logger) *reloadHub {
	return &reloadHub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

func (h *reloadHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer h.remove(conn)

	// Clients never send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

func (h *reloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *reloadHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *reloadHub) broadcast(revision uint64) {
	msg := reloadMessage{Type: "reload", Revision: revision}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("websocket write", zap.Error(err))
			delete(h.conns, conn)
			conn.Close()
		}
	}
	h.logger.Debug("reload broadcast", zap.Uint64("revision", revision), zap.Int("clients", len(h.conns)))
}

func (h *reloadHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.conns, conn)
	}
}
