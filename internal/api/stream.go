package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// streamWriteTimeout bounds a single frame write to a subscriber
	streamWriteTimeout = 10 * time.Second

	// streamPingInterval keeps idle connections alive
	streamPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients carry the token in the Authorization header via
	// the gate, so origin checking is left to the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream handles GET /api/audit/stream, upgrading the connection to a
// WebSocket and pushing each gate decision recorded after the upgrade.
func (h *AuditHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Printf("audit stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	entries, cancel := h.log.Subscribe()
	defer cancel()

	// Reader loop: drain control frames and detect client close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(entry); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
