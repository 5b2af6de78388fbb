package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/floeboard/floe/engine"
)

// ============================================================================
// WEBSOCKET SESSIONS — The reactive loop
// ============================================================================
// Each browser tab opens one session. The client sends its control state
// whenever a sidebar input changes; the server re-runs the engine and pushes
// the fresh Result back. The server holds no per-session state beyond the
// connection itself — every message carries the full control snapshot.
// ============================================================================

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	maxClients   = 100
)

// wsEnvelope wraps every server → client message.
type wsEnvelope struct {
	Type    string         `json:"type"` // "view" or "error"
	Session string         `json:"session"`
	Result  *engine.Result `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// wsSession serializes writes to one connection; the ping loop and the view
// pushes run in different goroutines.
type wsSession struct {
	conn    *websocket.Conn
	id      string
	writeMu sync.Mutex
	done    chan struct{}
}

func (ws *wsSession) writeJSON(v interface{}) error {
	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()
	ws.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return ws.conn.WriteJSON(v)
}

func (ws *wsSession) ping() error {
	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()
	ws.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return ws.conn.WriteMessage(websocket.PingMessage, nil)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.clientsMu.RLock()
	full := len(s.clients) >= maxClients
	s.clientsMu.RUnlock()
	if full {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ Floe: websocket upgrade failed: %v", err)
		return
	}

	ws := &wsSession{
		conn: conn,
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}

	s.clientsMu.Lock()
	s.clients[conn] = ws.id
	s.clientsMu.Unlock()
	log.Printf("🔌 Floe: session %s connected", ws.id)

	defer func() {
		close(ws.done)
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
		log.Printf("🔌 Floe: session %s disconnected", ws.id)
	}()

	go s.pingLoop(ws)

	// Initial push with the default controls, mirroring first page load.
	s.pushView(ws, s.defaultControls())

	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		var state controlState
		if err := conn.ReadJSON(&state); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ Floe: session %s read error: %v", ws.id, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		s.pushView(ws, state)
	}
}

// pushView runs the engine for one control snapshot and writes the result.
func (s *Server) pushView(ws *wsSession, state controlState) {
	result, err := engine.Execute(state.toRequest(), s.ds.View(), s.engineOpts...)
	if err != nil {
		ws.writeJSON(wsEnvelope{Type: "error", Session: ws.id, Error: err.Error()})
		return
	}
	if err := ws.writeJSON(wsEnvelope{Type: "view", Session: ws.id, Result: result}); err != nil {
		log.Printf("⚠️ Floe: session %s write failed: %v", ws.id, err)
	}
}

// pingLoop keeps the connection alive until the session ends.
func (s *Server) pingLoop(ws *wsSession) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ws.done:
			return
		case <-ticker.C:
			if err := ws.ping(); err != nil {
				return
			}
		}
	}
}
