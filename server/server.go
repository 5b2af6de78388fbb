package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/floeboard/floe/config"
	"github.com/floeboard/floe/dataset"
	"github.com/floeboard/floe/engine"
)

// ============================================================================
// DASHBOARD SERVER — HTTP + WebSocket surface over the engine
// ============================================================================
// The browser loads the static UI, reads control metadata from /api/schema,
// and then either polls /api/view with query-string criteria or opens /ws
// and sends control state as it changes. Either way the server re-runs the
// engine per request — the dataset itself is immutable after load.
// ============================================================================

//go:embed static
var staticFS embed.FS

// Server serves the dashboard UI and API.
type Server struct {
	addr       string
	httpServer *http.Server
	upgrader   websocket.Upgrader

	clients   map[*websocket.Conn]string // conn → session id
	clientsMu sync.RWMutex

	ds         *dataset.Dataset
	defaults   config.Defaults
	engineOpts []engine.Option
}

// New creates a dashboard server over a loaded dataset.
func New(cfg config.Config, ds *dataset.Dataset) *Server {
	return &Server{
		addr: cfg.Addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Same-host dashboard; no cross-origin clients.
				return true
			},
		},
		clients:  make(map[*websocket.Conn]string),
		ds:       ds,
		defaults: cfg.Defaults,
		engineOpts: []engine.Option{
			engine.WithDefaultAttribute(cfg.Defaults.Attribute),
			engine.WithSplitDimension("species"),
			engine.WithScatterAxes("body_mass_g", "flipper_length_mm"),
			engine.WithMassMeasure("body_mass_g"),
		},
	}
}

// Start begins serving. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("🐧 Floe: serving %d penguins on %s", s.ds.Len(), s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server, closing any open WebSocket sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.clientsMu.Lock()
	for conn := range s.clients {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]string)
	s.clientsMu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler builds the route mux. Exposed so tests can drive the API without
// a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if static, err := fs.Sub(staticFS, "static"); err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}

	mux.HandleFunc("/api/schema", s.handleSchema)
	mux.HandleFunc("/api/view", s.handleView)
	mux.HandleFunc("/api/plot/histogram.png", s.handleHistogramPNG)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}
