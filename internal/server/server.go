package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"doubleklondike/internal/session"
)

// Server hosts the WebSocket endpoint plus the health and stats routes.
// Game rules live in the engine and session bookkeeping in the manager;
// the server only moves messages between clients and sessions.
type Server struct {
	logger   zerolog.Logger
	config   *Config
	upgrader websocket.Upgrader
	sessions *session.Manager
	stats    *Stats

	mu          sync.Mutex
	connections map[*Connection]struct{}

	httpMu     sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new WebSocket server backed by the given session
// manager
func NewServer(logger zerolog.Logger, sessions *session.Manager, config *Config) *Server {
	return &Server{
		logger: logger.With().Str("component", "server").Logger(),
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions:    sessions,
		stats:       NewStats(),
		connections: make(map[*Connection]struct{}),
	}
}

// Handler returns the server's routes, for tests that want to mount
// them on their own listener
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// Start listens on addr and serves until Shutdown is called
func (s *Server) Start(addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	s.httpMu.Lock()
	s.httpServer = httpServer
	s.httpMu.Unlock()

	s.logger.Info().Str("addr", addr).Msg("Starting WebSocket server")
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes every client connection and drains the HTTP server.
// WebSocket connections are hijacked from the HTTP server, so they are
// closed explicitly before the listener drains.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	s.httpMu.Lock()
	httpServer := s.httpServer
	s.httpMu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}

// Stats returns the server's counters
func (s *Server) Stats() *Stats {
	return s.stats
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register(client)
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleStats serves the counters alongside the live session count
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot := s.stats.Snapshot(s.sessions.Count())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write stats response")
	}
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info().Int("total", total).Msg("Client connected")
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; ok {
		delete(s.connections, conn)
		_ = conn.Close() // Ignore close errors during unregistration
	}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info().Int("total", total).Msg("Client disconnected")
}
