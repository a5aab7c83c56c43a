// Package server exposes the controller state to telemetry consumers over
// HTTP and a websocket feed.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TahliaK/wight-whale/internal/core/graphics"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
	"github.com/TahliaK/wight-whale/internal/core/settings"
)

// Source is what the server reads from; *graphics.Controller satisfies it.
type Source interface {
	Snapshot() []graphics.ObjectState
	Settings() settings.Settings
}

type Config struct {
	ListenAddr      string
	ClientBuffer    int
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		ClientBuffer:    16,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Frame is one websocket message.
type Frame struct {
	Type    string                 `json:"type"`
	Tick    int                    `json:"tick"`
	Objects []graphics.ObjectState `json:"objects"`
}

type Server struct {
	source   Source
	config   Config
	logger   log.Log
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	http    *http.Server
	addr    net.Addr
	stopped bool
}

func New(source Source, config Config, logger log.Log) *Server {
	if logger == nil {
		logger = log.Provide()
	}
	if config.ClientBuffer <= 0 {
		config.ClientBuffer = DefaultConfig().ClientBuffer
	}
	return &Server{
		source:  source,
		config:  config,
		logger:  logger.With(log.String("component", "server")),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler routes /objects, /settings and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /objects", s.handleObjects)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.http != nil {
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.logger.Error("Failed to create listener", log.Error(err))
		return err
	}
	s.addr = ln.Addr()
	s.stopped = false
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.http
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", s.addr.String()))
	return nil
}

// Addr is the bound address while running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stop closes every websocket client and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	if srv == nil {
		s.mu.Unlock()
		return ErrServerNotRunning
	}
	s.http = nil
	s.addr = nil
	s.stopped = true
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.close()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Shutdown failed", log.Error(err))
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
