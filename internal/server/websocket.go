package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TahliaK/wight-whale/internal/core/observability/log"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, s.config.ClientBuffer)}
	// initial state so a new client doesn't wait for the next tick
	if data, err := json.Marshal(Frame{Type: "snapshot", Objects: s.source.Snapshot()}); err == nil {
		c.send <- data
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.logger.Debug("Client rejected, server stopped", log.String("remote", conn.RemoteAddr().String()))
		_ = conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug("Client connected", log.String("remote", conn.RemoteAddr().String()))

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop only drains control frames; it returns when the peer goes away.
func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer func() { _ = c.conn.Close() }()
	for data := range c.send {
		if s.config.WriteTimeout > 0 {
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("Write to client failed", log.Error(err))
			s.drop(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
}

// Broadcast pushes the current snapshot to every websocket client. Clients
// whose buffer is full skip this frame.
func (s *Server) Broadcast(tick int) {
	data, err := json.Marshal(Frame{Type: "snapshot", Tick: tick, Objects: s.source.Snapshot()})
	if err != nil {
		s.logger.Error("Failed to encode frame", log.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Debug("Client too slow, frame skipped", log.Int("tick", tick))
		}
	}
}

// Clients reports the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
