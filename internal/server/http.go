package server

import (
	"encoding/json"
	"net/http"

	"github.com/TahliaK/wight-whale/internal/core/observability/log"
)

func (s *Server) handleObjects(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.source.Snapshot())
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.source.Settings())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", log.Error(err))
	}
}
