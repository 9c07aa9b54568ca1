package api

import (
	"net/http"

	"github.com/vytor/pastorprompt/internal/logger"
)

type healthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// handleHealth is the liveness probe. It answers 200 while the process runs.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// handleReady is the readiness probe. It answers 503 when the database does not
// respond to a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if s.DB != nil {
		if err := s.DB.PingContext(ctx); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Reason: "database unavailable"})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ready"})
}
