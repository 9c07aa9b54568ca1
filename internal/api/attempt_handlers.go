package api

import (
	"net/http"

	"github.com/vytor/pastorprompt/internal/models"
)

func (s *Server) handleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req models.AttemptInput
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.RecordAttempt(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	recordAttempt(attempt.Correct)
	writeJSON(w, r, http.StatusCreated, attempt)
}
