package api

import (
	"net/http"
)

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseFolderQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetUserStats(r.Context(), r.URL.Query().Get("userId"), folderID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleStoryStats(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseFolderQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetStoryStats(r.Context(), folderID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StatsService.GetSummary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
