package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(metricsMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}

		r.Get("/folders", s.handleListFolders)
		r.Post("/folders", s.handleCreateFolder)
		r.Get("/folders/{id}", s.handleGetFolder)
		r.Put("/folders/{id}", s.handleRenameFolder)
		r.Delete("/folders/{id}", s.handleDeleteFolder)
		r.Post("/folders/{folderId}/stories", s.handleCreateStory)

		r.Get("/stories", s.handleListStories)
		r.Get("/stories/random", s.handleRandomStory)
		r.Get("/stories/{id}", s.handleGetStory)
		r.Put("/stories/{id}", s.handleUpdateStory)
		r.Delete("/stories/{id}", s.handleDeleteStory)

		r.Post("/attempt", s.handleRecordAttempt)

		r.Get("/stats/user", s.handleUserStats)
		r.Get("/stats/stories", s.handleStoryStats)
		r.Get("/stats/summary", s.handleSummary)
	})

	return r
}
