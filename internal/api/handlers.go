package api

import (
	"database/sql"
	"time"

	"github.com/vytor/pastorprompt/internal/repository/sqlite"
	"github.com/vytor/pastorprompt/internal/services"
)

// Server holds the dependencies shared by every handler. Handlers keep no
// per-request state on it.
type Server struct {
	FolderService  services.FolderService
	StoryService   services.StoryService
	AttemptService services.AttemptService
	StatsService   services.StatsService
	DB             *sql.DB
	RequestTimeout time.Duration
}

// NewServer wires the SQLite repositories and services over sqlDB.
func NewServer(sqlDB *sql.DB, requestTimeout time.Duration) *Server {
	folderRepo := sqlite.NewFolderRepository(sqlDB)
	storyRepo := sqlite.NewStoryRepository(sqlDB)
	attemptRepo := sqlite.NewAttemptRepository(sqlDB)
	statsRepo := sqlite.NewStatsRepository(sqlDB)

	return &Server{
		FolderService:  services.NewFolderService(folderRepo),
		StoryService:   services.NewStoryService(storyRepo, folderRepo),
		AttemptService: services.NewAttemptService(attemptRepo, storyRepo),
		StatsService:   services.NewStatsService(statsRepo),
		DB:             sqlDB,
		RequestTimeout: requestTimeout,
	}
}
