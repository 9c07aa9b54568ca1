package services

import (
	"context"
	"strings"

	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetUserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error)
	GetStoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error)
	GetSummary(ctx context.Context) (*models.Summary, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// GetUserStats aggregates a player's attempts within folderID, or across
// every story when folderID is 0.
func (s *statsService) GetUserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.NewValidationError("userId", "is required")
	}
	log.Debug("getting user stats: user_id=%s, folder_id=%d", userID, folderID)

	stats, err := s.statsRepo.UserStats(ctx, userID, folderID)
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) GetStoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting story stats: folder_id=%d", folderID)

	stats, err := s.statsRepo.StoryStats(ctx, folderID)
	if err != nil {
		log.Error("failed to get story stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) GetSummary(ctx context.Context) (*models.Summary, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting summary stats")

	summary, err := s.statsRepo.Summary(ctx)
	if err != nil {
		log.Error("failed to get summary stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return summary, nil
}
