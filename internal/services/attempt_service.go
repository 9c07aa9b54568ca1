package services

import (
	"context"
	"strings"

	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
	"github.com/vytor/pastorprompt/internal/scoring"
	"github.com/vytor/pastorprompt/internal/validation"
)

// AttemptService records player guesses
type AttemptService interface {
	RecordAttempt(ctx context.Context, input models.AttemptInput) (*models.UserAttempt, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	storyRepo   repository.StoryRepository
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attemptRepo repository.AttemptRepository, storyRepo repository.StoryRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, storyRepo: storyRepo}
}

// RecordAttempt appends one guess. Repeated submissions are all counted.
func (s *attemptService) RecordAttempt(ctx context.Context, input models.AttemptInput) (*models.UserAttempt, error) {
	log := logger.FromContext(ctx)

	input.UserID = strings.TrimSpace(input.UserID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	correct := scoring.IsCorrect(input.Choice)
	if input.Correct != nil && *input.Correct != correct {
		return nil, errors.NewValidationError("correct", "must be true exactly when choice is \"true\"")
	}
	log.Debug("recording attempt: user_id=%s, story_id=%d, choice=%s", input.UserID, input.StoryID, input.Choice)

	story, err := s.storyRepo.Get(ctx, input.StoryID)
	if err != nil {
		log.Error("failed to get story: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if story == nil {
		return nil, errors.NewNotFoundError("story", input.StoryID)
	}

	attempt, err := s.attemptRepo.Insert(ctx, models.UserAttempt{
		UserID:  input.UserID,
		StoryID: input.StoryID,
		Choice:  input.Choice,
		Correct: correct,
	})
	if err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return attempt, nil
}
