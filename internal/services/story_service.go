package services

import (
	"context"

	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
	"github.com/vytor/pastorprompt/internal/validation"
)

// StoryService handles story-related business logic
type StoryService interface {
	ListStories(ctx context.Context, folderID int64) ([]models.Story, error)
	GetStory(ctx context.Context, id int64) (*models.Story, error)
	RandomStory(ctx context.Context, folderID int64) (*models.Story, error)
	CreateStory(ctx context.Context, folderID int64, fields models.StoryFields) (*models.Story, error)
	// UpdateStory replaces the story text. A nil folderID keeps the current folder.
	UpdateStory(ctx context.Context, id int64, folderID *int64, fields models.StoryFields) (*models.Story, error)
	DeleteStory(ctx context.Context, id int64) error
}

type storyService struct {
	storyRepo  repository.StoryRepository
	folderRepo repository.FolderRepository
}

// NewStoryService creates a new StoryService
func NewStoryService(storyRepo repository.StoryRepository, folderRepo repository.FolderRepository) StoryService {
	return &storyService{storyRepo: storyRepo, folderRepo: folderRepo}
}

func (s *storyService) ListStories(ctx context.Context, folderID int64) ([]models.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing stories: folder_id=%d", folderID)

	stories, err := s.storyRepo.List(ctx, models.StoryFilter{FolderID: folderID})
	if err != nil {
		log.Error("failed to list stories: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stories, nil
}

func (s *storyService) GetStory(ctx context.Context, id int64) (*models.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting story: id=%d", id)

	story, err := s.storyRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get story: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if story == nil {
		return nil, errors.NewNotFoundError("story", id)
	}

	return story, nil
}

func (s *storyService) RandomStory(ctx context.Context, folderID int64) (*models.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("picking random story: folder_id=%d", folderID)

	story, err := s.storyRepo.Random(ctx, models.StoryFilter{FolderID: folderID})
	if err != nil {
		log.Error("failed to pick random story: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if story == nil {
		return nil, errors.NewNotFoundError("stories in folder", folderID)
	}

	return story, nil
}

func (s *storyService) CreateStory(ctx context.Context, folderID int64, fields models.StoryFields) (*models.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating story: folder_id=%d", folderID)

	if err := s.requireFolder(ctx, folderID); err != nil {
		return nil, err
	}

	fields = fields.Normalize()
	if err := validation.Struct(fields); err != nil {
		return nil, err
	}

	story, err := s.storyRepo.Create(ctx, fields.Story(0, folderID))
	if err != nil {
		log.Error("failed to create story: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("story created: id=%d, folder_id=%d", story.ID, story.FolderID)
	return story, nil
}

// UpdateStory replaces a story's fields. A nil or zero folderID keeps the
// story in its current folder.
func (s *storyService) UpdateStory(ctx context.Context, id int64, folderID *int64, fields models.StoryFields) (*models.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating story: id=%d", id)

	existing, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	target := existing.FolderID
	if folderID != nil && *folderID != 0 && *folderID != existing.FolderID {
		if err := s.requireFolder(ctx, *folderID); err != nil {
			return nil, err
		}
		target = *folderID
	}

	fields = fields.Normalize()
	if err := validation.Struct(fields); err != nil {
		return nil, err
	}

	story, err := s.storyRepo.Update(ctx, fields.Story(id, target))
	if err != nil {
		log.Error("failed to update story: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if story == nil {
		// Deleted between the read and the write.
		return nil, errors.NewNotFoundError("story", id)
	}

	return story, nil
}

func (s *storyService) DeleteStory(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting story: id=%d", id)

	deleted, err := s.storyRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete story: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("story", id)
	}

	log.Info("story deleted: id=%d", id)
	return nil
}

func (s *storyService) requireFolder(ctx context.Context, folderID int64) error {
	folder, err := s.folderRepo.Get(ctx, folderID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get folder %d: %v", folderID, err)
		return errors.NewInternalError(err)
	}
	if folder == nil {
		return errors.NewNotFoundError("folder", folderID)
	}
	return nil
}
