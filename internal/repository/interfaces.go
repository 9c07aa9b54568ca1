package repository

import (
	"context"

	"github.com/vytor/pastorprompt/internal/models"
)

// FolderRepository handles folder data access.
// Get and Rename return a nil folder when the id does not exist.
type FolderRepository interface {
	List(ctx context.Context, search string) ([]models.FolderWithStoryCount, error)
	Get(ctx context.Context, id int64) (*models.Folder, error)
	Create(ctx context.Context, name string) (*models.Folder, error)
	Rename(ctx context.Context, id int64, name string) (*models.Folder, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// StoryRepository handles story data access.
type StoryRepository interface {
	List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error)
	Get(ctx context.Context, id int64) (*models.Story, error)
	Random(ctx context.Context, filter models.StoryFilter) (*models.Story, error)
	Create(ctx context.Context, story models.Story) (*models.Story, error)
	Update(ctx context.Context, story models.Story) (*models.Story, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AttemptRepository appends to the attempt log. Attempts are never updated.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.UserAttempt) (*models.UserAttempt, error)
}

// StatsRepository handles statistics data access.
type StatsRepository interface {
	UserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error)
	StoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error)
	Summary(ctx context.Context) (*models.Summary, error)
}
