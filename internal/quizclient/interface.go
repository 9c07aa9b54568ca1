package quizclient

import (
	"context"

	"github.com/vytor/pastorprompt/internal/models"
)

// ClientInterface lists the API operations, so callers can substitute a fake.
type ClientInterface interface {
	ListFolders(ctx context.Context, search string) ([]models.FolderWithStoryCount, error)
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error

	ListStories(ctx context.Context, folderID int64) ([]models.Story, error)
	GetStory(ctx context.Context, id int64) (*models.Story, error)
	RandomStory(ctx context.Context, folderID int64) (*models.Story, error)
	CreateStory(ctx context.Context, folderID int64, fields models.StoryFields) (*models.Story, error)
	UpdateStory(ctx context.Context, id int64, folderID *int64, fields models.StoryFields) (*models.Story, error)
	DeleteStory(ctx context.Context, id int64) error

	RecordAttempt(ctx context.Context, input models.AttemptInput) (*models.UserAttempt, error)

	UserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error)
	StoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
