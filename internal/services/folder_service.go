package services

import (
	"context"
	"strings"

	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
	"github.com/vytor/pastorprompt/internal/validation"
)

// FolderService handles folder-related business logic
type FolderService interface {
	ListFolders(ctx context.Context, search string) ([]models.FolderWithStoryCount, error)
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error
}

type folderName struct {
	Name string `json:"name" validate:"min=2,max=50"`
}

type folderService struct {
	folderRepo repository.FolderRepository
}

// NewFolderService creates a new FolderService
func NewFolderService(folderRepo repository.FolderRepository) FolderService {
	return &folderService{folderRepo: folderRepo}
}

func (s *folderService) ListFolders(ctx context.Context, search string) ([]models.FolderWithStoryCount, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing folders: search=%q", search)

	folders, err := s.folderRepo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return folders, nil
}

func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting folder: id=%d", id)

	folder, err := s.folderRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get folder: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", id)
	}

	return folder, nil
}

func (s *folderService) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	log := logger.FromContext(ctx)

	input := folderName{Name: strings.TrimSpace(name)}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	log.Debug("creating folder: name=%q", input.Name)

	folder, err := s.folderRepo.Create(ctx, input.Name)
	if err != nil {
		log.Error("failed to create folder: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("folder created: id=%d, name=%q", folder.ID, folder.Name)
	return folder, nil
}

func (s *folderService) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	log := logger.FromContext(ctx)

	input := folderName{Name: strings.TrimSpace(name)}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	log.Debug("renaming folder: id=%d, name=%q", id, input.Name)

	folder, err := s.folderRepo.Rename(ctx, id, input.Name)
	if err != nil {
		log.Error("failed to rename folder: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", id)
	}

	return folder, nil
}

// DeleteFolder removes a folder with its stories and their attempts.
func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting folder: id=%d", id)

	if id == models.GeneralFolderID {
		log.Warn("attempt to delete the General folder rejected")
		return errors.NewForbiddenError("the General folder cannot be deleted")
	}

	deleted, err := s.folderRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete folder: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("folder", id)
	}

	log.Info("folder deleted: id=%d", id)
	return nil
}
