package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pastorprompt/internal/models"
)

// MockFolderRepository is a mock implementation of repository.FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) List(ctx context.Context, search string) ([]models.FolderWithStoryCount, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FolderWithStoryCount), args.Error(1)
}

func (m *MockFolderRepository) Get(ctx context.Context, id int64) (*models.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *MockFolderRepository) Create(ctx context.Context, name string) (*models.Folder, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *MockFolderRepository) Rename(ctx context.Context, id int64, name string) (*models.Folder, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
