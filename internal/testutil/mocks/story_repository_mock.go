package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pastorprompt/internal/models"
)

// MockStoryRepository is a mock implementation of repository.StoryRepository
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryRepository) Get(ctx context.Context, id int64) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) Random(ctx context.Context, filter models.StoryFilter) (*models.Story, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) Create(ctx context.Context, story models.Story) (*models.Story, error) {
	args := m.Called(ctx, story)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) Update(ctx context.Context, story models.Story) (*models.Story, error) {
	args := m.Called(ctx, story)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
