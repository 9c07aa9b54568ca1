package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pastorprompt/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.UserAttempt) (*models.UserAttempt, error) {
	args := m.Called(ctx, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAttempt), args.Error(1)
}
