package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/services"
	"github.com/vytor/pastorprompt/internal/testutil/mocks"
)

func boolPtr(b bool) *bool { return &b }

func TestRecordAttempt_DerivesCorrect(t *testing.T) {
	attempts := new(mocks.MockAttemptRepository)
	stories := new(mocks.MockStoryRepository)
	stories.On("Get", mock.Anything, int64(3)).Return(&models.Story{ID: 3}, nil)
	attempts.On("Insert", mock.Anything, models.UserAttempt{UserID: "u1", StoryID: 3, Choice: models.ChoiceFake, Correct: false}).
		Return(&models.UserAttempt{ID: 1, UserID: "u1", StoryID: 3, Choice: models.ChoiceFake}, nil)

	svc := services.NewAttemptService(attempts, stories)
	got, err := svc.RecordAttempt(context.Background(), models.AttemptInput{UserID: " u1 ", StoryID: 3, Choice: models.ChoiceFake})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	attempts.AssertExpectations(t)
}

func TestRecordAttempt_ConsistentCorrectAccepted(t *testing.T) {
	attempts := new(mocks.MockAttemptRepository)
	stories := new(mocks.MockStoryRepository)
	stories.On("Get", mock.Anything, int64(3)).Return(&models.Story{ID: 3}, nil)
	attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.UserAttempt) bool { return a.Correct })).
		Return(&models.UserAttempt{ID: 2, Correct: true}, nil)

	svc := services.NewAttemptService(attempts, stories)
	got, err := svc.RecordAttempt(context.Background(), models.AttemptInput{UserID: "u1", StoryID: 3, Choice: models.ChoiceTrue, Correct: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.Correct)
}

func TestRecordAttempt_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input models.AttemptInput
		field string
	}{
		{name: "missing user", input: models.AttemptInput{StoryID: 1, Choice: models.ChoiceTrue}, field: "user_id"},
		{name: "bad choice", input: models.AttemptInput{UserID: "u1", StoryID: 1, Choice: "maybe"}, field: "choice"},
		{name: "missing story", input: models.AttemptInput{UserID: "u1", Choice: models.ChoiceTrue}, field: "story_id"},
		{name: "contradicting correct", input: models.AttemptInput{UserID: "u1", StoryID: 1, Choice: models.ChoiceFake, Correct: boolPtr(true)}, field: "correct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := new(mocks.MockAttemptRepository)
			stories := new(mocks.MockStoryRepository)

			_, err := services.NewAttemptService(attempts, stories).RecordAttempt(context.Background(), tt.input)
			appErr := requireCode(t, err, errors.ErrCodeValidation)
			assert.Contains(t, appErr.Fields, tt.field)
			attempts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordAttempt_StoryMissing(t *testing.T) {
	attempts := new(mocks.MockAttemptRepository)
	stories := new(mocks.MockStoryRepository)
	stories.On("Get", mock.Anything, int64(8)).Return(nil, nil)

	_, err := services.NewAttemptService(attempts, stories).RecordAttempt(context.Background(), models.AttemptInput{UserID: "u1", StoryID: 8, Choice: models.ChoiceTrue})
	requireCode(t, err, errors.ErrCodeNotFound)
	attempts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
