package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/services"
	"github.com/vytor/pastorprompt/internal/testutil/mocks"
)

func validFields() models.StoryFields {
	return models.StoryFields{
		Event:        "Moon Landing 1969",
		Introduction: "Not everyone believes it.",
		TrueVersion:  "Apollo 11 landed on the moon.",
		FakeVersion:  "It was filmed in a studio.",
		Explanation:  "Lunar rocks confirm the landing.",
	}
}

func newStoryService() (services.StoryService, *mocks.MockStoryRepository, *mocks.MockFolderRepository) {
	stories := new(mocks.MockStoryRepository)
	folders := new(mocks.MockFolderRepository)
	return services.NewStoryService(stories, folders), stories, folders
}

func TestListStories_PassesScope(t *testing.T) {
	svc, stories, _ := newStoryService()
	want := []models.Story{{ID: 1, FolderID: 3}}
	stories.On("List", mock.Anything, models.StoryFilter{FolderID: 3}).Return(want, nil)

	got, err := svc.ListStories(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetStory_NotFound(t *testing.T) {
	svc, stories, _ := newStoryService()
	stories.On("Get", mock.Anything, int64(5)).Return(nil, nil)

	_, err := svc.GetStory(context.Background(), 5)
	requireCode(t, err, errors.ErrCodeNotFound)
}

func TestRandomStory_EmptyScope(t *testing.T) {
	svc, stories, _ := newStoryService()
	stories.On("Random", mock.Anything, models.StoryFilter{FolderID: 4}).Return(nil, nil)

	_, err := svc.RandomStory(context.Background(), 4)
	requireCode(t, err, errors.ErrCodeNotFound)
}

func TestCreateStory_FolderMissing(t *testing.T) {
	svc, stories, folders := newStoryService()
	folders.On("Get", mock.Anything, int64(9)).Return(nil, nil)

	_, err := svc.CreateStory(context.Background(), 9, validFields())
	appErr := requireCode(t, err, errors.ErrCodeNotFound)
	assert.Contains(t, appErr.Message, "folder")
	stories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateStory_NormalizesBeforeSaving(t *testing.T) {
	svc, stories, folders := newStoryService()
	folders.On("Get", mock.Anything, int64(2)).Return(&models.Folder{ID: 2, Name: "History"}, nil)

	blank := "  "
	fields := validFields()
	fields.Event = "  Moon Landing 1969  "
	fields.Hint = &blank

	want := validFields().Story(0, 2)
	stories.On("Create", mock.Anything, want).Return(&models.Story{ID: 11, FolderID: 2}, nil)

	story, err := svc.CreateStory(context.Background(), 2, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(11), story.ID)
	stories.AssertExpectations(t)
}

func TestCreateStory_LengthBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.StoryFields)
		field  string
	}{
		{name: "true version at max", mutate: func(f *models.StoryFields) { f.TrueVersion = strings.Repeat("a", models.VersionMaxLen) }},
		{name: "true version over max", mutate: func(f *models.StoryFields) { f.TrueVersion = strings.Repeat("a", models.VersionMaxLen+1) }, field: "true_version"},
		{name: "fake version too short", mutate: func(f *models.StoryFields) { f.FakeVersion = "short" }, field: "fake_version"},
		{name: "explanation over max", mutate: func(f *models.StoryFields) { f.Explanation = strings.Repeat("e", models.ExplanationMaxLen+1) }, field: "explanation"},
		{name: "empty event", mutate: func(f *models.StoryFields) { f.Event = "   " }, field: "event"},
		{name: "introduction over max", mutate: func(f *models.StoryFields) { f.Introduction = strings.Repeat("i", models.IntroductionMaxLen+1) }, field: "introduction"},
		{name: "multibyte at max", mutate: func(f *models.StoryFields) { f.Event = strings.Repeat("é", models.EventMaxLen) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, stories, folders := newStoryService()
			folders.On("Get", mock.Anything, int64(2)).Return(&models.Folder{ID: 2}, nil)
			stories.On("Create", mock.Anything, mock.Anything).Return(&models.Story{ID: 1}, nil)

			fields := validFields()
			tt.mutate(&fields)

			_, err := svc.CreateStory(context.Background(), 2, fields)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			appErr := requireCode(t, err, errors.ErrCodeValidation)
			assert.Contains(t, appErr.Fields, tt.field)
			stories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStory_KeepsFolderWhenOmitted(t *testing.T) {
	svc, stories, folders := newStoryService()
	stories.On("Get", mock.Anything, int64(4)).Return(&models.Story{ID: 4, FolderID: 3}, nil)
	want := validFields().Story(4, 3)
	stories.On("Update", mock.Anything, want).Return(&want, nil)

	story, err := svc.UpdateStory(context.Background(), 4, nil, validFields())
	require.NoError(t, err)
	assert.Equal(t, int64(3), story.FolderID)
	folders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateStory_ZeroFolderKeepsFolder(t *testing.T) {
	svc, stories, folders := newStoryService()
	stories.On("Get", mock.Anything, int64(4)).Return(&models.Story{ID: 4, FolderID: 3}, nil)
	want := validFields().Story(4, 3)
	stories.On("Update", mock.Anything, want).Return(&want, nil)

	zero := int64(0)
	story, err := svc.UpdateStory(context.Background(), 4, &zero, validFields())
	require.NoError(t, err)
	assert.Equal(t, int64(3), story.FolderID)
	folders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateStory_MovesFolder(t *testing.T) {
	svc, stories, folders := newStoryService()
	stories.On("Get", mock.Anything, int64(4)).Return(&models.Story{ID: 4, FolderID: 3}, nil)
	folders.On("Get", mock.Anything, int64(5)).Return(&models.Folder{ID: 5}, nil)
	want := validFields().Story(4, 5)
	stories.On("Update", mock.Anything, want).Return(&want, nil)

	target := int64(5)
	story, err := svc.UpdateStory(context.Background(), 4, &target, validFields())
	require.NoError(t, err)
	assert.Equal(t, int64(5), story.FolderID)
}

func TestUpdateStory_Errors(t *testing.T) {
	svc, stories, folders := newStoryService()
	stories.On("Get", mock.Anything, int64(1)).Return(nil, nil)
	stories.On("Get", mock.Anything, int64(4)).Return(&models.Story{ID: 4, FolderID: 3}, nil)
	folders.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.UpdateStory(context.Background(), 1, nil, validFields())
	requireCode(t, err, errors.ErrCodeNotFound)

	missing := int64(99)
	_, err = svc.UpdateStory(context.Background(), 4, &missing, validFields())
	requireCode(t, err, errors.ErrCodeNotFound)

	bad := validFields()
	bad.TrueVersion = "nope"
	_, err = svc.UpdateStory(context.Background(), 4, nil, bad)
	requireCode(t, err, errors.ErrCodeValidation)
	stories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteStory(t *testing.T) {
	svc, stories, _ := newStoryService()
	stories.On("Delete", mock.Anything, int64(1)).Return(true, nil)
	stories.On("Delete", mock.Anything, int64(2)).Return(false, nil)

	assert.NoError(t, svc.DeleteStory(context.Background(), 1))
	requireCode(t, svc.DeleteStory(context.Background(), 2), errors.ErrCodeNotFound)
}
