package services_test

import (
	"context"
	stderrors "errors"
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

func requireCode(t *testing.T, err error, code string) *errors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := errors.As(err)
	require.Equal(t, code, appErr.Code, "unexpected error: %v", err)
	return appErr
}

func TestListFolders_TrimsSearch(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	want := []models.FolderWithStoryCount{{Folder: models.Folder{ID: 1, Name: "General"}, StoryCount: 3}}
	repo.On("List", mock.Anything, "hist").Return(want, nil)

	got, err := services.NewFolderService(repo).ListFolders(context.Background(), "  hist ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestListFolders_RepositoryError(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	repo.On("List", mock.Anything, "").Return(nil, stderrors.New("disk on fire"))

	_, err := services.NewFolderService(repo).ListFolders(context.Background(), "")
	appErr := requireCode(t, err, errors.ErrCodeInternal)
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestGetFolder_NotFound(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	repo.On("Get", mock.Anything, int64(7)).Return(nil, nil)

	_, err := services.NewFolderService(repo).GetFolder(context.Background(), 7)
	appErr := requireCode(t, err, errors.ErrCodeNotFound)
	assert.Equal(t, 404, appErr.Status)
}

func TestCreateFolder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "too short", input: "a", reason: "must be at least 2 characters"},
		{name: "whitespace only", input: "   ", reason: "must be at least 2 characters"},
		{name: "too long", input: strings.Repeat("x", models.FolderNameMaxLen+1), reason: "must be at most 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockFolderRepository)

			_, err := services.NewFolderService(repo).CreateFolder(context.Background(), tt.input)
			appErr := requireCode(t, err, errors.ErrCodeValidation)
			assert.Equal(t, tt.reason, appErr.Fields["name"])
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateFolder_TrimsName(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	repo.On("Create", mock.Anything, "History Test").Return(&models.Folder{ID: 2, Name: "History Test"}, nil)

	folder, err := services.NewFolderService(repo).CreateFolder(context.Background(), "  History Test\n")
	require.NoError(t, err)
	assert.Equal(t, int64(2), folder.ID)
	repo.AssertExpectations(t)
}

func TestRenameFolder(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	repo.On("Rename", mock.Anything, int64(2), "Science").Return(&models.Folder{ID: 2, Name: "Science"}, nil)
	repo.On("Rename", mock.Anything, int64(9), "Science").Return(nil, nil)
	svc := services.NewFolderService(repo)

	folder, err := svc.RenameFolder(context.Background(), 2, "Science")
	require.NoError(t, err)
	assert.Equal(t, "Science", folder.Name)

	_, err = svc.RenameFolder(context.Background(), 9, "Science")
	requireCode(t, err, errors.ErrCodeNotFound)

	_, err = svc.RenameFolder(context.Background(), 2, "S")
	requireCode(t, err, errors.ErrCodeValidation)
}

func TestDeleteFolder_GeneralIsForbidden(t *testing.T) {
	repo := new(mocks.MockFolderRepository)

	err := services.NewFolderService(repo).DeleteFolder(context.Background(), models.GeneralFolderID)
	appErr := requireCode(t, err, errors.ErrCodeForbidden)
	assert.Equal(t, 403, appErr.Status)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteFolder(t *testing.T) {
	repo := new(mocks.MockFolderRepository)
	repo.On("Delete", mock.Anything, int64(2)).Return(true, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(false, nil)
	svc := services.NewFolderService(repo)

	assert.NoError(t, svc.DeleteFolder(context.Background(), 2))
	requireCode(t, svc.DeleteFolder(context.Background(), 3), errors.ErrCodeNotFound)
}
