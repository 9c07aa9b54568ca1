package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
	"github.com/vytor/pastorprompt/internal/repository/sqlite"
	"github.com/vytor/pastorprompt/internal/testutil"
)

type FolderRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FolderRepository
}

func (s *FolderRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFolderRepository(s.db)
}

func (s *FolderRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FolderRepositorySuite) TestListIncludesGeneral() {
	folders, err := s.repo.List(context.Background(), "")
	s.Require().NoError(err)
	s.Require().Len(folders, 1)
	s.Equal(models.GeneralFolderID, folders[0].ID)
	s.Equal("General", folders[0].Name)
	s.Equal(0, folders[0].StoryCount)
}

func (s *FolderRepositorySuite) TestListStoryCounts() {
	history := testutil.InsertFolder(s.T(), s.db, "History")
	science := testutil.InsertFolder(s.T(), s.db, "Science")
	testutil.InsertStory(s.T(), s.db, history, "Moon Landing")
	testutil.InsertStory(s.T(), s.db, history, "Cleopatra")
	testutil.InsertStory(s.T(), s.db, models.GeneralFolderID, "Unsorted")

	folders, err := s.repo.List(context.Background(), "")
	s.Require().NoError(err)
	s.Require().Len(folders, 3)

	counts := map[int64]int{}
	for _, f := range folders {
		counts[f.ID] = f.StoryCount
	}
	s.Equal(1, counts[models.GeneralFolderID])
	s.Equal(2, counts[history])
	s.Equal(0, counts[science])
}

func (s *FolderRepositorySuite) TestListSearch() {
	testutil.InsertFolder(s.T(), s.db, "History")
	testutil.InsertFolder(s.T(), s.db, "100% Real")

	folders, err := s.repo.List(context.Background(), "hist")
	s.Require().NoError(err)
	s.Require().Len(folders, 1)
	s.Equal("History", folders[0].Name)

	// Wildcards in the search term match literally.
	folders, err = s.repo.List(context.Background(), "%")
	s.Require().NoError(err)
	s.Require().Len(folders, 1)
	s.Equal("100% Real", folders[0].Name)

	folders, err = s.repo.List(context.Background(), "nothing")
	s.Require().NoError(err)
	s.NotNil(folders)
	s.Empty(folders)
}

func (s *FolderRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, "Ancient Rome")
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.Equal("Ancient Rome", created.Name)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)
}

func (s *FolderRepositorySuite) TestGetNotFound() {
	got, err := s.repo.Get(context.Background(), 999)
	s.NoError(err)
	s.Nil(got)
}

func (s *FolderRepositorySuite) TestRename() {
	ctx := context.Background()
	id := testutil.InsertFolder(s.T(), s.db, "Histroy")

	renamed, err := s.repo.Rename(ctx, id, "History")
	s.Require().NoError(err)
	s.Equal(id, renamed.ID)
	s.Equal("History", renamed.Name)

	missing, err := s.repo.Rename(ctx, 999, "Nope")
	s.NoError(err)
	s.Nil(missing)
}

func (s *FolderRepositorySuite) TestDeleteGeneralRefused() {
	deleted, err := s.repo.Delete(context.Background(), models.GeneralFolderID)
	s.Require().NoError(err)
	s.False(deleted)

	got, err := s.repo.Get(context.Background(), models.GeneralFolderID)
	s.Require().NoError(err)
	s.NotNil(got)
}

func (s *FolderRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	folderID := testutil.InsertFolder(s.T(), s.db, "Doomed")
	storyID := testutil.InsertStory(s.T(), s.db, folderID, "Doomed Story")
	keptID := testutil.InsertStory(s.T(), s.db, models.GeneralFolderID, "Kept Story")
	testutil.InsertAttempt(s.T(), s.db, "u1", storyID, models.ChoiceTrue)
	testutil.InsertAttempt(s.T(), s.db, "u1", keptID, models.ChoiceFake)

	deleted, err := s.repo.Delete(ctx, folderID)
	s.Require().NoError(err)
	s.True(deleted)

	var stories, attempts int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&stories))
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM user_attempts`).Scan(&attempts))
	s.Equal(1, stories)
	s.Equal(1, attempts)

	again, err := s.repo.Delete(ctx, folderID)
	s.NoError(err)
	s.False(again)
}

func TestFolderRepositorySuite(t *testing.T) {
	suite.Run(t, new(FolderRepositorySuite))
}
