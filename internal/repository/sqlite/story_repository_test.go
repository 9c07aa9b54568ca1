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

type StoryRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StoryRepository
}

func (s *StoryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStoryRepository(s.db)
}

func (s *StoryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StoryRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()
	folderID := testutil.InsertFolder(s.T(), s.db, "History")

	hint := "Think about the telemetry."
	story := testutil.SampleStory(folderID)
	story.Hint = &hint

	created, err := s.repo.Create(ctx, story)
	s.Require().NoError(err)
	s.NotZero(created.ID)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	story.ID = created.ID
	s.Equal(story, *got)
	s.Require().NotNil(got.Hint)
	s.Equal(hint, *got.Hint)
}

func (s *StoryRepositorySuite) TestCreateWithoutHint() {
	created, err := s.repo.Create(context.Background(), testutil.SampleStory(models.GeneralFolderID))
	s.Require().NoError(err)
	s.Nil(created.Hint)
	s.Equal(models.GeneralFolderID, created.FolderID)
}

func (s *StoryRepositorySuite) TestCreateUnknownFolder() {
	_, err := s.repo.Create(context.Background(), testutil.SampleStory(999))
	s.Error(err)
}

func (s *StoryRepositorySuite) TestGetNotFound() {
	got, err := s.repo.Get(context.Background(), 42)
	s.NoError(err)
	s.Nil(got)
}

func (s *StoryRepositorySuite) TestListScoping() {
	ctx := context.Background()
	history := testutil.InsertFolder(s.T(), s.db, "History")
	science := testutil.InsertFolder(s.T(), s.db, "Science")
	a := testutil.InsertStory(s.T(), s.db, history, "A")
	b := testutil.InsertStory(s.T(), s.db, science, "B")
	c := testutil.InsertStory(s.T(), s.db, models.GeneralFolderID, "C")

	all, err := s.repo.List(ctx, models.StoryFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]int64{a, b, c}, []int64{all[0].ID, all[1].ID, all[2].ID})

	general, err := s.repo.List(ctx, models.StoryFilter{FolderID: models.GeneralFolderID})
	s.Require().NoError(err)
	s.Equal(all, general)

	scoped, err := s.repo.List(ctx, models.StoryFilter{FolderID: history})
	s.Require().NoError(err)
	s.Require().Len(scoped, 1)
	s.Equal(a, scoped[0].ID)

	empty, err := s.repo.List(ctx, models.StoryFilter{FolderID: 999})
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *StoryRepositorySuite) TestRandom() {
	ctx := context.Background()
	history := testutil.InsertFolder(s.T(), s.db, "History")
	science := testutil.InsertFolder(s.T(), s.db, "Science")
	a := testutil.InsertStory(s.T(), s.db, history, "A")
	testutil.InsertStory(s.T(), s.db, history, "B")

	for i := 0; i < 5; i++ {
		got, err := s.repo.Random(ctx, models.StoryFilter{FolderID: history})
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(history, got.FolderID)
	}

	none, err := s.repo.Random(ctx, models.StoryFilter{FolderID: science})
	s.NoError(err)
	s.Nil(none)

	picked, err := s.repo.Random(ctx, models.StoryFilter{})
	s.Require().NoError(err)
	s.Require().NotNil(picked)
	s.GreaterOrEqual(picked.ID, a)
}

func (s *StoryRepositorySuite) TestUpdate() {
	ctx := context.Background()
	history := testutil.InsertFolder(s.T(), s.db, "History")
	id := testutil.InsertStory(s.T(), s.db, models.GeneralFolderID, "Draft")

	story := testutil.SampleStory(history)
	story.ID = id
	updated, err := s.repo.Update(ctx, story)
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal(story, *updated)

	story.ID = 999
	missing, err := s.repo.Update(ctx, story)
	s.NoError(err)
	s.Nil(missing)
}

func (s *StoryRepositorySuite) TestDeleteRemovesAttempts() {
	ctx := context.Background()
	id := testutil.InsertStory(s.T(), s.db, models.GeneralFolderID, "Doomed")
	testutil.InsertAttempt(s.T(), s.db, "u1", id, models.ChoiceTrue)
	testutil.InsertAttempt(s.T(), s.db, "u2", id, models.ChoiceFake)

	deleted, err := s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.True(deleted)

	var attempts int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM user_attempts`).Scan(&attempts))
	s.Zero(attempts)

	again, err := s.repo.Delete(ctx, id)
	s.NoError(err)
	s.False(again)
}

func TestStoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(StoryRepositorySuite))
}
