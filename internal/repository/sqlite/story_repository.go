package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pastorprompt/internal/db"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
)

var storyColumns = []string{
	"id", "folder_id", "event", "introduction", "true_version", "fake_version", "explanation", "hint",
}

const storyReturning = "RETURNING id, folder_id, event, introduction, true_version, fake_version, explanation, hint"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*models.Story, error) {
	var s models.Story
	var hint sql.NullString
	if err := row.Scan(&s.ID, &s.FolderID, &s.Event, &s.Introduction, &s.TrueVersion, &s.FakeVersion, &s.Explanation, &hint); err != nil {
		return nil, err
	}
	s.Hint = stringPtr(hint)
	return &s, nil
}

type storyRepository struct {
	db *sql.DB
}

// NewStoryRepository creates a new StoryRepository implementation
func NewStoryRepository(db *sql.DB) repository.StoryRepository {
	return &storyRepository{db: db}
}

// scoped narrows a stories query to filter. The General folder, like no
// folder at all, leaves it unfiltered.
func scoped(query squirrel.SelectBuilder, column string, filter models.StoryFilter) squirrel.SelectBuilder {
	if models.IsAllStoriesScope(filter.FolderID) {
		return query
	}
	return query.Where(squirrel.Eq{column: filter.FolderID})
}

func (r *storyRepository) List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("listing stories: folder_id=%d", filter.FolderID)

	query := scoped(sqlBuilder.Select(storyColumns...).From("stories"), "folder_id", filter).
		OrderBy("id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list stories: %v", err)
		return nil, err
	}
	defer rows.Close()

	stories := []models.Story{}
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			log.Error("failed to scan story row: %v", err)
			return nil, err
		}
		stories = append(stories, *s)
	}

	log.Debug("found %d stories", len(stories))
	return stories, rows.Err()
}

func (r *storyRepository) Get(ctx context.Context, id int64) (*models.Story, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("getting story: id=%d", id)

	sqlStr, args, err := sqlBuilder.Select(storyColumns...).From("stories").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanStory(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("story not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get story: %v", err)
		return nil, err
	}
	return s, nil
}

func (r *storyRepository) Random(ctx context.Context, filter models.StoryFilter) (*models.Story, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("picking random story: folder_id=%d", filter.FolderID)

	sqlStr, args, err := scoped(sqlBuilder.Select(storyColumns...).From("stories"), "folder_id", filter).
		OrderBy("RANDOM()").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanStory(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stories in scope: folder_id=%d", filter.FolderID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to pick random story: %v", err)
		return nil, err
	}
	return s, nil
}

func (r *storyRepository) Create(ctx context.Context, s models.Story) (*models.Story, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("creating story: folder_id=%d, event=%q", s.FolderID, s.Event)

	created, err := scanStory(r.db.QueryRowContext(ctx, `
INSERT INTO stories (folder_id, event, introduction, true_version, fake_version, explanation, hint)
VALUES (?, ?, ?, ?, ?, ?, ?)
`+storyReturning, s.FolderID, s.Event, s.Introduction, s.TrueVersion, s.FakeVersion, s.Explanation, nullString(s.Hint)))
	if err != nil {
		log.Error("failed to create story: %v", err)
		return nil, err
	}
	log.Debug("story created: id=%d", created.ID)
	return created, nil
}

func (r *storyRepository) Update(ctx context.Context, s models.Story) (*models.Story, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("updating story: id=%d, folder_id=%d", s.ID, s.FolderID)

	updated, err := scanStory(r.db.QueryRowContext(ctx, `
UPDATE stories
SET folder_id = ?, event = ?, introduction = ?, true_version = ?, fake_version = ?, explanation = ?, hint = ?
WHERE id = ?
`+storyReturning, s.FolderID, s.Event, s.Introduction, s.TrueVersion, s.FakeVersion, s.Explanation, nullString(s.Hint), s.ID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("story not found for update: id=%d", s.ID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to update story: %v", err)
		return nil, err
	}
	return updated, nil
}

// Delete removes a story and its attempts.
func (r *storyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("story_repo")
	log.Debug("deleting story: id=%d", id)

	var deleted bool
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_attempts WHERE story_id = ?`, id); err != nil {
			log.Error("failed to delete attempts for story %d: %v", id, err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete story %d: %v", id, err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
