package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
)

type attemptRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db, now: time.Now}
}

// Insert appends an attempt. There is no idempotency key: submitting the same
// guess twice records two attempts.
func (r *attemptRepository) Insert(ctx context.Context, a models.UserAttempt) (*models.UserAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("recording attempt: user_id=%s, story_id=%d, choice=%s", a.UserID, a.StoryID, a.Choice)

	a.CreatedAt = r.now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_attempts (user_id, story_id, choice, correct, created_at)
VALUES (?, ?, ?, ?, ?)
`, a.UserID, a.StoryID, string(a.Choice), a.Correct, a.CreatedAt)
	if err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return nil, err
	}
	a.ID = id
	log.Debug("attempt recorded: id=%d", id)
	return &a, nil
}
