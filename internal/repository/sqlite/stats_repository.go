package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
	"github.com/vytor/pastorprompt/internal/scoring"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// UserStats aggregates a player's attempts. Only a zero folderID covers every
// story; the General folder filters on its own id like any other folder.
func (r *statsRepository) UserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing user stats: user_id=%s, folder_id=%d", userID, folderID)

	query := sqlBuilder.Select("COUNT(a.id)", "COALESCE(SUM(a.correct), 0)").
		From("user_attempts a").
		Where(squirrel.Eq{"a.user_id": userID})
	if folderID != 0 {
		query = query.Join("stories s ON s.id = a.story_id").
			Where(squirrel.Eq{"s.folder_id": folderID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var total, correct int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&total, &correct); err != nil {
		log.Error("failed to compute user stats: %v", err)
		return nil, err
	}

	stats := scoring.UserStats(correct, total)
	return &stats, nil
}

// StoryStats aggregates the attempt log per story in a single grouped query.
// Stories without attempts are included with zero counts.
func (r *statsRepository) StoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing story stats: folder_id=%d", folderID)

	query := sqlBuilder.Select("s.id", "s.event", "COUNT(a.id)", "COALESCE(SUM(a.correct), 0)").
		From("stories s").
		LeftJoin("user_attempts a ON a.story_id = s.id")
	query = scoped(query, "s.folder_id", models.StoryFilter{FolderID: folderID}).
		GroupBy("s.id", "s.event").
		OrderBy("s.id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query story stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	stats := []models.StoryStats{}
	for rows.Next() {
		var s models.StoryStats
		if err := rows.Scan(&s.StoryID, &s.Event, &s.TotalAttempts, &s.CorrectCount); err != nil {
			log.Error("failed to scan story stat row: %v", err)
			return nil, err
		}
		s.Accuracy = scoring.Accuracy(s.CorrectCount, s.TotalAttempts)
		stats = append(stats, s)
	}

	log.Debug("computed stats for %d stories", len(stats))
	return stats, rows.Err()
}

func (r *statsRepository) Summary(ctx context.Context) (*models.Summary, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing summary stats")

	var s models.Summary
	err := r.db.QueryRowContext(ctx, `
SELECT (SELECT COUNT(*) FROM folders),
       (SELECT COUNT(*) FROM stories),
       (SELECT COUNT(DISTINCT user_id) FROM user_attempts),
       (SELECT COUNT(*) FROM user_attempts),
       (SELECT COALESCE(SUM(correct), 0) FROM user_attempts)
`).Scan(&s.Folders, &s.Stories, &s.Users, &s.TotalAttempts, &s.CorrectCount)
	if err != nil {
		log.Error("failed to compute summary stats: %v", err)
		return nil, err
	}
	s.Accuracy = scoring.Accuracy(s.CorrectCount, s.TotalAttempts)
	return &s, nil
}
