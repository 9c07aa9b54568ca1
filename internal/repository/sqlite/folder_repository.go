package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/pastorprompt/internal/db"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
	"github.com/vytor/pastorprompt/internal/repository"
)

type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new FolderRepository implementation
func NewFolderRepository(db *sql.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) List(ctx context.Context, search string) ([]models.FolderWithStoryCount, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("listing folders: search=%q", search)

	query := sqlBuilder.Select("f.id", "f.name", "COUNT(s.id) AS story_count").
		From("folders f").
		LeftJoin("stories s ON s.folder_id = f.id").
		GroupBy("f.id", "f.name").
		OrderBy("f.id ASC")
	if search != "" {
		query = query.Where(`f.name LIKE ? ESCAPE '\'`, containsPattern(search))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, err
	}
	defer rows.Close()

	folders := []models.FolderWithStoryCount{}
	for rows.Next() {
		var f models.FolderWithStoryCount
		if err := rows.Scan(&f.ID, &f.Name, &f.StoryCount); err != nil {
			log.Error("failed to scan folder row: %v", err)
			return nil, err
		}
		folders = append(folders, f)
	}

	log.Debug("found %d folders", len(folders))
	return folders, rows.Err()
}

func (r *folderRepository) Get(ctx context.Context, id int64) (*models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("getting folder: id=%d", id)

	var f models.Folder
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM folders WHERE id = ?`, id).Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("folder not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get folder: %v", err)
		return nil, err
	}
	return &f, nil
}

func (r *folderRepository) Create(ctx context.Context, name string) (*models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("creating folder: name=%q", name)

	var f models.Folder
	err := r.db.QueryRowContext(ctx, `
INSERT INTO folders (name)
VALUES (?)
RETURNING id, name
`, name).Scan(&f.ID, &f.Name)
	if err != nil {
		log.Error("failed to create folder: %v", err)
		return nil, err
	}
	log.Debug("folder created: id=%d", f.ID)
	return &f, nil
}

func (r *folderRepository) Rename(ctx context.Context, id int64, name string) (*models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("renaming folder: id=%d, name=%q", id, name)

	var f models.Folder
	err := r.db.QueryRowContext(ctx, `
UPDATE folders SET name = ?
WHERE id = ?
RETURNING id, name
`, name, id).Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("folder not found for rename: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to rename folder: %v", err)
		return nil, err
	}
	return &f, nil
}

// Delete removes a folder together with its stories and their attempts.
// The General folder is never deleted.
func (r *folderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")

	if id == models.GeneralFolderID {
		log.Warn("refusing to delete the General folder")
		return false, nil
	}
	log.Debug("deleting folder and its stories: id=%d", id)

	var deleted bool
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Attempts -> stories -> folder, mirroring the FK cascade.
		if _, err := tx.ExecContext(ctx, `
DELETE FROM user_attempts
WHERE story_id IN (SELECT id FROM stories WHERE folder_id = ?)
`, id); err != nil {
			log.Error("failed to delete attempts for folder %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE folder_id = ?`, id); err != nil {
			log.Error("failed to delete stories for folder %d: %v", id, err)
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete folder %d: %v", id, err)
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

	log.Debug("folder %d deleted=%t", id, deleted)
	return deleted, nil
}
