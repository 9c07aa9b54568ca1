package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pastorprompt/internal/db"
	"github.com/vytor/pastorprompt/internal/testutil"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quiz.db")

	first, err := db.Open(ctx, "file:"+path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open(ctx, "file:"+path)
	require.NoError(t, err)
	defer testutil.MustClose(t, second)

	var applied int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	var name string
	require.NoError(t, second.QueryRow(`SELECT name FROM folders WHERE id = 1`).Scan(&name))
	assert.Equal(t, "General", name)
}

func TestSeed_OnlyOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)

	seeded, err := db.Seed(ctx, sqlDB)
	require.NoError(t, err)
	assert.True(t, seeded)

	var stories int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&stories))
	assert.Equal(t, 4, stories)

	seeded, err = db.Seed(ctx, sqlDB)
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&stories))
	assert.Equal(t, 4, stories)
}

func TestSchema_RejectsInconsistentAttempt(t *testing.T) {
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)

	storyID := testutil.InsertStory(t, sqlDB, 1, "Cleopatra's Death")

	_, err := sqlDB.Exec(`INSERT INTO user_attempts (user_id, story_id, choice, correct) VALUES (?, ?, ?, ?)`,
		"u1", storyID, "fake", true)
	assert.Error(t, err, "correct must match choice")
}

func TestSchema_RejectsUnknownFolder(t *testing.T) {
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)

	_, err := sqlDB.Exec(`
INSERT INTO stories (folder_id, event, true_version, fake_version, explanation)
VALUES (999, 'x', 'true version', 'fake version', 'explanation')
`)
	assert.Error(t, err)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)

	boom := errors.New("boom")
	err := db.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO folders (name) VALUES ('Rolled Back')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = db.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO folders (name) VALUES ('Committed')`)
		return err
	})
	require.NoError(t, err)

	var names []string
	rows, err := sqlDB.Query(`SELECT name FROM folders ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"General", "Committed"}, names)
}
