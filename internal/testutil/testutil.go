package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pastorprompt/internal/db"
	"github.com/vytor/pastorprompt/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// Foreign keys are enabled. The pool is pinned to one connection because every
// new connection to ":memory:" would see an empty database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertFolder adds a folder directly and returns its id.
func InsertFolder(t *testing.T, sqlDB *sql.DB, name string) int64 {
	t.Helper()

	res, err := sqlDB.Exec(`INSERT INTO folders (name) VALUES (?)`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// InsertStory adds a story with valid placeholder text and returns its id.
func InsertStory(t *testing.T, sqlDB *sql.DB, folderID int64, event string) int64 {
	t.Helper()

	res, err := sqlDB.Exec(`
INSERT INTO stories (folder_id, event, introduction, true_version, fake_version, explanation)
VALUES (?, ?, ?, ?, ?, ?)
`, folderID, event, "An introduction.", "The true account of "+event+".", "A fabricated account of "+event+".", "Why the true account holds up.")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// InsertAttempt records an attempt directly, deriving correctness from choice.
func InsertAttempt(t *testing.T, sqlDB *sql.DB, userID string, storyID int64, choice models.Choice) {
	t.Helper()

	_, err := sqlDB.Exec(`INSERT INTO user_attempts (user_id, story_id, choice, correct) VALUES (?, ?, ?, ?)`,
		userID, storyID, string(choice), choice == models.ChoiceTrue)
	require.NoError(t, err)
}

// SampleStory returns a story that passes validation.
func SampleStory(folderID int64) models.Story {
	return models.Story{
		FolderID:     folderID,
		Event:        "Moon Landing 1969",
		Introduction: "Not everyone believes it happened as reported.",
		TrueVersion:  "NASA's Apollo 11 landed humans on the moon on July 20, 1969.",
		FakeVersion:  "The Moon Landing was filmed in a Hollywood studio in 1969.",
		Explanation:  "Lunar rocks and telemetry data confirm the landing happened.",
	}
}
