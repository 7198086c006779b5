package migrations

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskboard.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())
	return db
}

func TestRunMigrations_CreatesTasksTable(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`,
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "tasks", name)

	// The case-folded unique index must exist too.
	var idx string
	err = db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'tasks_name_unique'`,
	).Scan(&idx)
	require.NoError(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	// Second run hits ErrNoChange, which must not surface as an error.
	require.NoError(t, RunMigrations(db))
}

func TestRunMigrations_NameUniquenessIsCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec(
		`INSERT INTO tasks (id, guid, name, status, created_at) VALUES (1, 'g1', 'Task1', 'todo', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO tasks (id, guid, name, status, created_at) VALUES (2, 'g2', 'task1', 'todo', 0)`)
	require.Error(t, err, "case-variant duplicate must violate the unique index")
}

func TestRunMigrations_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec(
		`INSERT INTO tasks (id, guid, name, status, created_at) VALUES (1, 'g1', 'task1', 'blocked', 0)`)
	require.Error(t, err, "status outside the lifecycle must be rejected")
}

func TestMigrationsFS_ContainsSQLFiles(t *testing.T) {
	entries, err := fs.ReadDir(MigrationsFS(), ".")
	require.NoError(t, err)

	var sqlFiles int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			sqlFiles++
		}
	}
	require.GreaterOrEqual(t, sqlFiles, 2, "up and down migrations should be embedded")
}
