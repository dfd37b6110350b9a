package dbx

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

var testMigrations = fstest.MapFS{
	"00001_probe.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE probe (id INTEGER PRIMARY KEY, v TEXT);

-- +goose Down
DROP TABLE probe;
`)},
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(ctx, path, testMigrations)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "probe"))
	require.True(t, tableExists(t, db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(ctx, path, testMigrations)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, testMigrations))

	_, err = db.ExecContext(ctx, `INSERT INTO probe(v) VALUES ('ok')`)
	require.NoError(t, err)
	var got string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT v FROM probe LIMIT 1`).Scan(&got))
	require.Equal(t, "ok", got)
}

func TestOpenSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(ctx, path, testMigrations)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO probe(v) VALUES ('kept')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path, testMigrations)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM probe`).Scan(&n))
	require.Equal(t, 1, n)
}
