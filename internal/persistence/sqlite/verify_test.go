package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.sqlite")
}

func TestOpen_AppliesPragmas(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var busy int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy))
	assert.Equal(t, 5000, busy)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	path := openTemp(t)
	db, err := Open(ctx, path, DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	steps := []string{
		`CREATE TABLE a (id INTEGER PRIMARY KEY)`,
		`ALTER TABLE a ADD COLUMN name TEXT`,
	}

	from, err := Migrate(ctx, db, steps[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, from)

	from, err = Migrate(ctx, db, steps)
	require.NoError(t, err)
	assert.Equal(t, 1, from)

	_, err = db.ExecContext(ctx, `INSERT INTO a (name) VALUES ('x')`)
	require.NoError(t, err)

	from, err = Migrate(ctx, db, steps)
	require.NoError(t, err)
	assert.Equal(t, 2, from)

	_, err = Migrate(ctx, db, steps[:1])
	assert.Error(t, err, "older build must refuse a newer schema")
}

func TestMigrate_FailedStepRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(ctx, db, []string{`CREATE TABLE ok (id INTEGER)`, `NOT SQL`})
	require.Error(t, err)

	var version int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, 0, version)
}

func TestVerifyIntegrity_Healthy(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, data TEXT)`)
	require.NoError(t, err)

	for _, mode := range []string{"quick", "full"} {
		issues, err := VerifyIntegrity(ctx, db, mode)
		require.NoError(t, err)
		assert.Nil(t, issues, mode)
	}
}
