package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrate_AppliesOnce(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	calls := 0
	migrations := []Migration{{
		Version:     1,
		Description: "create notes",
		Up: func(tx *sql.Tx) error {
			calls++
			_, err := tx.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`)
			return err
		},
	}}

	require.NoError(t, s.Migrate(ctx, "notes", migrations), "first Migrate")
	require.NoError(t, s.Migrate(ctx, "notes", migrations), "second Migrate")
	assert.Equal(t, 1, calls, "Up calls")

	_, err := s.DB().ExecContext(ctx, `INSERT INTO notes (body) VALUES ('hello')`)
	assert.NoError(t, err, "table not usable after migration")
}

func TestMigrate_ComponentsAreIndependent(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	mk := func(table string) []Migration {
		return []Migration{{
			Version:     1,
			Description: "create " + table,
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE ` + table + ` (id INTEGER PRIMARY KEY)`)
				return err
			},
		}}
	}

	require.NoError(t, s.Migrate(ctx, "a", mk("table_a")))
	require.NoError(t, s.Migrate(ctx, "b", mk("table_b")))

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n, "_migrations rows")
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Migrate(ctx, "broken", []Migration{{
		Version:     1,
		Description: "half applied",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE TABLE half (id INTEGER)`); err != nil {
				return err
			}
			return boom
		},
	}})
	require.ErrorIs(t, err, boom)

	var name string
	err = s.DB().QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'half'`).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows, "table 'half' survived rollback")
}

func TestTx_CommitAndRollback(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx, `CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)

	require.NoError(t, s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO t (v) VALUES (1)`)
		return err
	}))

	fail := errors.New("fail")
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO t (v) VALUES (2)`); err != nil {
			return err
		}
		return fail
	})
	require.ErrorIs(t, err, fail)

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 1, n, "rows")
}

func TestNew_FileAndCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantmatch.db")
	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.DB().Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	assert.NoError(t, s.Checkpoint(context.Background()))
}
