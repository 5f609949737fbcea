package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/plantmatch/internal/services"
	"github.com/HerbHall/plantmatch/internal/store"
)

// seedDB creates a database file with one wishlist entry.
func seedDB(t *testing.T, dir string) string {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(dir, "plantmatch.db")

	s, err := store.New(dbPath)
	require.NoError(t, err)
	repo, err := services.NewSQLiteWishlistRepository(ctx, s, nil)
	require.NoError(t, err)
	_, err = repo.Add(ctx, "alice", 7)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	return dbPath
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	dbPath := seedDB(t, src)
	cfgPath := filepath.Join(src, "plantmatch.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 9090\n"), 0o600))

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	m, err := Backup(ctx, dbPath, cfgPath, archive)
	require.NoError(t, err)
	assert.Equal(t, "plantmatch.db", m.Database)
	assert.Equal(t, "plantmatch.yaml", m.Config)

	dest := t.TempDir()
	restored, err := Restore(ctx, archive, dest, false)
	require.NoError(t, err)
	assert.Equal(t, m.Database, restored.Database)

	cfg, err := os.ReadFile(filepath.Join(dest, "plantmatch.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "server:\n  port: 9090\n", string(cfg))

	s, err := store.New(filepath.Join(dest, "plantmatch.db"))
	require.NoError(t, err)
	defer s.Close()
	repo, err := services.NewSQLiteWishlistRepository(ctx, s, nil)
	require.NoError(t, err)
	ok, err := repo.Contains(ctx, "alice", 7)
	require.NoError(t, err)
	assert.True(t, ok, "restored database lost the wishlist entry")
}

func TestBackupWithoutConfig(t *testing.T) {
	ctx := context.Background()
	dbPath := seedDB(t, t.TempDir())

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	m, err := Backup(ctx, dbPath, filepath.Join(t.TempDir(), "missing.yaml"), archive)
	require.NoError(t, err)
	assert.Empty(t, m.Config)

	dest := t.TempDir()
	_, err = Restore(ctx, archive, dest, false)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "plantmatch.db"))
	assert.NoFileExists(t, filepath.Join(dest, "missing.yaml"))
}

func TestBackupMissingDatabase(t *testing.T) {
	_, err := Backup(context.Background(), filepath.Join(t.TempDir(), "nope.db"), "", filepath.Join(t.TempDir(), "b.tar.gz"))
	assert.Error(t, err)
}

func TestRestoreRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	dbPath := seedDB(t, t.TempDir())
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := Backup(ctx, dbPath, "", archive)
	require.NoError(t, err)

	dest := t.TempDir()
	existing := filepath.Join(dest, "plantmatch.db")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o600))

	_, err = Restore(ctx, archive, dest, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	require.NoError(t, os.WriteFile(existing+"-wal", []byte("stale"), 0o600))
	_, err = Restore(ctx, archive, dest, true)
	require.NoError(t, err)
	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.NotEqual(t, "keep me", string(data))
	assert.NoFileExists(t, existing+"-wal")
}

func TestRestoreRejectsForeignArchive(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "bogus.tar.gz")
	require.NoError(t, os.WriteFile(bogus, []byte("not gzip"), 0o600))

	_, err := Restore(context.Background(), bogus, t.TempDir(), false)
	assert.Error(t, err)
}

func TestCheckEntryName(t *testing.T) {
	for _, name := range []string{"plantmatch.db", "config.yaml"} {
		assert.NoError(t, checkEntryName(name), name)
	}
	for _, name := range []string{"", "../etc/passwd", "sub/dir.db", ".."} {
		assert.Error(t, checkEntryName(name), name)
	}
}
