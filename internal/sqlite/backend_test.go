package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

// setupStore opens a store against a temp directory and closes it when
// the test finishes.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, s.Open(cfg))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Open(t *testing.T) {
	tmpDir := t.TempDir()

	s := NewStore()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	require.NoError(t, s.Open(cfg))
	defer s.Close()

	_, err := os.Stat(filepath.Join(tmpDir, dbFileName))
	assert.NoError(t, err, "backstage.db should be created")

	assert.ErrorIs(t, s.Open(cfg), types.ErrAlreadyOpen)
}

func TestStore_OpenValidatesConfig(t *testing.T) {
	s := NewStore()

	err := s.Open(types.Config{Backend: types.BackendSQLite})
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)

	err = s.Open(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestStore_Close(t *testing.T) {
	s := NewStore()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, s.Open(cfg))

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close(), "second Close should be a no-op")

	_, err := s.Artists().List()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	_, err = s.Songs().Get("some-id")
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestStore_Reopen(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	s := NewStore()
	require.NoError(t, s.Open(cfg))
	created, err := s.Artists().Create(types.Artist{Name: "Mara Iles"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Same file, fresh store: data survives the restart.
	require.NoError(t, s.Open(cfg))
	defer s.Close()

	got, err := s.Artists().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mara Iles", got.Name)
}

func TestNewID(t *testing.T) {
	a := newID()
	b := newID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
