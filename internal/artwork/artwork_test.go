package artwork

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_SaveAndLookup(t *testing.T) {
	w := NewWriter(t.TempDir())

	path, err := w.Save(KindAlbum, "album-1", "png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("albums", "album-1.png"), mustRel(t, w.root, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)

	assert.Equal(t, path, w.Lookup(KindAlbum, "album-1"))
	assert.Empty(t, w.Lookup(KindAlbum, "album-2"))
}

func TestWriter_SaveReplacesOldExtension(t *testing.T) {
	w := NewWriter(t.TempDir())

	old, err := w.Save(KindArtist, "a1", ".jpg", []byte("old"))
	require.NoError(t, err)

	replaced, err := w.Save(KindArtist, "a1", ".png", []byte("new"))
	require.NoError(t, err)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err), "previous image with another extension is removed")
	assert.Equal(t, replaced, w.Lookup(KindArtist, "a1"))
}

func TestWriter_Validation(t *testing.T) {
	w := NewWriter(t.TempDir())

	_, err := w.Save("covers", "id", ".png", nil)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = w.Save(KindPlaylist, "", ".png", nil)
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = w.Save(KindPlaylist, "p1", ".gif", nil)
	assert.ErrorIs(t, err, ErrBadExtension)
}

func TestWriter_RemoveIsIdempotent(t *testing.T) {
	w := NewWriter(t.TempDir())
	require.NoError(t, w.EnsureLayout())

	assert.NoError(t, w.Remove(KindPlaylist, "never-saved"))

	_, err := w.Save(KindPlaylist, "p1", ".jpeg", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Remove(KindPlaylist, "p1"))
	assert.Empty(t, w.Lookup(KindPlaylist, "p1"))
}

func mustRel(t *testing.T, base, path string) string {
	t.Helper()
	rel, err := filepath.Rel(base, path)
	require.NoError(t, err)
	return rel
}
