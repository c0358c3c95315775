package library

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAudioFile(t *testing.T) {
	assert.True(t, IsAudioFile("/music/song.mp3"))
	assert.True(t, IsAudioFile("/music/SONG.FLAC"))
	assert.True(t, IsAudioFile("track.m4a"))
	assert.False(t, IsAudioFile("/music/cover.jpg"))
	assert.False(t, IsAudioFile("/music/notes.txt"))
	assert.False(t, IsAudioFile("/music/song"))
}

func TestExtract_FallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "03 - Midnight Run.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not a real mp3"), 0o644))

	song, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "03 - Midnight Run", song.Title)
	assert.Equal(t, UnknownArtist, song.Artist)
	assert.Equal(t, UnknownAlbum, song.Album)
	assert.Equal(t, path, song.Path)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "absent.mp3"))
	assert.Error(t, err)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"a.mp3", "nested/b.flac", "skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	songs, err := ScanDir(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Len(t, songs, 2, "only audio extensions are picked up")

	titles := []string{songs[0].Title, songs[1].Title}
	assert.Contains(t, titles, "a")
	assert.Contains(t, titles, "b")
}
