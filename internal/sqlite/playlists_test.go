package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

func playlistFixture(t *testing.T, s *Store, titles ...string) (*types.Playlist, []*types.Song) {
	t.Helper()
	pl, err := s.Playlists().Create(types.Playlist{Name: "Fixture"})
	require.NoError(t, err)

	songs := make([]*types.Song, 0, len(titles))
	for _, title := range titles {
		song, err := s.Songs().Create(types.Song{
			Title:  title,
			Artist: "Unknown Artist",
			Album:  "Unknown Album",
			Path:   "/music/fixture/" + title + ".mp3",
		})
		require.NoError(t, err)
		songs = append(songs, song)
	}
	return pl, songs
}

func TestPlaylists_CRUD(t *testing.T) {
	s := setupStore(t)

	created, err := s.Playlists().Create(types.Playlist{
		Name:        "Late Drives",
		Description: "after midnight",
		Color:       "#222831",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.SongIDs)

	got, err := s.Playlists().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after midnight", got.Description)
	assert.NotNil(t, got.SongIDs)

	got.Name = "Later Drives"
	updated, err := s.Playlists().Update(created.ID, *got)
	require.NoError(t, err)
	assert.Equal(t, "Later Drives", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Playlists().Delete(created.ID))
	_, err = s.Playlists().Get(created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPlaylists_AddSongAssignsPositions(t *testing.T) {
	s := setupStore(t)
	pl, songs := playlistFixture(t, s, "first", "second", "third")

	for _, song := range songs {
		require.NoError(t, s.Playlists().AddSong(pl.ID, song.ID))
	}

	got, err := s.Playlists().Get(pl.ID)
	require.NoError(t, err)
	require.Len(t, got.SongIDs, 3)
	assert.Equal(t, songs[0].ID, got.SongIDs[0])
	assert.Equal(t, songs[1].ID, got.SongIDs[1])
	assert.Equal(t, songs[2].ID, got.SongIDs[2])
}

func TestPlaylists_AddSongTwiceIsNoop(t *testing.T) {
	s := setupStore(t)
	pl, songs := playlistFixture(t, s, "solo")

	require.NoError(t, s.Playlists().AddSong(pl.ID, songs[0].ID))
	require.NoError(t, s.Playlists().AddSong(pl.ID, songs[0].ID))

	got, err := s.Playlists().Get(pl.ID)
	require.NoError(t, err)
	assert.Len(t, got.SongIDs, 1)
}

func TestPlaylists_AddUnknownSongFails(t *testing.T) {
	s := setupStore(t)
	pl, _ := playlistFixture(t, s)

	err := s.Playlists().AddSong(pl.ID, "no-such-song")
	assert.ErrorIs(t, err, types.ErrForeignKey)
}

func TestPlaylists_RemoveSong(t *testing.T) {
	s := setupStore(t)
	pl, songs := playlistFixture(t, s, "a", "b", "c")

	for _, song := range songs {
		require.NoError(t, s.Playlists().AddSong(pl.ID, song.ID))
	}

	require.NoError(t, s.Playlists().RemoveSong(pl.ID, songs[1].ID))
	require.NoError(t, s.Playlists().RemoveSong(pl.ID, songs[1].ID), "idempotent")

	got, err := s.Playlists().Get(pl.ID)
	require.NoError(t, err)
	require.Len(t, got.SongIDs, 2)
	assert.Equal(t, songs[0].ID, got.SongIDs[0], "remaining order is preserved")
	assert.Equal(t, songs[2].ID, got.SongIDs[1])

	// The removed song itself is untouched.
	_, err = s.Songs().Get(songs[1].ID)
	assert.NoError(t, err)
}

func TestPlaylists_DeleteSongDropsMembership(t *testing.T) {
	s := setupStore(t)
	pl, songs := playlistFixture(t, s, "doomed", "kept")

	require.NoError(t, s.Playlists().AddSong(pl.ID, songs[0].ID))
	require.NoError(t, s.Playlists().AddSong(pl.ID, songs[1].ID))

	require.NoError(t, s.Songs().Delete(songs[0].ID))

	got, err := s.Playlists().Get(pl.ID)
	require.NoError(t, err)
	require.Len(t, got.SongIDs, 1)
	assert.Equal(t, songs[1].ID, got.SongIDs[0])
}

func TestPlaylists_DeleteKeepsSongs(t *testing.T) {
	s := setupStore(t)
	pl, songs := playlistFixture(t, s, "survivor")

	require.NoError(t, s.Playlists().AddSong(pl.ID, songs[0].ID))
	require.NoError(t, s.Playlists().Delete(pl.ID))

	_, err := s.Songs().Get(songs[0].ID)
	assert.NoError(t, err)
}

func TestPlaylists_ListNewestFirst(t *testing.T) {
	s := setupStore(t)

	for _, name := range []string{"oldest", "middle", "newest"} {
		_, err := s.Playlists().Create(types.Playlist{Name: name})
		require.NoError(t, err)
	}

	lists, err := s.Playlists().List()
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, "newest", lists[0].Name)
	assert.Equal(t, "oldest", lists[2].Name)
}

// Same-second creates with fractional parts whose decimal text would
// mis-sort (".15" sorts before ".1" only with fixed-width fractions).
// List orders by the stored text, so this pins the storage format.
func TestPlaylists_ListOrdersWithinOneSecond(t *testing.T) {
	s := setupStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, row := range []struct {
		name string
		at   time.Time
	}{
		{"early", base.Add(100 * time.Millisecond)},
		{"late", base.Add(150 * time.Millisecond)},
	} {
		pl, err := s.Playlists().Create(types.Playlist{Name: row.name})
		require.NoError(t, err)
		_, err = s.db.Exec(`UPDATE playlists SET created_at = ? WHERE id = ?`,
			formatTime(row.at), pl.ID)
		require.NoError(t, err)
	}

	lists, err := s.Playlists().List()
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "late", lists[0].Name)
	assert.Equal(t, "early", lists[1].Name)
}
