package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

func TestMusicArtists_CRUD(t *testing.T) {
	s := setupStore(t)

	created, err := s.MusicArtists().Create(types.MusicArtist{
		Name:  "Glass Harbor",
		Genre: "ambient",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.MusicArtists().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ambient", got.Genre)

	byName, err := s.MusicArtists().GetByName("Glass Harbor")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = s.MusicArtists().GetByName("Nobody")
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, s.MusicArtists().Delete(created.ID))
	_, err = s.MusicArtists().Get(created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestMusicArtists_UniqueName(t *testing.T) {
	s := setupStore(t)

	_, err := s.MusicArtists().Create(types.MusicArtist{Name: "Dupe"})
	require.NoError(t, err)

	_, err = s.MusicArtists().Create(types.MusicArtist{Name: "Dupe"})
	assert.ErrorIs(t, err, types.ErrDuplicate)
}

func TestMusicArtists_RenamePropagates(t *testing.T) {
	s := setupStore(t)

	artist, err := s.MusicArtists().Create(types.MusicArtist{Name: "Old Name"})
	require.NoError(t, err)
	album, err := s.Albums().Create(types.Album{Name: "First", ArtistID: artist.ID})
	require.NoError(t, err)
	require.Equal(t, "Old Name", album.ArtistName)

	song, err := s.Songs().Create(types.Song{
		Title:    "Track One",
		Artist:   "Old Name",
		Album:    "First",
		ArtistID: artist.ID,
		AlbumID:  album.ID,
		Path:     "/music/old/track-one.mp3",
	})
	require.NoError(t, err)

	artist.Name = "New Name"
	_, err = s.MusicArtists().Update(artist.ID, *artist)
	require.NoError(t, err)

	gotAlbum, err := s.Albums().Get(album.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", gotAlbum.ArtistName,
		"album carries the renamed artist string")

	gotSong, err := s.Songs().Get(song.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", gotSong.Artist,
		"song carries the renamed artist string")
}

func TestMusicArtists_DeleteCascadesAlbums(t *testing.T) {
	s := setupStore(t)

	artist, err := s.MusicArtists().Create(types.MusicArtist{Name: "Gone Soon"})
	require.NoError(t, err)
	album, err := s.Albums().Create(types.Album{Name: "Only", ArtistID: artist.ID})
	require.NoError(t, err)
	song, err := s.Songs().Create(types.Song{
		Title:    "Leftover",
		Artist:   "Gone Soon",
		Album:    "Only",
		ArtistID: artist.ID,
		AlbumID:  album.ID,
		Path:     "/music/gone/leftover.mp3",
	})
	require.NoError(t, err)

	require.NoError(t, s.MusicArtists().Delete(artist.ID))

	_, err = s.Albums().Get(album.ID)
	assert.ErrorIs(t, err, types.ErrNotFound, "albums cascade with the artist")

	got, err := s.Songs().Get(song.ID)
	require.NoError(t, err, "songs survive as orphans")
	assert.Empty(t, got.ArtistID)
	assert.Empty(t, got.AlbumID)
	assert.Equal(t, "Gone Soon", got.Artist, "display string is retained")
}
