package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Songs provides CRUD access to the songs table. The artist and album
// columns are denormalized name strings alongside the optional foreign
// keys; they are what the library displays and they survive deletion of
// the referenced rows.
type Songs struct {
	s *Store
}

// play_count predates migration 4 on old databases, so it reads through
// COALESCE instead of NOT NULL DEFAULT.
const songColumns = "id, title, artist, album, artist_id, album_id, duration, path, genre, year, track_number, date_added, COALESCE(play_count, 0), last_played"

// List returns all songs ordered by title.
func (so *Songs) List() ([]*types.Song, error) {
	return so.query("SELECT "+songColumns+" FROM songs ORDER BY title", nil)
}

// ListByArtist returns the songs linked to one music artist, by title.
func (so *Songs) ListByArtist(artistID string) ([]*types.Song, error) {
	if artistID == "" {
		return nil, types.ErrInvalidID
	}
	return so.query(
		"SELECT "+songColumns+" FROM songs WHERE artist_id = ? ORDER BY title",
		[]any{artistID})
}

// ListByAlbum returns the songs of one album, in track order then title.
func (so *Songs) ListByAlbum(albumID string) ([]*types.Song, error) {
	if albumID == "" {
		return nil, types.ErrInvalidID
	}
	return so.query(
		"SELECT "+songColumns+" FROM songs WHERE album_id = ? ORDER BY track_number, title",
		[]any{albumID})
}

func (so *Songs) query(q string, args []any) ([]*types.Song, error) {
	release, err := so.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	rows, err := so.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("listing songs", err)
	}
	defer rows.Close()

	songs := []*types.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, classify("scanning song", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating songs", err)
	}
	return songs, nil
}

// Get retrieves one song by ID. Absence is reported as ErrNotFound.
func (so *Songs) Get(id string) (*types.Song, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := so.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	row := so.s.db.QueryRowContext(ctx,
		"SELECT "+songColumns+" FROM songs WHERE id = ?", id)
	song, err := scanSong(row)
	if err != nil {
		return nil, classify("getting song", err)
	}
	return song, nil
}

// Create inserts a new song, usually from the metadata extractor. The file
// path is unique: importing the same file twice fails with ErrDuplicate.
// Play tracking starts at zero regardless of the input.
func (so *Songs) Create(in types.Song) (*types.Song, error) {
	if in.Title == "" {
		return nil, types.ErrInvalidName
	}
	if in.Path == "" {
		return nil, types.ErrInvalidName
	}
	release, err := so.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	in.ID = newID()
	in.DateAdded = time.Now().UTC()
	in.PlayCount = 0
	in.LastPlayed = nil

	_, err = so.s.db.ExecContext(ctx,
		`INSERT INTO songs (id, title, artist, album, artist_id, album_id, duration, path,
         genre, year, track_number, date_added, play_count, last_played)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NULL)`,
		in.ID, in.Title, in.Artist, in.Album, nullStr(in.ArtistID), nullStr(in.AlbumID),
		in.Duration, in.Path, nullStr(in.Genre), nullInt(in.Year),
		nullInt(in.TrackNumber), formatTime(in.DateAdded))
	if err != nil {
		return nil, classify("creating song", err)
	}
	return &in, nil
}

// Update replaces the mutable metadata of a song. The file path, date
// added, and play counters are immutable here and re-read from storage.
func (so *Songs) Update(id string, in types.Song) (*types.Song, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.Title == "" {
		return nil, types.ErrInvalidName
	}
	release, err := so.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	tx, err := so.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating song", err)
	}
	defer tx.Rollback()

	var (
		path, dateAdded string
		playCount       sql.NullInt64
		lastPlayed      sql.NullString
	)
	if err := tx.QueryRowContext(ctx,
		"SELECT path, date_added, COALESCE(play_count, 0), last_played FROM songs WHERE id = ?", id).
		Scan(&path, &dateAdded, &playCount, &lastPlayed); err != nil {
		return nil, classify("updating song", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE songs SET title = ?, artist = ?, album = ?, artist_id = ?, album_id = ?,
         duration = ?, genre = ?, year = ?, track_number = ? WHERE id = ?`,
		in.Title, in.Artist, in.Album, nullStr(in.ArtistID), nullStr(in.AlbumID),
		in.Duration, nullStr(in.Genre), nullInt(in.Year), nullInt(in.TrackNumber), id)
	if err != nil {
		return nil, classify("updating song", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing song update", err)
	}

	in.ID = id
	in.Path = path
	in.PlayCount = intValue(playCount)
	if in.DateAdded, err = parseTime("date_added", dateAdded); err != nil {
		return nil, err
	}
	if in.LastPlayed, err = timeValue("last_played", lastPlayed); err != nil {
		return nil, err
	}
	return &in, nil
}

// MarkPlayed increments the song's play count and stamps last_played.
// Returns ErrNotFound if the song does not exist.
func (so *Songs) MarkPlayed(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := so.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	res, err := so.s.db.ExecContext(ctx,
		"UPDATE songs SET play_count = COALESCE(play_count, 0) + 1, last_played = ? WHERE id = ?",
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return classify("marking song played", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("marking song played", err)
	}
	if n == 0 {
		return classify("marking song played", sql.ErrNoRows)
	}
	return nil
}

// Delete removes a song. Playlist membership rows cascade away.
// Deleting a nonexistent ID is not an error.
func (so *Songs) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := so.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := so.s.opCtx()
	defer cancel()

	if _, err := so.s.db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id); err != nil {
		return classify("deleting song", err)
	}
	return nil
}

func scanSong(row interface{ Scan(...any) error }) (*types.Song, error) {
	var (
		s                 types.Song
		artistID, albumID sql.NullString
		genre, lastPlayed sql.NullString
		year, track       sql.NullInt64
		dateAdded         string
	)
	if err := row.Scan(&s.ID, &s.Title, &s.Artist, &s.Album, &artistID, &albumID,
		&s.Duration, &s.Path, &genre, &year, &track, &dateAdded,
		&s.PlayCount, &lastPlayed); err != nil {
		return nil, err
	}
	s.ArtistID = strValue(artistID)
	s.AlbumID = strValue(albumID)
	s.Genre = strValue(genre)
	s.Year = intValue(year)
	s.TrackNumber = intValue(track)

	var err error
	if s.DateAdded, err = parseTime("date_added", dateAdded); err != nil {
		return nil, err
	}
	if s.LastPlayed, err = timeValue("last_played", lastPlayed); err != nil {
		return nil, err
	}
	return &s, nil
}
