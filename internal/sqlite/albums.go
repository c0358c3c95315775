package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Albums provides CRUD access to the albums table. The artist_name column
// is a denormalized copy of the owning music artist's name, filled in at
// create time and kept in sync by MusicArtists.Update.
type Albums struct {
	s *Store
}

const albumColumns = "id, name, artist_id, artist_name, year, cover_path, created_at, updated_at"

// List returns all albums ordered by name.
func (al *Albums) List() ([]*types.Album, error) {
	return al.query("SELECT "+albumColumns+" FROM albums ORDER BY name", nil)
}

// ListByArtist returns the albums of one music artist, ordered by name.
func (al *Albums) ListByArtist(artistID string) ([]*types.Album, error) {
	if artistID == "" {
		return nil, types.ErrInvalidID
	}
	return al.query(
		"SELECT "+albumColumns+" FROM albums WHERE artist_id = ? ORDER BY name",
		[]any{artistID})
}

func (al *Albums) query(q string, args []any) ([]*types.Album, error) {
	release, err := al.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := al.s.opCtx()
	defer cancel()

	rows, err := al.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("listing albums", err)
	}
	defer rows.Close()

	albums := []*types.Album{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, classify("scanning album", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating albums", err)
	}
	return albums, nil
}

// Get retrieves one album by ID. Absence is reported as ErrNotFound.
func (al *Albums) Get(id string) (*types.Album, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := al.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := al.s.opCtx()
	defer cancel()

	row := al.s.db.QueryRowContext(ctx,
		"SELECT "+albumColumns+" FROM albums WHERE id = ?", id)
	album, err := scanAlbum(row)
	if err != nil {
		return nil, classify("getting album", err)
	}
	return album, nil
}

// Create inserts a new album under an existing music artist. The
// denormalized artist name is read from storage, not taken from the
// caller. The name+artist pair is unique; a duplicate fails with
// ErrDuplicate, a missing artist with ErrNotFound.
func (al *Albums) Create(in types.Album) (*types.Album, error) {
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	if in.ArtistID == "" {
		return nil, types.ErrInvalidID
	}
	release, err := al.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := al.s.opCtx()
	defer cancel()

	tx, err := al.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("creating album", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		"SELECT name FROM music_artists WHERE id = ?", in.ArtistID).
		Scan(&in.ArtistName); err != nil {
		return nil, classify("resolving album artist", err)
	}

	now := time.Now().UTC()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO albums (id, name, artist_id, artist_name, year, cover_path, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.ArtistID, in.ArtistName, nullInt(in.Year),
		nullStr(in.CoverPath), formatTime(now), formatTime(now))
	if err != nil {
		return nil, classify("creating album", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing album", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of an album. The owning artist and
// created_at are re-read from storage. A rename propagates to the
// denormalized album string on songs in the same transaction.
func (al *Albums) Update(id string, in types.Album) (*types.Album, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := al.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := al.s.opCtx()
	defer cancel()

	tx, err := al.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating album", err)
	}
	defer tx.Rollback()

	var prevName, artistID, artistName, createdAt string
	if err := tx.QueryRowContext(ctx,
		"SELECT name, artist_id, artist_name, created_at FROM albums WHERE id = ?", id).
		Scan(&prevName, &artistID, &artistName, &createdAt); err != nil {
		return nil, classify("updating album", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"UPDATE albums SET name = ?, year = ?, cover_path = ?, updated_at = ? WHERE id = ?",
		in.Name, nullInt(in.Year), nullStr(in.CoverPath), formatTime(now), id)
	if err != nil {
		return nil, classify("updating album", err)
	}

	if in.Name != prevName {
		if _, err := tx.ExecContext(ctx,
			"UPDATE songs SET album = ? WHERE album_id = ?", in.Name, id); err != nil {
			return nil, classify("propagating album rename to songs", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing album update", err)
	}

	in.ID = id
	in.ArtistID = artistID
	in.ArtistName = artistName
	in.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	in.UpdatedAt = now
	return &in, nil
}

// Delete removes an album. Songs keep their rows with album_id cleared,
// their denormalized album string intact. Deleting a nonexistent ID is
// not an error.
func (al *Albums) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := al.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := al.s.opCtx()
	defer cancel()

	if _, err := al.s.db.ExecContext(ctx, "DELETE FROM albums WHERE id = ?", id); err != nil {
		return classify("deleting album", err)
	}
	return nil
}

func scanAlbum(row interface{ Scan(...any) error }) (*types.Album, error) {
	var (
		a                    types.Album
		year                 sql.NullInt64
		coverPath            sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.ArtistID, &a.ArtistName, &year,
		&coverPath, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Year = intValue(year)
	a.CoverPath = strValue(coverPath)

	var err error
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
