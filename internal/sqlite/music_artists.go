package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// MusicArtists provides CRUD access to the library's music_artists table.
type MusicArtists struct {
	s *Store
}

const musicArtistColumns = "id, name, genre, bio, image_path, artwork_path, created_at, updated_at"

// List returns all music artists ordered by name.
func (m *MusicArtists) List() ([]*types.MusicArtist, error) {
	release, err := m.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	rows, err := m.s.db.QueryContext(ctx,
		"SELECT "+musicArtistColumns+" FROM music_artists ORDER BY name")
	if err != nil {
		return nil, classify("listing music artists", err)
	}
	defer rows.Close()

	artists := []*types.MusicArtist{}
	for rows.Next() {
		artist, err := scanMusicArtist(rows)
		if err != nil {
			return nil, classify("scanning music artist", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating music artists", err)
	}
	return artists, nil
}

// Get retrieves one music artist by ID. Absence is reported as ErrNotFound.
func (m *MusicArtists) Get(id string) (*types.MusicArtist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := m.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	row := m.s.db.QueryRowContext(ctx,
		"SELECT "+musicArtistColumns+" FROM music_artists WHERE id = ?", id)
	artist, err := scanMusicArtist(row)
	if err != nil {
		return nil, classify("getting music artist", err)
	}
	return artist, nil
}

// GetByName retrieves one music artist by its unique name.
func (m *MusicArtists) GetByName(name string) (*types.MusicArtist, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := m.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	row := m.s.db.QueryRowContext(ctx,
		"SELECT "+musicArtistColumns+" FROM music_artists WHERE name = ?", name)
	artist, err := scanMusicArtist(row)
	if err != nil {
		return nil, classify("getting music artist by name", err)
	}
	return artist, nil
}

// Create inserts a new music artist. Names are unique across the library;
// a duplicate fails with ErrDuplicate.
func (m *MusicArtists) Create(in types.MusicArtist) (*types.MusicArtist, error) {
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := m.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	now := time.Now().UTC()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now

	_, err = m.s.db.ExecContext(ctx,
		`INSERT INTO music_artists (id, name, genre, bio, image_path, artwork_path, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, nullStr(in.Genre), nullStr(in.Bio),
		nullStr(in.ImagePath), nullStr(in.ArtworkPath),
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, classify("creating music artist", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of a music artist. A rename
// propagates to the denormalized copies on albums and songs in the same
// transaction, so reads never observe a half-renamed library.
func (m *MusicArtists) Update(id string, in types.MusicArtist) (*types.MusicArtist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := m.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	tx, err := m.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating music artist", err)
	}
	defer tx.Rollback()

	var prevName, createdAt string
	if err := tx.QueryRowContext(ctx,
		"SELECT name, created_at FROM music_artists WHERE id = ?", id).
		Scan(&prevName, &createdAt); err != nil {
		return nil, classify("updating music artist", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE music_artists SET name = ?, genre = ?, bio = ?, image_path = ?,
         artwork_path = ?, updated_at = ? WHERE id = ?`,
		in.Name, nullStr(in.Genre), nullStr(in.Bio), nullStr(in.ImagePath),
		nullStr(in.ArtworkPath), formatTime(now), id)
	if err != nil {
		return nil, classify("updating music artist", err)
	}

	if in.Name != prevName {
		if _, err := tx.ExecContext(ctx,
			"UPDATE albums SET artist_name = ? WHERE artist_id = ?", in.Name, id); err != nil {
			return nil, classify("propagating artist rename to albums", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE songs SET artist = ? WHERE artist_id = ?", in.Name, id); err != nil {
			return nil, classify("propagating artist rename to songs", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing music artist update", err)
	}

	in.ID = id
	in.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	in.UpdatedAt = now
	return &in, nil
}

// Delete removes a music artist. Albums cascade away; songs keep their
// rows with artist_id cleared, their denormalized artist string intact.
// Deleting a nonexistent ID is not an error.
func (m *MusicArtists) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := m.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := m.s.opCtx()
	defer cancel()

	if _, err := m.s.db.ExecContext(ctx, "DELETE FROM music_artists WHERE id = ?", id); err != nil {
		return classify("deleting music artist", err)
	}
	return nil
}

func scanMusicArtist(row interface{ Scan(...any) error }) (*types.MusicArtist, error) {
	var (
		a                              types.MusicArtist
		genre, bio, imagePath, artPath sql.NullString
		createdAt, updatedAt           string
	)
	if err := row.Scan(&a.ID, &a.Name, &genre, &bio, &imagePath, &artPath,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Genre = strValue(genre)
	a.Bio = strValue(bio)
	a.ImagePath = strValue(imagePath)
	a.ArtworkPath = strValue(artPath)

	var err error
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
