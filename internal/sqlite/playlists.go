package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Playlists provides CRUD access to playlists and their ordered song
// membership. Membership lives in playlist_songs, keyed by the pair and
// ordered by a dense position column; SongIDs on the returned playlist
// is always derived from that table, never stored directly.
type Playlists struct {
	s *Store
}

const playlistColumns = "id, name, description, color, artwork_path, artist_id, created_at"

// List returns all playlists, newest first, with membership hydrated.
func (p *Playlists) List() ([]*types.Playlist, error) {
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	rows, err := p.s.db.QueryContext(ctx,
		"SELECT "+playlistColumns+" FROM playlists ORDER BY created_at DESC")
	if err != nil {
		return nil, classify("listing playlists", err)
	}
	defer rows.Close()

	lists := []*types.Playlist{}
	for rows.Next() {
		pl, err := scanPlaylist(rows)
		if err != nil {
			return nil, classify("scanning playlist", err)
		}
		lists = append(lists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating playlists", err)
	}

	for _, pl := range lists {
		if pl.SongIDs, err = p.songIDs(ctx, pl.ID); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// Get retrieves one playlist by ID, including its song IDs in playlist
// order. Absence is reported as ErrNotFound.
func (p *Playlists) Get(id string) (*types.Playlist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	row := p.s.db.QueryRowContext(ctx,
		"SELECT "+playlistColumns+" FROM playlists WHERE id = ?", id)
	pl, err := scanPlaylist(row)
	if err != nil {
		return nil, classify("getting playlist", err)
	}
	if pl.SongIDs, err = p.songIDs(ctx, id); err != nil {
		return nil, err
	}
	return pl, nil
}

// Create inserts a new empty playlist. Any SongIDs on the input are
// ignored; membership is managed through AddSong.
func (p *Playlists) Create(in types.Playlist) (*types.Playlist, error) {
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	in.ID = newID()
	in.CreatedAt = time.Now().UTC()
	in.SongIDs = []string{}

	_, err = p.s.db.ExecContext(ctx,
		`INSERT INTO playlists (id, name, description, color, artwork_path, artist_id, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, nullStr(in.Description), nullStr(in.Color),
		nullStr(in.ArtworkPath), nullStr(in.ArtistID), formatTime(in.CreatedAt))
	if err != nil {
		return nil, classify("creating playlist", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of a playlist. Membership and the
// creation timestamp are untouched.
func (p *Playlists) Update(id string, in types.Playlist) (*types.Playlist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	tx, err := p.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating playlist", err)
	}
	defer tx.Rollback()

	var createdAt string
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM playlists WHERE id = ?", id).Scan(&createdAt); err != nil {
		return nil, classify("updating playlist", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE playlists SET name = ?, description = ?, color = ?, artwork_path = ?, artist_id = ?
         WHERE id = ?`,
		in.Name, nullStr(in.Description), nullStr(in.Color),
		nullStr(in.ArtworkPath), nullStr(in.ArtistID), id)
	if err != nil {
		return nil, classify("updating playlist", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing playlist update", err)
	}

	in.ID = id
	if in.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if in.SongIDs, err = p.songIDs(ctx, id); err != nil {
		return nil, err
	}
	return &in, nil
}

// Delete removes a playlist and, through the cascade, its membership
// rows. Songs themselves are untouched. Idempotent.
func (p *Playlists) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	if _, err := p.s.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id); err != nil {
		return classify("deleting playlist", err)
	}
	return nil
}

// AddSong appends a song to the end of a playlist. Adding a song that is
// already a member leaves the playlist unchanged. An unknown playlist or
// song ID fails the foreign key check and is reported as ErrForeignKey.
func (p *Playlists) AddSong(playlistID, songID string) error {
	if playlistID == "" || songID == "" {
		return types.ErrInvalidID
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	// Single statement so the next position is picked and claimed
	// atomically. OR IGNORE swallows the duplicate-pair conflict only;
	// foreign key violations still surface.
	_, err = p.s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO playlist_songs (playlist_id, song_id, position)
         SELECT ?, ?, COALESCE(MAX(position), -1) + 1
         FROM playlist_songs WHERE playlist_id = ?`,
		playlistID, songID, playlistID)
	if err != nil {
		return classify("adding playlist song", err)
	}
	return nil
}

// RemoveSong drops a song from a playlist. Removing a song that is not a
// member is not an error. Positions of the remaining songs keep their
// relative order.
func (p *Playlists) RemoveSong(playlistID, songID string) error {
	if playlistID == "" || songID == "" {
		return types.ErrInvalidID
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	_, err = p.s.db.ExecContext(ctx,
		"DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?",
		playlistID, songID)
	if err != nil {
		return classify("removing playlist song", err)
	}
	return nil
}

func (p *Playlists) songIDs(ctx context.Context, playlistID string) ([]string, error) {
	rows, err := p.s.db.QueryContext(ctx,
		"SELECT song_id FROM playlist_songs WHERE playlist_id = ? ORDER BY position",
		playlistID)
	if err != nil {
		return nil, classify("listing playlist songs", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify("scanning playlist song", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating playlist songs", err)
	}
	return ids, nil
}

func scanPlaylist(row interface{ Scan(...any) error }) (*types.Playlist, error) {
	var (
		pl                    types.Playlist
		description, color    sql.NullString
		artworkPath, artistID sql.NullString
		createdAt             string
	)
	if err := row.Scan(&pl.ID, &pl.Name, &description, &color,
		&artworkPath, &artistID, &createdAt); err != nil {
		return nil, err
	}
	pl.Description = strValue(description)
	pl.Color = strValue(color)
	pl.ArtworkPath = strValue(artworkPath)
	pl.ArtistID = strValue(artistID)

	var err error
	if pl.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &pl, nil
}
