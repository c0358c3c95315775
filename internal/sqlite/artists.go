package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Artists provides CRUD access to the business artists table.
type Artists struct {
	s *Store
}

const artistColumns = "id, name, company, email, phone, address, wire_details, notes, created_at, updated_at"

// List returns all artists ordered by name.
func (a *Artists) List() ([]*types.Artist, error) {
	release, err := a.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := a.s.opCtx()
	defer cancel()

	rows, err := a.s.db.QueryContext(ctx,
		"SELECT "+artistColumns+" FROM artists ORDER BY name")
	if err != nil {
		return nil, classify("listing artists", err)
	}
	defer rows.Close()

	artists := []*types.Artist{}
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, classify("scanning artist", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating artists", err)
	}
	return artists, nil
}

// Get retrieves one artist by ID. Absence is reported as ErrNotFound.
func (a *Artists) Get(id string) (*types.Artist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := a.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := a.s.opCtx()
	defer cancel()

	row := a.s.db.QueryRowContext(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE id = ?", id)
	artist, err := scanArtist(row)
	if err != nil {
		return nil, classify("getting artist", err)
	}
	return artist, nil
}

// Create inserts a new artist. The ID and both timestamps are generated
// here; both timestamps are stamped identically. Returns the materialized
// entity.
func (a *Artists) Create(in types.Artist) (*types.Artist, error) {
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := a.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := a.s.opCtx()
	defer cancel()

	now := time.Now().UTC()
	in.ID = newID()
	in.CreatedAt = now
	in.UpdatedAt = now

	_, err = a.s.db.ExecContext(ctx,
		`INSERT INTO artists (id, name, company, email, phone, address, wire_details, notes, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, nullStr(in.Company), nullStr(in.Email), nullStr(in.Phone),
		nullStr(in.Address), nullStr(in.WireDetails), nullStr(in.Notes),
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, classify("creating artist", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of an artist. created_at is re-read
// from storage rather than trusted from the caller; updated_at is
// refreshed. Returns ErrNotFound if the row does not exist.
func (a *Artists) Update(id string, in types.Artist) (*types.Artist, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	release, err := a.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := a.s.opCtx()
	defer cancel()

	tx, err := a.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating artist", err)
	}
	defer tx.Rollback()

	var createdAt string
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM artists WHERE id = ?", id).Scan(&createdAt); err != nil {
		return nil, classify("updating artist", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE artists SET name = ?, company = ?, email = ?, phone = ?, address = ?,
         wire_details = ?, notes = ?, updated_at = ? WHERE id = ?`,
		in.Name, nullStr(in.Company), nullStr(in.Email), nullStr(in.Phone),
		nullStr(in.Address), nullStr(in.WireDetails), nullStr(in.Notes),
		formatTime(now), id)
	if err != nil {
		return nil, classify("updating artist", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing artist update", err)
	}

	in.ID = id
	in.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	in.UpdatedAt = now
	return &in, nil
}

// Delete removes an artist. Dependent projects and invoices go with it via
// the declared ON DELETE CASCADE actions, all in one implicit transaction.
// Deleting a nonexistent ID is not an error.
func (a *Artists) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := a.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := a.s.opCtx()
	defer cancel()

	if _, err := a.s.db.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", id); err != nil {
		return classify("deleting artist", err)
	}
	return nil
}

// scanArtist hydrates one row into a *types.Artist. Works for both
// sql.Row and sql.Rows.
func scanArtist(row interface{ Scan(...any) error }) (*types.Artist, error) {
	var (
		a                                           types.Artist
		company, email, phone, address, wire, notes sql.NullString
		createdAt, updatedAt                        string
	)
	if err := row.Scan(&a.ID, &a.Name, &company, &email, &phone, &address,
		&wire, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Company = strValue(company)
	a.Email = strValue(email)
	a.Phone = strValue(phone)
	a.Address = strValue(address)
	a.WireDetails = strValue(wire)
	a.Notes = strValue(notes)

	var err error
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
