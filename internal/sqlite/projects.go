package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Projects provides CRUD access to the projects table.
type Projects struct {
	s *Store
}

const projectColumns = "id, artist_id, name, description, status, start_date, end_date, budget, created_at, updated_at"

// List returns all projects, newest first.
func (p *Projects) List() ([]*types.Project, error) {
	return p.query("SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC", nil)
}

// ListByArtist returns the projects owned by one artist, newest first.
// An artist with no projects yields an empty slice, not an error.
func (p *Projects) ListByArtist(artistID string) ([]*types.Project, error) {
	if artistID == "" {
		return nil, types.ErrInvalidID
	}
	return p.query(
		"SELECT "+projectColumns+" FROM projects WHERE artist_id = ? ORDER BY created_at DESC",
		[]any{artistID})
}

func (p *Projects) query(q string, args []any) ([]*types.Project, error) {
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	rows, err := p.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("listing projects", err)
	}
	defer rows.Close()

	projects := []*types.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, classify("scanning project", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating projects", err)
	}
	return projects, nil
}

// Get retrieves one project by ID. Absence is reported as ErrNotFound.
func (p *Projects) Get(id string) (*types.Project, error) {
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
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err != nil {
		return nil, classify("getting project", err)
	}
	return project, nil
}

// Create inserts a new project owned by an existing artist. A missing
// owner is a referential violation, not a silent dangling reference.
func (p *Projects) Create(in types.Project) (*types.Project, error) {
	if in.Name == "" {
		return nil, types.ErrInvalidName
	}
	if in.ArtistID == "" {
		return nil, types.ErrInvalidID
	}
	release, err := p.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := p.s.opCtx()
	defer cancel()

	now := time.Now().UTC()
	in.ID = newID()
	if in.Status == "" {
		in.Status = types.ProjectStatusActive
	}
	in.CreatedAt = now
	in.UpdatedAt = now

	_, err = p.s.db.ExecContext(ctx,
		`INSERT INTO projects (id, artist_id, name, description, status, start_date, end_date, budget, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.ArtistID, in.Name, nullStr(in.Description), in.Status,
		nullStr(in.StartDate), nullStr(in.EndDate), in.Budget,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, classify("creating project", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of a project. The owning artist and
// created_at are immutable: both are re-read from storage and any values
// supplied by the caller are ignored.
func (p *Projects) Update(id string, in types.Project) (*types.Project, error) {
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
		return nil, classify("updating project", err)
	}
	defer tx.Rollback()

	var artistID, createdAt string
	if err := tx.QueryRowContext(ctx,
		"SELECT artist_id, created_at FROM projects WHERE id = ?", id).
		Scan(&artistID, &createdAt); err != nil {
		return nil, classify("updating project", err)
	}

	now := time.Now().UTC()
	if in.Status == "" {
		in.Status = types.ProjectStatusActive
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, status = ?, start_date = ?,
         end_date = ?, budget = ?, updated_at = ? WHERE id = ?`,
		in.Name, nullStr(in.Description), in.Status, nullStr(in.StartDate),
		nullStr(in.EndDate), in.Budget, formatTime(now), id)
	if err != nil {
		return nil, classify("updating project", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing project update", err)
	}

	in.ID = id
	in.ArtistID = artistID
	in.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	in.UpdatedAt = now
	return &in, nil
}

// Delete removes a project. Invoices referencing it keep their rows with
// project_id cleared by the declared ON DELETE SET NULL action, never
// cascaded. Deleting a nonexistent ID is not an error.
func (p *Projects) Delete(id string) error {
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

	if _, err := p.s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return classify("deleting project", err)
	}
	return nil
}

func scanProject(row interface{ Scan(...any) error }) (*types.Project, error) {
	var (
		p                       types.Project
		description, start, end sql.NullString
		createdAt, updatedAt    string
	)
	if err := row.Scan(&p.ID, &p.ArtistID, &p.Name, &description, &p.Status,
		&start, &end, &p.Budget, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Description = strValue(description)
	p.StartDate = strValue(start)
	p.EndDate = strValue(end)

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
