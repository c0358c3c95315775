package sqlite

import (
	"database/sql"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Invoices provides CRUD access to the invoices table.
//
// Two rules live here and nowhere else: paid_date is computed from the
// status on every mutation (never supplied by the caller), and the items
// payload is stored and returned byte-for-byte without being parsed.
type Invoices struct {
	s *Store
}

const invoiceColumns = "id, artist_id, project_id, invoice_number, amount, status, issue_date, due_date, paid_date, items, bill_to, notes, created_at, updated_at"

// List returns all invoices, newest first.
func (i *Invoices) List() ([]*types.Invoice, error) {
	return i.query("SELECT "+invoiceColumns+" FROM invoices ORDER BY created_at DESC", nil)
}

// ListByArtist returns the invoices billed to one artist, newest first.
func (i *Invoices) ListByArtist(artistID string) ([]*types.Invoice, error) {
	if artistID == "" {
		return nil, types.ErrInvalidID
	}
	return i.query(
		"SELECT "+invoiceColumns+" FROM invoices WHERE artist_id = ? ORDER BY created_at DESC",
		[]any{artistID})
}

// ListByProject returns the invoices tied to one project, newest first.
func (i *Invoices) ListByProject(projectID string) ([]*types.Invoice, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	return i.query(
		"SELECT "+invoiceColumns+" FROM invoices WHERE project_id = ? ORDER BY created_at DESC",
		[]any{projectID})
}

func (i *Invoices) query(q string, args []any) ([]*types.Invoice, error) {
	release, err := i.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := i.s.opCtx()
	defer cancel()

	rows, err := i.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("listing invoices", err)
	}
	defer rows.Close()

	invoices := []*types.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, classify("scanning invoice", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating invoices", err)
	}
	return invoices, nil
}

// Get retrieves one invoice by ID. Absence is reported as ErrNotFound.
func (i *Invoices) Get(id string) (*types.Invoice, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	release, err := i.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := i.s.opCtx()
	defer cancel()

	row := i.s.db.QueryRowContext(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id)
	invoice, err := scanInvoice(row)
	if err != nil {
		return nil, classify("getting invoice", err)
	}
	return invoice, nil
}

// Create inserts a new invoice. A duplicate invoice number fails with
// ErrDuplicate. An empty project ID is normalized to "no project" rather
// than stored as an empty string.
func (i *Invoices) Create(in types.Invoice) (*types.Invoice, error) {
	if in.InvoiceNumber == "" {
		return nil, types.ErrInvalidName
	}
	if in.ArtistID == "" {
		return nil, types.ErrInvalidID
	}
	release, err := i.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := i.s.opCtx()
	defer cancel()

	now := time.Now().UTC()
	in.ID = newID()
	if in.Status == "" {
		in.Status = types.InvoiceStatusPending
	}
	if in.Items == "" {
		in.Items = "[]"
	}
	in.PaidDate = paidDate(in.Status, now)
	in.CreatedAt = now
	in.UpdatedAt = now

	_, err = i.s.db.ExecContext(ctx,
		`INSERT INTO invoices (id, artist_id, project_id, invoice_number, amount, status,
         issue_date, due_date, paid_date, items, bill_to, notes, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.ArtistID, nullStr(in.ProjectID), in.InvoiceNumber, in.Amount, in.Status,
		in.IssueDate, in.DueDate, nullTime(in.PaidDate), in.Items,
		nullStr(in.BillTo), nullStr(in.Notes), formatTime(now), formatTime(now))
	if err != nil {
		return nil, classify("creating invoice", err)
	}
	return &in, nil
}

// Update replaces the mutable fields of an invoice. The owning artist,
// project reference, and created_at are re-read from storage. paid_date
// is recomputed from the new status: "paid" stamps the update time, any
// other status clears it, including on a previously paid invoice.
func (i *Invoices) Update(id string, in types.Invoice) (*types.Invoice, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if in.InvoiceNumber == "" {
		return nil, types.ErrInvalidName
	}
	release, err := i.s.checkOpen()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := i.s.opCtx()
	defer cancel()

	tx, err := i.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("updating invoice", err)
	}
	defer tx.Rollback()

	var (
		artistID, createdAt string
		projectID           sql.NullString
	)
	if err := tx.QueryRowContext(ctx,
		"SELECT artist_id, project_id, created_at FROM invoices WHERE id = ?", id).
		Scan(&artistID, &projectID, &createdAt); err != nil {
		return nil, classify("updating invoice", err)
	}

	now := time.Now().UTC()
	if in.Status == "" {
		in.Status = types.InvoiceStatusPending
	}
	if in.Items == "" {
		in.Items = "[]"
	}
	in.PaidDate = paidDate(in.Status, now)

	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET invoice_number = ?, amount = ?, status = ?, issue_date = ?,
         due_date = ?, paid_date = ?, items = ?, bill_to = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		in.InvoiceNumber, in.Amount, in.Status, in.IssueDate, in.DueDate,
		nullTime(in.PaidDate), in.Items, nullStr(in.BillTo), nullStr(in.Notes),
		formatTime(now), id)
	if err != nil {
		return nil, classify("updating invoice", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("committing invoice update", err)
	}

	in.ID = id
	in.ArtistID = artistID
	in.ProjectID = strValue(projectID)
	in.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}
	in.UpdatedAt = now
	return &in, nil
}

// Delete removes an invoice. Deleting a nonexistent ID is not an error.
func (i *Invoices) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	release, err := i.s.checkOpen()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := i.s.opCtx()
	defer cancel()

	if _, err := i.s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id); err != nil {
		return classify("deleting invoice", err)
	}
	return nil
}

// paidDate implements the status rule: paid invoices carry the mutation
// time, everything else carries NULL.
func paidDate(status string, now time.Time) *time.Time {
	if status == types.InvoiceStatusPaid {
		return &now
	}
	return nil
}

func scanInvoice(row interface{ Scan(...any) error }) (*types.Invoice, error) {
	var (
		inv                            types.Invoice
		projectID, paid, billTo, notes sql.NullString
		createdAt, updatedAt           string
	)
	if err := row.Scan(&inv.ID, &inv.ArtistID, &projectID, &inv.InvoiceNumber,
		&inv.Amount, &inv.Status, &inv.IssueDate, &inv.DueDate, &paid,
		&inv.Items, &billTo, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	inv.ProjectID = strValue(projectID)
	inv.BillTo = strValue(billTo)
	inv.Notes = strValue(notes)

	var err error
	if inv.PaidDate, err = timeValue("paid_date", paid); err != nil {
		return nil, err
	}
	if inv.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if inv.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
