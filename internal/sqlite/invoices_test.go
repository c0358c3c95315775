package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

func invoiceFixture(t *testing.T, s *Store) (*types.Artist, *types.Project) {
	t.Helper()
	artist, err := s.Artists().Create(types.Artist{Name: "Billing Artist"})
	require.NoError(t, err)
	project, err := s.Projects().Create(types.Project{ArtistID: artist.ID, Name: "Release"})
	require.NoError(t, err)
	return artist, project
}

func TestInvoices_CRUD(t *testing.T) {
	s := setupStore(t)
	artist, project := invoiceFixture(t, s)

	items, err := types.EncodeLineItems([]types.LineItem{
		{Description: "Mixing", Amount: 800},
		{Description: "Mastering", Amount: 400},
	})
	require.NoError(t, err)

	created, err := s.Invoices().Create(types.Invoice{
		ArtistID:      artist.ID,
		ProjectID:     project.ID,
		InvoiceNumber: "INV-2026-001",
		Amount:        1200,
		IssueDate:     "2026-05-01",
		DueDate:       "2026-06-01",
		Items:         items,
		BillTo:        "Label GmbH",
	})
	require.NoError(t, err)
	assert.Equal(t, types.InvoiceStatusPending, created.Status)
	assert.Nil(t, created.PaidDate)

	got, err := s.Invoices().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Label GmbH", got.BillTo)

	decoded, err := types.DecodeLineItems(got.Items)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "Mixing", decoded[0].Description)

	require.NoError(t, s.Invoices().Delete(created.ID))
	_, err = s.Invoices().Get(created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestInvoices_DuplicateNumber(t *testing.T) {
	s := setupStore(t)
	artist, _ := invoiceFixture(t, s)

	base := types.Invoice{
		ArtistID:      artist.ID,
		InvoiceNumber: "INV-7",
		IssueDate:     "2026-01-01",
		DueDate:       "2026-02-01",
	}
	_, err := s.Invoices().Create(base)
	require.NoError(t, err)

	_, err = s.Invoices().Create(base)
	assert.ErrorIs(t, err, types.ErrDuplicate)
}

func TestInvoices_PaidDateFollowsStatus(t *testing.T) {
	s := setupStore(t)
	artist, _ := invoiceFixture(t, s)

	inv, err := s.Invoices().Create(types.Invoice{
		ArtistID:      artist.ID,
		InvoiceNumber: "INV-8",
		Status:        types.InvoiceStatusPaid,
		IssueDate:     "2026-01-01",
		DueDate:       "2026-02-01",
	})
	require.NoError(t, err)
	require.NotNil(t, inv.PaidDate, "paid on create stamps paid_date")

	// Reverting to pending clears the stamp.
	inv.Status = types.InvoiceStatusPending
	updated, err := s.Invoices().Update(inv.ID, *inv)
	require.NoError(t, err)
	assert.Nil(t, updated.PaidDate)

	// Marking paid again stamps the mutation time.
	updated.Status = types.InvoiceStatusPaid
	paid, err := s.Invoices().Update(inv.ID, *updated)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)

	got, err := s.Invoices().Get(inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, paid.PaidDate.UTC(), got.PaidDate.UTC())
}

func TestInvoices_EmptyProjectIsNull(t *testing.T) {
	s := setupStore(t)
	artist, _ := invoiceFixture(t, s)

	inv, err := s.Invoices().Create(types.Invoice{
		ArtistID:      artist.ID,
		InvoiceNumber: "INV-9",
		IssueDate:     "2026-01-01",
		DueDate:       "2026-02-01",
	})
	require.NoError(t, err)
	assert.Empty(t, inv.ProjectID)

	// An empty string would violate the foreign key if it were stored
	// verbatim; a clean round trip shows it was normalized to NULL.
	got, err := s.Invoices().Get(inv.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProjectID)
}

func TestInvoices_ListFilters(t *testing.T) {
	s := setupStore(t)
	artist, project := invoiceFixture(t, s)

	for i, num := range []string{"A-1", "A-2", "A-3"} {
		in := types.Invoice{
			ArtistID:      artist.ID,
			InvoiceNumber: num,
			IssueDate:     "2026-01-01",
			DueDate:       "2026-02-01",
		}
		if i == 0 {
			in.ProjectID = project.ID
		}
		_, err := s.Invoices().Create(in)
		require.NoError(t, err)
	}

	all, err := s.Invoices().List()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byArtist, err := s.Invoices().ListByArtist(artist.ID)
	require.NoError(t, err)
	assert.Len(t, byArtist, 3)

	byProject, err := s.Invoices().ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, "A-1", byProject[0].InvoiceNumber)
}

// List sorts on created_at text, so same-second rows must still come back
// newest first even when the fractional parts differ in magnitude only.
func TestInvoices_ListOrdersWithinOneSecond(t *testing.T) {
	s := setupStore(t)
	artist, _ := invoiceFixture(t, s)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, row := range []struct {
		num string
		at  time.Time
	}{
		{"B-1", base.Add(100 * time.Millisecond)},
		{"B-2", base.Add(150 * time.Millisecond)},
	} {
		inv, err := s.Invoices().Create(types.Invoice{
			ArtistID:      artist.ID,
			InvoiceNumber: row.num,
			IssueDate:     "2026-03-01",
			DueDate:       "2026-04-01",
		})
		require.NoError(t, err)
		_, err = s.db.Exec(`UPDATE invoices SET created_at = ? WHERE id = ?`,
			formatTime(row.at), inv.ID)
		require.NoError(t, err)
	}

	all, err := s.Invoices().List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B-2", all[0].InvoiceNumber)
	assert.Equal(t, "B-1", all[1].InvoiceNumber)
}
