package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Walks the main business flow end to end: sign an artist, open a
// project for them, bill it, collect, and wind everything down.
func TestScenario_ArtistProjectInvoiceLifecycle(t *testing.T) {
	s := setupStore(t)

	artist, err := s.Artists().Create(types.Artist{
		Name:        "Iris Kane",
		Company:     "Kane Music Ltd",
		WireDetails: "IBAN GB00 0000",
	})
	require.NoError(t, err)

	project, err := s.Projects().Create(types.Project{
		ArtistID:  artist.ID,
		Name:      "Festival Season",
		Budget:    40000,
		StartDate: "2026-06-01",
	})
	require.NoError(t, err)
	require.Equal(t, types.ProjectStatusActive, project.Status)

	items, err := types.EncodeLineItems([]types.LineItem{
		{Description: "Stage production", Amount: 15000},
		{Description: "Travel", Amount: 2500},
	})
	require.NoError(t, err)

	invoice, err := s.Invoices().Create(types.Invoice{
		ArtistID:      artist.ID,
		ProjectID:     project.ID,
		InvoiceNumber: "INV-2026-042",
		Amount:        17500,
		IssueDate:     "2026-06-15",
		DueDate:       "2026-07-15",
		Items:         items,
		BillTo:        "Festival GmbH",
	})
	require.NoError(t, err)
	require.Nil(t, invoice.PaidDate)

	// Payment arrives.
	invoice.Status = types.InvoiceStatusPaid
	paid, err := s.Invoices().Update(invoice.ID, *invoice)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)

	// Project wraps up.
	project.Status = types.ProjectStatusCompleted
	project.EndDate = "2026-09-01"
	_, err = s.Projects().Update(project.ID, *project)
	require.NoError(t, err)

	// The artist's ledger shows the one settled invoice.
	ledger, err := s.Invoices().ListByArtist(artist.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, types.InvoiceStatusPaid, ledger[0].Status)

	// Offboarding the artist clears their whole trail.
	require.NoError(t, s.Artists().Delete(artist.ID))
	_, err = s.Projects().Get(project.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Invoices().Get(invoice.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
