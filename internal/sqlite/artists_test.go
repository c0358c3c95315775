package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allmyfriends/backstage/pkg/types"
)

func TestArtists_CRUD(t *testing.T) {
	s := setupStore(t)

	created, err := s.Artists().Create(types.Artist{
		Name:        "Nova Reyes",
		Company:     "Nova Reyes LLC",
		Email:       "nova@example.com",
		WireDetails: "IBAN DE00 1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt,
		"fresh rows carry identical timestamps")

	got, err := s.Artists().Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nova Reyes", got.Name)
	assert.Equal(t, "IBAN DE00 1234", got.WireDetails)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	got.Email = "booking@example.com"
	updated, err := s.Artists().Update(created.ID, *got)
	require.NoError(t, err)
	assert.Equal(t, "booking@example.com", updated.Email)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "created_at is immutable")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at advances")

	require.NoError(t, s.Artists().Delete(created.ID))
	_, err = s.Artists().Get(created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestArtists_Validation(t *testing.T) {
	s := setupStore(t)

	_, err := s.Artists().Create(types.Artist{})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = s.Artists().Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = s.Artists().Update("no-such-id", types.Artist{Name: "Ghost"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestArtists_ListOrdersByName(t *testing.T) {
	s := setupStore(t)

	for _, name := range []string{"Zoe", "Ada", "Mila"} {
		_, err := s.Artists().Create(types.Artist{Name: name})
		require.NoError(t, err)
	}

	artists, err := s.Artists().List()
	require.NoError(t, err)
	require.Len(t, artists, 3)
	assert.Equal(t, "Ada", artists[0].Name)
	assert.Equal(t, "Mila", artists[1].Name)
	assert.Equal(t, "Zoe", artists[2].Name)
}

func TestArtists_ListEmptyStore(t *testing.T) {
	s := setupStore(t)

	artists, err := s.Artists().List()
	require.NoError(t, err)
	assert.NotNil(t, artists)
	assert.Empty(t, artists)
}

func TestArtists_DeleteIsIdempotent(t *testing.T) {
	s := setupStore(t)

	assert.NoError(t, s.Artists().Delete("never-existed"))
}

func TestArtists_DeleteCascades(t *testing.T) {
	s := setupStore(t)

	artist, err := s.Artists().Create(types.Artist{Name: "Cass"})
	require.NoError(t, err)
	project, err := s.Projects().Create(types.Project{
		ArtistID: artist.ID,
		Name:     "Debut EP",
	})
	require.NoError(t, err)
	invoice, err := s.Invoices().Create(types.Invoice{
		ArtistID:      artist.ID,
		ProjectID:     project.ID,
		InvoiceNumber: "INV-001",
		Amount:        1200,
		IssueDate:     "2026-01-10",
		DueDate:       "2026-02-10",
	})
	require.NoError(t, err)

	require.NoError(t, s.Artists().Delete(artist.ID))

	_, err = s.Projects().Get(project.ID)
	assert.ErrorIs(t, err, types.ErrNotFound, "projects cascade with the artist")
	_, err = s.Invoices().Get(invoice.ID)
	assert.ErrorIs(t, err, types.ErrNotFound, "invoices cascade with the artist")
}
