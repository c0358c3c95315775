package types

import "time"

// Conventional project status values. The status column is free-form; these
// are the values the CLI offers, not an enforced enumeration.
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)

// Project represents a body of work owned by an Artist. Deleting the owning
// artist deletes its projects; deleting a project leaves invoices in place
// with their project reference cleared.
type Project struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artist_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date,omitempty"` // YYYY-MM-DD, empty when unset
	EndDate     string    `json:"end_date,omitempty"`   // YYYY-MM-DD, empty when unset
	Budget      float64   `json:"budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
