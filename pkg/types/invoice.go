package types

import (
	"encoding/json"
	"time"
)

// Conventional invoice status values. Only InvoiceStatusPaid carries store
// semantics: the store stamps PaidDate when an update sets this status and
// clears it otherwise.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusVoid    = "void"
)

// Invoice represents a bill issued to an Artist, optionally tied to a
// Project. Items is an opaque serialized payload owned by the caller; the
// store persists and returns it byte-for-byte without parsing it.
type Invoice struct {
	ID            string     `json:"id"`
	ArtistID      string     `json:"artist_id"`
	ProjectID     string     `json:"project_id,omitempty"` // empty when not tied to a project
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	IssueDate     string     `json:"issue_date"` // YYYY-MM-DD
	DueDate       string     `json:"due_date"`   // YYYY-MM-DD
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	Items         string     `json:"items"`
	BillTo        string     `json:"bill_to,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LineItem is one entry of an invoice's Items payload. The encoding lives
// with the callers (CLI, PDF renderer); the store never interprets it.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// EncodeLineItems serializes line items to the Items payload format.
func EncodeLineItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeLineItems parses an Items payload. An empty payload decodes to an
// empty slice.
func DecodeLineItems(payload string) ([]LineItem, error) {
	if payload == "" {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, err
	}
	return items, nil
}
