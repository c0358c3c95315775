// Package pdf renders invoices as single-page A4 documents. Layout is
// computed first as plain data, then drawn; the split keeps the content
// testable without parsing PDF output.
package pdf

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/allmyfriends/backstage/pkg/types"
)

// Options carries the letterhead printed on every invoice.
type Options struct {
	// Brand lines, largest first. The first line is set in display size.
	Brand []string
	// Address lines printed under the brand block.
	Address []string
}

// DefaultOptions is the company letterhead.
var DefaultOptions = Options{
	Brand:   []string{"AMF", "ALL MY", "FRIENDS"},
	Address: []string{"702 ECHO PARK AVENUE", "LOS ANGELES, CA 90026"},
}

// Row is one line-item row of the invoice table. Descriptions may span
// multiple lines; the first line is the item, the rest are detail.
type Row struct {
	Lines  []string
	Amount string
}

// Layout is the fully resolved content of one invoice page.
type Layout struct {
	Brand     []string
	Address   []string
	Number    string
	IssueDate string
	BillTo    []string
	Rows      []Row
	DueLabel  string
	Total     string
	WireLines []string
}

// BuildLayout resolves an invoice and its artist into printable content.
// The wire footer comes from the artist's stored wire details and is
// omitted when the artist has none.
func BuildLayout(inv types.Invoice, artist types.Artist, opts Options) (*Layout, error) {
	items, err := types.DecodeLineItems(inv.Items)
	if err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}

	l := &Layout{
		Brand:     opts.Brand,
		Address:   opts.Address,
		Number:    "INV #" + inv.InvoiceNumber,
		IssueDate: formatDate(inv.IssueDate),
		DueLabel:  dueLabel(inv.IssueDate, inv.DueDate),
		Total:     formatAmount(inv.Amount),
	}
	if inv.BillTo != "" {
		l.BillTo = strings.Split(inv.BillTo, "\n")
	}
	for _, item := range items {
		l.Rows = append(l.Rows, Row{
			Lines:  strings.Split(item.Description, "\n"),
			Amount: formatAmount(item.Amount),
		})
	}
	if artist.WireDetails != "" {
		l.WireLines = strings.Split(artist.WireDetails, "\n")
	}
	return l, nil
}

// Text renders the layout as plain lines, one visual element per line, in
// reading order. Used for snapshot comparison.
func (l *Layout) Text() string {
	var b strings.Builder
	for _, s := range l.Brand {
		b.WriteString(s + "\n")
	}
	b.WriteString("INVOICE\n")
	for _, s := range l.Address {
		b.WriteString(s + "\n")
	}
	b.WriteString(l.Number + "\n")
	b.WriteString(l.IssueDate + "\n")
	for _, s := range l.BillTo {
		b.WriteString("BILL TO: " + s + "\n")
	}
	b.WriteString("ITEM | COST\n")
	for _, r := range l.Rows {
		b.WriteString(strings.Join(r.Lines, " / ") + " | " + r.Amount + "\n")
	}
	b.WriteString("Due | " + l.DueLabel + "\n")
	b.WriteString("Total | " + l.Total + "\n")
	if len(l.WireLines) > 0 {
		b.WriteString("WIRE DETAILS\n")
		for _, s := range l.WireLines {
			b.WriteString(s + "\n")
		}
	}
	return b.String()
}

// Render lays out the invoice and writes the PDF to w.
func Render(w io.Writer, inv types.Invoice, artist types.Artist, opts Options) error {
	l, err := BuildLayout(inv, artist, opts)
	if err != nil {
		return err
	}
	return draw(w, l)
}

// RenderFile renders the invoice into the file at path.
func RenderFile(path string, inv types.Invoice, artist types.Artist, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, inv, artist, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// dueLabel turns the issue/due date pair into payment terms. Identical or
// unparsable dates read as immediate payment; a 30-day spread uses the
// customary name.
func dueLabel(issueDate, dueDate string) string {
	days := daysBetween(issueDate, dueDate)
	switch days {
	case 0:
		return "Upon Receipt"
	case 30:
		return "Net 30"
	default:
		return fmt.Sprintf("Net %d", days)
	}
}

// daysBetween returns the whole days from start to end, or zero when
// either date fails to parse.
func daysBetween(start, end string) int {
	s, errS := time.Parse("2006-01-02", start)
	e, errE := time.Parse("2006-01-02", end)
	if errS != nil || errE != nil {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// formatDate renders a YYYY-MM-DD date as "02 January 2006". Unparsable
// input passes through unchanged.
func formatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02 January 2006")
}

// formatAmount renders a dollar amount with a thousands separator.
func formatAmount(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}
