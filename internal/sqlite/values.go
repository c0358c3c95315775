package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps persist as RFC3339 text with fixed-width nanosecond
// precision. The width matters: newest-first queries order these columns
// with SQL text comparison, so byte order must equal time order.
// RFC3339Nano would trim trailing fractional zeros and break that.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime accepts any RFC3339 fractional width, not just timeFormat's,
// so databases written before the fixed-width format still read back.
func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// nullStr maps the store-boundary convention "empty string means unset"
// onto SQL NULL, in one place instead of per call site.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt treats zero as unset for optional numeric columns (year, track).
func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func strValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func intValue(ni sql.NullInt64) int {
	if ni.Valid {
		return int(ni.Int64)
	}
	return 0
}

func timeValue(field string, ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(field, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
