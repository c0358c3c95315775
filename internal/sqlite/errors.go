package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/allmyfriends/backstage/pkg/types"
)

// classify maps storage-engine failures onto the shared error taxonomy,
// so callers can distinguish constraint violations, absent rows, and
// retryable busy conditions from plain I/O errors with errors.Is.
// I/O errors pass through wrapped but otherwise verbatim.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, types.ErrNotFound)
	}
	// A deadline hit while waiting on the pool is the bounded-wait signal.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, types.ErrBusy)
	}

	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w", op, types.ErrDuplicate)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
			return fmt.Errorf("%s: %w", op, types.ErrForeignKey)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%s: %w", op, types.ErrBusy)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
