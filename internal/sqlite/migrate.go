package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// A migration is one idempotent, additive schema step. Steps only add
// tables or columns, never drop or rename, so applying them to a database
// that already has the result is harmless.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

// migrations lists every schema step in the fixed order they are applied.
// The applied version is recorded in schema_migrations so skipped or
// reordered steps are detectable across releases.
var migrations = []migration{
	{1, "baseline schema", func(tx *sql.Tx) error {
		for _, ddl := range baselineDDL {
			if _, err := tx.Exec(ddl); err != nil {
				return err
			}
		}
		return nil
	}},
	{2, "artist payment fields", func(tx *sql.Tx) error {
		if err := ensureColumn(tx, "artists", "company", "TEXT"); err != nil {
			return err
		}
		return ensureColumn(tx, "artists", "wire_details", "TEXT")
	}},
	{3, "invoice bill-to block", func(tx *sql.Tx) error {
		return ensureColumn(tx, "invoices", "bill_to", "TEXT")
	}},
	{4, "song play tracking", func(tx *sql.Tx) error {
		if err := ensureColumn(tx, "songs", "play_count", "INTEGER"); err != nil {
			return err
		}
		return ensureColumn(tx, "songs", "last_played", "TEXT")
	}},
	{5, "playlist owner", func(tx *sql.Tx) error {
		return ensureColumn(tx, "playlists", "artist_id", "TEXT")
	}},
}

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TEXT NOT NULL
);`

// migrate brings the database up to the current schema version. Each
// pending step runs in its own transaction together with its version
// record, so a failed step leaves no partial schema change behind.
// Runs before the handle is exposed to any caller.
func migrate(db *sql.DB, log *slog.Logger) error {
	if _, err := db.Exec(createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if int64(m.version) <= current.Int64 {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
		appliedAt := formatTime(time.Now())
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.version, m.name, appliedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
		log.Info("migration applied", "version", m.version, "name", m.name)
	}

	// Indexes are IF NOT EXISTS and cheap to re-issue on every open.
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// ensureColumn adds a column if the live table does not have it yet.
// The declaration must be nullable with no default, so existing rows are
// untouched and re-running the step is a no-op.
func ensureColumn(tx *sql.Tx, table, column, decl string) error {
	exists, err := columnExists(tx, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	if err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// columnExists inspects the live column set via PRAGMA table_info.
// Table names come from compile-time constants, never caller input.
func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scan table_info %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
