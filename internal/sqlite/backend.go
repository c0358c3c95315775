// Package sqlite implements the embedded SQLite store for Backstage.
// The store owns the on-disk schema, applies additive migrations at open,
// and exposes per-entity accessors with parameterized CRUD operations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/allmyfriends/backstage/pkg/types"
)

// dbFileName is the single storage file, created under Config.DataDir.
const dbFileName = "backstage.db"

// Store is the embedded relational store. It is safe for concurrent use:
// the mutex guards lifecycle state only (open flag, handle swap), not
// statement execution; concurrent statements are serialized by the engine's
// native locking and bounded by the connection pool.
type Store struct {
	mu   sync.RWMutex
	open bool
	cfg  types.Config
	db   *sql.DB

	acquireTimeout time.Duration

	artists      *Artists
	projects     *Projects
	invoices     *Invoices
	musicArtists *MusicArtists
	albums       *Albums
	songs        *Songs
	playlists    *Playlists
}

// NewStore creates a new store instance. The store is not open;
// call Open with a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Open initializes the store with the given configuration. It creates the
// data directory and database file if absent, applies pending schema
// migrations, and tunes the connection pool. Returns ErrAlreadyOpen if
// called while already open.
func (s *Store) Open(cfg types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// Bounded pool with a warm floor. MaxIdleConns doubles as the warm
	// minimum: idle connections up to that count are kept alive instead of
	// being closed after use.
	db.SetMaxOpenConns(cfg.GetMaxConns())
	db.SetMaxIdleConns(cfg.GetMinIdleConns())
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := migrate(db, cfg.Log()); err != nil {
		db.Close()
		return fmt.Errorf("migrate schema: %w", err)
	}

	s.db = db
	s.cfg = cfg
	s.acquireTimeout = cfg.GetAcquireTimeout()
	s.open = true

	s.artists = &Artists{s: s}
	s.projects = &Projects{s: s}
	s.invoices = &Invoices{s: s}
	s.musicArtists = &MusicArtists{s: s}
	s.albums = &Albums{s: s}
	s.songs = &Songs{s: s}
	s.playlists = &Playlists{s: s}

	cfg.Log().Info("store opened", "path", dbPath, "max_conns", cfg.GetMaxConns())
	return nil
}

// Close releases the database handle. After Close, all operations return
// ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil // idempotent
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	s.db = nil
	s.open = false
	return nil
}

// Accessors. Each returns the per-entity CRUD surface; the accessor itself
// checks the open flag on every operation, so a handle obtained before
// Close fails cleanly afterwards.

func (s *Store) Artists() *Artists           { return s.artists }
func (s *Store) Projects() *Projects         { return s.projects }
func (s *Store) Invoices() *Invoices         { return s.invoices }
func (s *Store) MusicArtists() *MusicArtists { return s.musicArtists }
func (s *Store) Albums() *Albums             { return s.albums }
func (s *Store) Songs() *Songs               { return s.songs }
func (s *Store) Playlists() *Playlists       { return s.playlists }

// dsn builds the connection string. Pragmas apply to every pooled
// connection: foreign-key enforcement is on, writers wait briefly for the
// file lock, and WAL keeps readers from blocking the single writer.
func dsn(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(3000)" +
		"&_pragma=journal_mode(WAL)"
}

// opCtx bounds a single store operation. The deadline covers pooled
// connection acquisition: when the pool is exhausted the operation fails
// fast with a retryable ErrBusy instead of blocking indefinitely.
func (s *Store) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.acquireTimeout)
}

// checkOpen acquires the lifecycle read lock and reports whether the store
// is usable. The returned release func must be called when the operation
// finishes.
func (s *Store) checkOpen() (release func(), err error) {
	s.mu.RLock()
	if !s.open {
		s.mu.RUnlock()
		return nil, types.ErrStoreClosed
	}
	return s.mu.RUnlock, nil
}

// newID generates a UUID v7 for entity IDs, falling back to v4 if v7
// generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
