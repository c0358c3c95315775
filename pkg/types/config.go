// Package types defines the entity structs, store configuration, and
// sentinel errors shared by the Backstage storage layer and its callers.
package types

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// Config holds backend selection and parameters for Store.Open.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxConns bounds the connection pool. Zero selects DefaultMaxConns.
	MaxConns int `json:"max_conns" yaml:"max_conns"`

	// MinIdleConns keeps a warm set of connections so the first statement
	// after an idle period does not pay cold-start latency.
	// Zero selects DefaultMinIdleConns.
	MinIdleConns int `json:"min_idle_conns" yaml:"min_idle_conns"`

	// AcquireTimeout bounds how long an operation waits for a pooled
	// connection before failing with ErrBusy.
	// Zero selects DefaultAcquireTimeout.
	AcquireTimeout time.Duration `json:"acquire_timeout" yaml:"acquire_timeout"`

	// Logger receives store-level events (open, migrations, close).
	// Nil disables logging.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Pool defaults, applied when the corresponding Config field is zero.
const (
	DefaultMaxConns       = 8
	DefaultMinIdleConns   = 2
	DefaultAcquireTimeout = 5 * time.Second
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
	ErrPoolInvalid    = errors.New("pool sizes must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.MaxConns < 0 || c.MinIdleConns < 0 || c.AcquireTimeout < 0 {
		return ErrPoolInvalid
	}
	return nil
}

// GetMaxConns returns the effective pool upper bound.
func (c Config) GetMaxConns() int {
	if c.MaxConns > 0 {
		return c.MaxConns
	}
	return DefaultMaxConns
}

// GetMinIdleConns returns the effective warm-connection floor, capped at
// the pool upper bound.
func (c Config) GetMinIdleConns() int {
	n := c.MinIdleConns
	if n <= 0 {
		n = DefaultMinIdleConns
	}
	if max := c.GetMaxConns(); n > max {
		n = max
	}
	return n
}

// GetAcquireTimeout returns the effective connection acquisition timeout.
func (c Config) GetAcquireTimeout() time.Duration {
	if c.AcquireTimeout > 0 {
		return c.AcquireTimeout
	}
	return DefaultAcquireTimeout
}

// Log returns the configured logger, or a disabled one when unset, so the
// store never nil-checks before logging.
func (c Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
