package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Operation errors. Every store failure wraps exactly one of these (or is a
// storage-layer I/O error passed through verbatim), so callers can pick the
// failure class with errors.Is and surface a specific message.
var (
	// ErrNotFound reports that no row exists for the requested ID.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate reports a uniqueness violation, such as an invoice
	// number, music artist name, or song path that already exists.
	ErrDuplicate = errors.New("already exists")

	// ErrForeignKey reports a referential-integrity violation, such as
	// adding a playlist member whose song does not exist.
	ErrForeignKey = errors.New("referenced entity does not exist")

	// ErrBusy reports that a pooled connection could not be acquired
	// within the configured timeout, or that the database file is locked.
	// The operation is safe to retry.
	ErrBusy = errors.New("store is busy")

	// ErrInvalidID reports an empty or malformed entity ID argument.
	ErrInvalidID = errors.New("invalid entity ID")

	// ErrInvalidName reports an empty required name field.
	ErrInvalidName = errors.New("invalid name")
)
