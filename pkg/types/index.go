package types

import "errors"

// Index defines the interface for backend-agnostic access to the implementor
// index. Callers attach to a backend, register crate tables, query them, and
// detach when done. Register is the sink operation the registry delivers
// submitted tables through.
// See docs/ARCHITECTURE.md § Index Backend.
type Index interface {
	// Attach connects the Index to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, all other operations return ErrIndexDetached.
	Detach() error

	// Register stores a crate's implementor table, replacing any previously
	// registered table for the same crate (last registered wins).
	// Returns ErrInvalidTable if the table fails validation.
	Register(table CrateTable) error

	// Get retrieves the registered table for the given crate, rows in
	// registration order. Returns ErrCrateNotFound if the crate is absent.
	Get(crate string) (CrateTable, error)

	// Delete removes a crate and its implementor rows.
	// Returns ErrCrateNotFound if the crate is absent.
	Delete(crate string) error

	// Crates returns all registered crate names in lexical order.
	Crates() ([]string, error)

	// Fetch returns implementor rows matching the filter, annotated with
	// their crate. Supported keys: "crate", "trait". An empty filter
	// returns every row in the index.
	Fetch(filter map[string]any) ([]IndexedImplementor, error)
}

// IndexedImplementor is one implementor row as stored in the index, annotated
// with the crate it was registered under.
type IndexedImplementor struct {
	Crate       string
	Implementor Implementor
}

// Index lifecycle errors.
var (
	ErrIndexDetached   = errors.New("index is detached")
	ErrAlreadyAttached = errors.New("index is already attached")
)

// Index operation errors.
var (
	ErrCrateNotFound = errors.New("crate not found")
	ErrInvalidTable  = errors.New("invalid crate table")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
