package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/docforge/traitdex/pkg/types"
)

// Sink consumes registered crate tables. The sqlite backend is the standard
// implementation; what a sink does with a table (store, render, merge) is its
// own business. Register must tolerate being called once per crate in any
// order, with last-registered-wins semantics for duplicate crate names.
type Sink interface {
	Register(table types.CrateTable) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(table types.CrateTable) error

// Register calls f(table).
func (f SinkFunc) Register(table types.CrateTable) error {
	return f(table)
}

// Registry lifecycle errors.
var (
	ErrAlreadyInitialized = errors.New("registry is already initialized")
	ErrNilSink            = errors.New("sink must not be nil")
)

// Registry is a two-state submission point for crate tables.
//
// Uninitialized: Submit appends to an internal pending buffer, preserving
// submission order. Ready: Submit delivers synchronously to the sink and the
// buffer is never touched again. Initialize moves the registry from
// Uninitialized to Ready, draining the buffer through the sink in append
// order. Ready is terminal; a second Initialize fails and re-delivers
// nothing.
//
// All methods are safe for concurrent use; submissions and the drain are
// serialized so no two sink calls interleave.
type Registry struct {
	mu      sync.Mutex
	ready   bool
	sink    Sink
	pending []types.CrateTable
}

// New returns an uninitialized Registry with an empty pending buffer.
func New() *Registry {
	return &Registry{}
}

// Submit delivers a crate table to the sink if the registry is ready, or
// appends it to the pending buffer otherwise. The table is cloned on entry;
// the caller retains no aliasing into registry or sink state.
//
// Buffered submissions never fail. For direct deliveries the sink's error is
// returned so the caller can log it, but the submission is not retried and a
// failure affects only this table.
func (r *Registry) Submit(table types.CrateTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := table.Clone()
	if !r.ready {
		r.pending = append(r.pending, cp)
		return nil
	}
	if err := r.sink.Register(cp); err != nil {
		return fmt.Errorf("registering crate %s: %w", cp.Crate, err)
	}
	return nil
}

// Initialize installs the sink and drains the pending buffer through it in
// submission order, then retires the buffer. Runs at most once; subsequent
// calls return ErrAlreadyInitialized without delivering anything.
//
// A sink failure on one buffered table does not stop delivery of the rest.
// Every buffered table leaves the queue exactly once regardless of delivery
// outcome. If any deliveries failed, Initialize returns an error summarizing
// the count and wrapping the first failure; the registry is Ready either way.
func (r *Registry) Initialize(sink Sink) error {
	if sink == nil {
		return ErrNilSink
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return ErrAlreadyInitialized
	}
	r.sink = sink
	r.ready = true

	drained := r.pending
	r.pending = nil

	var firstErr error
	failed := 0
	for _, table := range drained {
		if err := sink.Register(table); err != nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("registering crate %s: %w", table.Crate, err)
			}
		}
	}
	if firstErr != nil {
		return fmt.Errorf("draining pending tables: %d of %d failed: %w", failed, len(drained), firstErr)
	}
	return nil
}

// Ready reports whether Initialize has run.
func (r *Registry) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Pending returns the number of tables awaiting the drain. Always zero once
// the registry is ready.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
