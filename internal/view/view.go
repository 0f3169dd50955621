// Package view maintains client-local mirrors of the record collections
// and derives sorted, filtered and aggregated projections from them.
//
// Each view is a read-through, write-behind copy: it is rebuilt from the
// server on Load and is never authoritative. Mutations are pessimistic;
// the local snapshot only changes after the server confirms a write, and
// the merge always uses the server-returned record so server-side
// defaulting is reflected.
package view

import "errors"

// State is the lifecycle of a collection mirror.
type State int

const (
	StateLoading State = iota
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

var (
	// ErrNotReady is returned when a mutation is attempted before a
	// successful Load.
	ErrNotReady = errors.New("view: collection not loaded")

	// ErrWriteInFlight is returned when a mutation is attempted while a
	// previous one has not resolved yet.
	ErrWriteInFlight = errors.New("view: a write is already in flight")

	// ErrDeclined is returned when the confirmer rejects a delete.
	ErrDeclined = errors.New("view: deletion declined")
)

// Confirmer gates destructive operations. Deletes are only issued after
// Confirm returns true.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Useful for non-interactive callers.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
