package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by scratch and run operations before
	// EnsureReady has succeeded.
	ErrNotReady = errors.New("engine not ready")

	// ErrMissingOutput means a run reported success but left no output entry.
	ErrMissingOutput = errors.New("engine produced no output")
)

// InitError wraps a backend load failure. It is fatal for the current run;
// a later EnsureReady call starts a fresh load.
type InitError struct {
	Err error
}

func (e *InitError) Error() string { return fmt.Sprintf("engine init: %v", e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

// OperationError reports that one operation failed: the engine rejected
// the arguments or the source stream, or the output was implausible.
// It is recoverable by moving to the next plan.
type OperationError struct {
	Op     string // operation (plan) name
	Reason string // short classification, e.g. "codec not supported in container"
	// Resource is set when the failure looks like memory exhaustion.
	Resource bool
	Err      error
}

func (e *OperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Reasoner is implemented by backend errors that can classify themselves.
type Reasoner interface {
	Reason() string
	ResourceExhausted() bool
}

// AsOperationError wraps err for op, lifting a backend classification into
// Reason when the error provides one. An existing OperationError is
// returned unchanged.
func AsOperationError(op string, err error) *OperationError {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe
	}
	out := &OperationError{Op: op, Err: err}
	var r Reasoner
	if errors.As(err, &r) {
		out.Reason = r.Reason()
		out.Resource = r.ResourceExhausted()
	}
	return out
}
