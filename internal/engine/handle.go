// Package engine wraps a transcoding engine backend behind a single handle:
// lazy initialization shared by concurrent callers, a private in-memory
// scratch store for input and output buffers, and a single-subscriber
// progress stream.
package engine

import (
	"context"
	"sync"
)

// State is the engine session lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// ProgressFunc receives a completion ratio in [0,1] while an operation runs.
type ProgressFunc func(ratio float64)

// Operation is one engine invocation. Args are the engine's argument tokens;
// tokens equal to a scratch entry name refer to that entry.
type Operation struct {
	Name string
	Args []string
}

// Backend is the engine capability set consumed by Handle.
type Backend interface {
	// Load performs the (possibly slow) one-time initialization.
	Load(ctx context.Context) error
	// Run executes op against scratch, reading its inputs from scratch and
	// storing its output back into scratch. progress may be called from
	// another goroutine while Run is in flight.
	Run(ctx context.Context, scratch *Scratch, op Operation, progress ProgressFunc) error
}

// loadCall is one in-flight or finished Load shared by all waiters.
type loadCall struct {
	done chan struct{}
	err  error
}

// Handle owns the engine session. Create one per process and pass it to
// whoever needs the engine.
type Handle struct {
	backend Backend
	scratch *Scratch

	mu      sync.Mutex
	state   State
	loading *loadCall

	progressMu sync.Mutex
	progress   ProgressFunc
	subID      uint64
}

// NewHandle wraps backend. The engine stays unloaded until EnsureReady.
func NewHandle(backend Backend) *Handle {
	return &Handle{backend: backend, scratch: NewScratch()}
}

// State returns the current session state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// EnsureReady loads the backend once. Callers that arrive while a load is
// in flight wait for that load instead of starting another. Every failure,
// including a waiter giving up on ctx, is an *InitError. A failed load
// resets the session to unloaded, so a later call tries again.
func (h *Handle) EnsureReady(ctx context.Context) error {
	h.mu.Lock()
	switch h.state {
	case StateReady:
		h.mu.Unlock()
		return nil
	case StateLoading:
		call := h.loading
		h.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return &InitError{Err: ctx.Err()}
		}
	}

	call := &loadCall{done: make(chan struct{})}
	h.state = StateLoading
	h.loading = call
	h.mu.Unlock()

	err := h.backend.Load(ctx)

	h.mu.Lock()
	if err != nil {
		call.err = &InitError{Err: err}
		h.state = StateUnloaded
	} else {
		h.state = StateReady
	}
	h.loading = nil
	h.mu.Unlock()
	close(call.done)
	return call.err
}

// ResetScratch removes the input and output entries if present.
func (h *Handle) ResetScratch() {
	h.scratch.Remove(InputName)
	h.scratch.Remove(OutputName)
}

// WriteInput stores data as the input entry.
func (h *Handle) WriteInput(data []byte) error {
	if h.State() != StateReady {
		return ErrNotReady
	}
	h.scratch.Write(InputName, data)
	return nil
}

// RemoveInput frees the input entry.
func (h *Handle) RemoveInput() {
	h.scratch.Remove(InputName)
}

// RemoveOutput drops the output entry so a later run cannot be mistaken
// for one that produced it.
func (h *Handle) RemoveOutput() {
	h.scratch.Remove(OutputName)
}

// Run executes op. Backend failures come back as *OperationError.
func (h *Handle) Run(ctx context.Context, op Operation) error {
	if h.State() != StateReady {
		return ErrNotReady
	}
	if err := h.backend.Run(ctx, h.scratch, op, h.emit); err != nil {
		return AsOperationError(op.Name, err)
	}
	return nil
}

// ReadOutput returns the output entry or ErrMissingOutput.
func (h *Handle) ReadOutput() ([]byte, error) {
	data, ok := h.scratch.Read(OutputName)
	if !ok {
		return nil, ErrMissingOutput
	}
	return data, nil
}

// SubscribeProgress installs fn as the only progress subscriber, replacing
// any previous one. The returned func removes the subscription; it is a
// no-op once a newer subscription replaced it.
func (h *Handle) SubscribeProgress(fn ProgressFunc) (unsubscribe func()) {
	h.progressMu.Lock()
	h.subID++
	id := h.subID
	h.progress = fn
	h.progressMu.Unlock()

	return func() {
		h.progressMu.Lock()
		defer h.progressMu.Unlock()
		if h.subID == id {
			h.progress = nil
		}
	}
}

// emit forwards a backend ratio to the current subscriber, clamped to [0,1].
func (h *Handle) emit(ratio float64) {
	h.progressMu.Lock()
	fn := h.progress
	h.progressMu.Unlock()
	if fn == nil {
		return
	}
	switch {
	case ratio < 0 || ratio != ratio:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	fn(ratio)
}

// Scratch exposes the store for diagnostics and tests.
func (h *Handle) Scratch() *Scratch { return h.scratch }

// Close releases backend resources when the backend holds any. A ready
// session returns to unloaded, so later operations get ErrNotReady until
// EnsureReady loads again.
func (h *Handle) Close() error {
	h.mu.Lock()
	if h.state == StateReady {
		h.state = StateUnloaded
	}
	h.mu.Unlock()
	if c, ok := h.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
