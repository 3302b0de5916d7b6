package pipeline

import (
	"errors"
	"time"
)

// MIMEType is the content type of every successful result.
const MIMEType = "video/mp4"

var (
	// ErrAllPlansExhausted means every plan in the catalog failed.
	ErrAllPlansExhausted = errors.New("all conversion plans failed")

	// ErrBusy means a transcode was requested while another was running.
	ErrBusy = errors.New("a conversion is already running")
)

// FailureKind classifies a terminal failure.
type FailureKind int

const (
	FailureEngineInit FailureKind = iota
	FailureExhausted
	FailureBusy
	FailureInterrupted
	FailureInput
	FailureEngineLost
)

func (k FailureKind) String() string {
	switch k {
	case FailureEngineInit:
		return "engine-init"
	case FailureExhausted:
		return "exhausted"
	case FailureBusy:
		return "busy"
	case FailureInterrupted:
		return "interrupted"
	case FailureInput:
		return "input"
	case FailureEngineLost:
		return "engine-lost"
	}
	return "unknown"
}

// Result is a successful conversion.
type Result struct {
	Data     []byte
	MIME     string
	FileName string // suggested output name
	Plan     string // winning plan
}

// Failure is a terminal, user-visible failure. Every failure carries a
// remedy the user can act on.
type Failure struct {
	Kind   FailureKind
	Reason string
	Remedy string
	Err    error
}

func (f *Failure) Error() string { return f.Reason }
func (f *Failure) Unwrap() error { return f.Err }

// Outcome is the terminal result of one Transcode call: exactly one of
// Result and Failure is set.
type Outcome struct {
	RunID    string
	Result   *Result
	Failure  *Failure
	Attempts []Attempt
	Stats    RunStats
	Elapsed  time.Duration
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Result != nil }

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

// AttemptStatus is the result of running one plan.
type AttemptStatus int

const (
	AttemptOK AttemptStatus = iota
	AttemptFailed
	AttemptTooSmall
	AttemptMissingOutput
)

func (s AttemptStatus) String() string {
	switch s {
	case AttemptOK:
		return "ok"
	case AttemptFailed:
		return "failed"
	case AttemptTooSmall:
		return "too small"
	case AttemptMissingOutput:
		return "missing output"
	}
	return "unknown"
}

// Attempt records one plan run within a transcode.
type Attempt struct {
	Plan        string
	Status      AttemptStatus
	Reason      string
	Resource    bool // failure classified as resource exhaustion
	Err         error
	OutputBytes int
	Elapsed     time.Duration
}

const (
	remedyEngineInit  = "install ffmpeg with libx264 and AAC support (run `mtsmux check`), make sure no other mtsmux is running, then retry"
	remedyExhausted   = "trim the clip or try a shorter recording"
	remedyResource    = "the file may be too large to convert in memory; try a smaller file or trim the clip"
	remedyBusy        = "wait for the current conversion to finish"
	remedyInterrupted = "rerun the conversion"
	remedyInput       = "check the path and choose an MTS/AVCHD video file"
	remedyEngineLost  = "the engine was shut down during the conversion; rerun it"
)

func newFailure(kind FailureKind, reason string, err error) *Failure {
	f := &Failure{Kind: kind, Reason: reason, Err: err}
	switch kind {
	case FailureEngineInit:
		f.Remedy = remedyEngineInit
	case FailureExhausted:
		f.Remedy = remedyExhausted
	case FailureBusy:
		f.Remedy = remedyBusy
	case FailureInterrupted:
		f.Remedy = remedyInterrupted
	case FailureInput:
		f.Remedy = remedyInput
	case FailureEngineLost:
		f.Remedy = remedyEngineLost
	}
	return f
}

// InputFailure builds the outcome for a source that could not be loaded.
func InputFailure(err error) Outcome {
	return Outcome{Failure: newFailure(FailureInput, "cannot load source: "+err.Error(), err)}
}
