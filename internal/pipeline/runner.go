package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/engine"
	"github.com/backmassage/mtsmux/internal/logging"
	"github.com/backmassage/mtsmux/internal/naming"
	"github.com/backmassage/mtsmux/internal/planner"
	"github.com/backmassage/mtsmux/internal/source"
)

// Recorder receives per-run measurements. Implemented by the metrics
// package; nil disables recording.
type Recorder interface {
	ObserveAttempt(plan string, status AttemptStatus, elapsed time.Duration)
	ObserveFallback()
	ObserveOutcome(outcome string, elapsed time.Duration)
}

// Options are the optional collaborators of an Orchestrator.
type Options struct {
	Reporter ProgressReporter
	Recorder Recorder
}

// Orchestrator runs the plan catalog for one source at a time.
type Orchestrator struct {
	handle *engine.Handle
	plans  []planner.Plan
	cfg    *config.Config
	log    *logging.Logger
	opts   Options

	// writeInput stages the source; replaced in tests.
	writeInput func(*engine.Handle, []byte) error

	running sync.Mutex
}

// New returns an orchestrator that drives handle through plans.
func New(handle *engine.Handle, plans []planner.Plan, cfg *config.Config, log *logging.Logger, opts Options) *Orchestrator {
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	return &Orchestrator{
		handle:     handle,
		plans:      plans,
		cfg:        cfg,
		log:        log,
		opts:       opts,
		writeInput: (*engine.Handle).WriteInput,
	}
}

// Plans returns the catalog in the order it is tried.
func (o *Orchestrator) Plans() []planner.Plan { return o.plans }

// LastOutput returns the output retained from the most recent successful
// run, until the next run resets scratch.
func (o *Orchestrator) LastOutput() ([]byte, error) {
	return o.handle.ReadOutput()
}

// Transcode converts src into exactly one Outcome. A call made while
// another is in flight is rejected with a FailureBusy outcome.
func (o *Orchestrator) Transcode(ctx context.Context, src *source.File) Outcome {
	if !o.running.TryLock() {
		o.log.Warn("Rejected %s: %v", src.Name, ErrBusy)
		return Outcome{Failure: newFailure(FailureBusy, ErrBusy.Error(), ErrBusy)}
	}
	defer o.running.Unlock()

	r := &run{
		o:       o,
		id:      uuid.NewString()[:8],
		start:   time.Now(),
		src:     src,
		tracker: newProgressTracker(o.cfg.ProgressReserve, o.opts.Reporter),
	}
	out := r.execute(ctx)
	out.RunID = r.id
	out.Attempts = r.attempts
	out.Stats = r.stats
	out.Elapsed = time.Since(r.start)

	if o.opts.Recorder != nil {
		label := "success"
		if out.Failure != nil {
			label = out.Failure.Kind.String()
		}
		o.opts.Recorder.ObserveOutcome(label, out.Elapsed)
	}
	return out
}

// run is the state of one Transcode call.
type run struct {
	o        *Orchestrator
	id       string
	start    time.Time
	src      *source.File
	tracker  *progressTracker
	attempts []Attempt
	stats    RunStats
}

func (r *run) execute(ctx context.Context) Outcome {
	o, log, h := r.o, r.o.log, r.o.handle
	r.stats.InputBytes = r.src.Size

	log.Info("[%s] %s (%s, profile %s)", r.id, r.src.Name, humanize.IBytes(uint64(max(r.src.Size, 0))), o.cfg.Profile)
	if limit := o.cfg.Profile.LargeFileThreshold(); r.src.Size > limit {
		log.Warn("Source is larger than %s; conversion may run out of memory", humanize.IBytes(uint64(limit)))
	}

	// --- Engine ---
	if err := h.EnsureReady(ctx); err != nil {
		r.tracker.Fail()
		if ctx.Err() != nil {
			return r.interrupted(ctx.Err())
		}
		log.Error("Engine failed to start: %v", err)
		return Outcome{Failure: newFailure(FailureEngineInit, err.Error(), err)}
	}
	h.ResetScratch()
	// Only fails when the handle was closed after EnsureReady.
	if err := o.writeInput(h, r.src.Data); err != nil {
		r.tracker.Fail()
		log.Error("Engine unavailable: %v", err)
		return Outcome{Failure: newFailure(FailureEngineLost, "engine is no longer ready", err)}
	}
	r.src.Release()

	unsubscribe := h.SubscribeProgress(r.tracker.Update)
	defer unsubscribe()

	// --- Plans, in declaration order ---
	var lastErr error
	for i, plan := range o.plans {
		if err := ctx.Err(); err != nil {
			return r.interrupted(err)
		}
		r.tracker.Begin(len(o.plans) - i)
		if i > 0 {
			r.stats.Fallbacks++
			if o.opts.Recorder != nil {
				o.opts.Recorder.ObserveFallback()
			}
			log.Fallback("Falling back to %s", plan.Name)
		}
		log.Info("%s: %s", plan.Name, plan.Description)

		data, a := r.attempt(ctx, plan)
		r.record(a)
		if a.Status == AttemptOK {
			h.RemoveInput()
			r.tracker.Complete()
			r.stats.OutputBytes = int64(len(data))
			log.Success("Converted with %s in %s (%d%% of original)",
				plan.Name, a.Elapsed.Round(time.Second), r.stats.SizePercent())
			return Outcome{Result: &Result{
				Data:     data,
				MIME:     MIMEType,
				FileName: naming.SuggestedName(r.src.Name),
				Plan:     plan.Name,
			}}
		}
		if ctx.Err() != nil {
			return r.interrupted(ctx.Err())
		}
		log.Warn("%s failed: %v", plan.Name, a.Err)
		lastErr = a.Err
	}

	// --- Exhausted ---
	h.ResetScratch()
	r.tracker.Fail()
	err := ErrAllPlansExhausted
	if lastErr != nil {
		err = fmt.Errorf("%w: last error: %w", ErrAllPlansExhausted, lastErr)
	}
	f := newFailure(FailureExhausted, ErrAllPlansExhausted.Error(), err)
	for _, a := range r.attempts {
		if a.Resource {
			f.Remedy = remedyResource
			break
		}
	}
	log.Error("%s", f.Reason)
	return Outcome{Failure: f}
}

// attempt runs one plan and validates its output.
func (r *run) attempt(ctx context.Context, plan planner.Plan) ([]byte, Attempt) {
	h := r.o.handle
	a := Attempt{Plan: plan.Name}
	t0 := time.Now()

	h.RemoveOutput()
	if err := h.Run(ctx, plan.Operation()); err != nil {
		a.Status = AttemptFailed
		a.Err = err
		var oe *engine.OperationError
		if errors.As(err, &oe) {
			a.Reason = oe.Reason
			a.Resource = oe.Resource
		}
		a.Elapsed = time.Since(t0)
		return nil, a
	}

	data, err := h.ReadOutput()
	if err != nil {
		a.Status = AttemptMissingOutput
		a.Err = engine.AsOperationError(plan.Name, err)
		a.Reason = "no output"
		a.Elapsed = time.Since(t0)
		return nil, a
	}
	a.OutputBytes = len(data)
	if plan.TooSmall(len(data)) {
		a.Status = AttemptTooSmall
		a.Reason = "output too small"
		a.Err = engine.AsOperationError(plan.Name,
			fmt.Errorf("output is %d bytes, below the %d byte minimum", len(data), plan.MinOutputBytes))
		a.Elapsed = time.Since(t0)
		return nil, a
	}

	a.Status = AttemptOK
	a.Elapsed = time.Since(t0)
	return data, a
}

func (r *run) record(a Attempt) {
	r.attempts = append(r.attempts, a)
	r.stats.Attempts++
	if rec := r.o.opts.Recorder; rec != nil {
		rec.ObserveAttempt(a.Plan, a.Status, a.Elapsed)
	}
}

func (r *run) interrupted(err error) Outcome {
	r.o.handle.ResetScratch()
	r.tracker.Fail()
	r.o.log.Warn("Interrupted")
	return Outcome{Failure: newFailure(FailureInterrupted, "conversion interrupted", err)}
}
