package pipeline

import "sync"

// ProgressReporter receives display ratios for one transcode. Exactly one
// terminal event is delivered per run: Progress(1) on success or Reset()
// on failure.
type ProgressReporter interface {
	Progress(ratio float64)
	Reset()
}

type nopReporter struct{}

func (nopReporter) Progress(float64) {}
func (nopReporter) Reset()           {}

// progressTracker maps raw engine ratios into the span of the plan being
// run. The bar tops out at limit, 1 minus the reserve kept for reading the
// output back. Begin gives each plan an even share of what is left between
// the current value and limit, so a plan that reached its own 100% before
// failing still leaves room for the fallback. The displayed value never
// decreases.
type progressTracker struct {
	mu       sync.Mutex
	reporter ProgressReporter
	limit    float64
	base     float64
	end      float64
	shown    float64
	done     bool
}

func newProgressTracker(reserve float64, reporter ProgressReporter) *progressTracker {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if reserve < 0 {
		reserve = 0
	}
	if reserve > 1 {
		reserve = 1
	}
	limit := 1 - reserve
	return &progressTracker{reporter: reporter, limit: limit, end: limit}
}

// Begin starts the span for a plan with remaining plans left, itself
// included.
func (p *progressTracker) Begin(remaining int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if remaining < 1 {
		remaining = 1
	}
	p.base = p.shown
	p.end = p.base + (p.limit-p.base)/float64(remaining)
}

// Update maps raw (already clamped to [0,1] by the engine handle).
func (p *progressTracker) Update(raw float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	v := p.base + raw*(p.end-p.base)
	if v > p.end {
		v = p.end
	}
	if v <= p.shown {
		return
	}
	p.shown = v
	p.reporter.Progress(v)
}

// Complete emits the terminal 1.0.
func (p *progressTracker) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	p.shown = 1
	p.reporter.Progress(1)
}

// Fail emits the terminal reset.
func (p *progressTracker) Fail() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	p.reporter.Reset()
}

// Shown returns the last displayed value.
func (p *progressTracker) Shown() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}
