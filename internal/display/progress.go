package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// barMax is the bar resolution; ratios are scaled to it.
const barMax = 1000

// ProgressBar renders conversion progress on a terminal. It implements
// pipeline.ProgressReporter.
type ProgressBar struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	value int
}

// NewProgressBar returns a bar writing to w. When enabled is false the bar
// renders nothing, which keeps logs clean on non-terminal output.
func NewProgressBar(w io.Writer, description string, enabled bool) *ProgressBar {
	if !enabled {
		w = io.Discard
	}
	bar := progressbar.NewOptions(barMax,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &ProgressBar{bar: bar}
}

// Progress moves the bar to ratio in [0,1].
func (p *ProgressBar) Progress(ratio float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := int(ratio * barMax)
	if v < 0 {
		v = 0
	}
	if v > barMax {
		v = barMax
	}
	p.value = v
	_ = p.bar.Set(v)
}

// Reset clears the bar after a failed run.
func (p *ProgressBar) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Clear()
	p.bar.Reset()
	p.value = 0
}

// Value returns the last position in bar units.
func (p *ProgressBar) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}
