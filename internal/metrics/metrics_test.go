package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mtsmux/internal/pipeline"
)

var _ pipeline.Recorder = (*Metrics)(nil)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveAttempt("fast-remux", pipeline.AttemptFailed, 2*time.Second)
	m.ObserveFallback()
	m.ObserveAttempt("compat-reencode", pipeline.AttemptOK, 90*time.Second)
	m.ObserveOutcome("success", 92*time.Second)

	path := filepath.Join(t.TempDir(), "mtsmux.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `mtsmux_plan_attempts_total{plan="fast-remux",result="failed"} 1`)
	assert.Contains(t, text, `mtsmux_plan_attempts_total{plan="compat-reencode",result="ok"} 1`)
	assert.Contains(t, text, "mtsmux_fallbacks_total 1")
	assert.Contains(t, text, `mtsmux_transcodes_total{outcome="success"} 1`)
	assert.Contains(t, text, "mtsmux_transcode_duration_seconds_count 1")
	assert.Contains(t, text, `mtsmux_plan_duration_seconds_count{plan="compat-reencode"} 1`)
}

func TestRegistryIsPrivate(t *testing.T) {
	a, b := New(), New()
	a.ObserveFallback()

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "mtsmux_fallbacks_total" {
			assert.Zero(t, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
