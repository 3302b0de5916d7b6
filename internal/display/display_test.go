package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/mtsmux/internal/check"
	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/pipeline"
	"github.com/backmassage/mtsmux/internal/planner"
)

func TestPlanTable(t *testing.T) {
	cfg := config.DefaultConfig()
	out := PlanTable(planner.BuildPlans(&cfg))
	for _, want := range []string{"fast-remux", "compat-reencode", "remux", "encode", "4.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan table missing %q:\n%s", want, out)
		}
	}
	if idx1, idx2 := strings.Index(out, "fast-remux"), strings.Index(out, "compat-reencode"); idx1 > idx2 {
		t.Error("plans must render in declaration order")
	}
}

func TestPlanArgs(t *testing.T) {
	p := planner.Plan{Args: []string{"-i", "input", "-f", "mp4", "output"}}
	if got := PlanArgs(p); got != "-i input -f mp4 output" {
		t.Errorf("PlanArgs = %q", got)
	}
}

func TestAttemptTable(t *testing.T) {
	out := AttemptTable([]pipeline.Attempt{
		{Plan: "fast-remux", Status: pipeline.AttemptFailed, Reason: "codec not supported in container", Err: errors.New("x"), Elapsed: time.Second},
		{Plan: "compat-reencode", Status: pipeline.AttemptOK, OutputBytes: 2048, Elapsed: 2 * time.Minute},
	})
	for _, want := range []string{"failed", "codec not supported in container", "ok", "2.0 KiB", "2m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("attempt table missing %q:\n%s", want, out)
		}
	}
}

func TestCheckTable(t *testing.T) {
	out := CheckTable([]check.Result{
		{Name: "ffmpeg", OK: true, Detail: "ffmpeg version 7.1"},
		{Name: "libx264", Detail: "libx264 test encode failed"},
	})
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "ffmpeg version 7.1") {
		t.Errorf("unexpected check table:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := renderTable(nil, nil, nil); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "converting", true)

	bar.Progress(0.5)
	if bar.Value() != 500 {
		t.Errorf("Value = %d, want 500", bar.Value())
	}
	bar.Progress(1.7)
	if bar.Value() != barMax {
		t.Errorf("ratio above 1 should clamp, got %d", bar.Value())
	}
	if buf.Len() == 0 {
		t.Error("enabled bar should render")
	}

	bar.Reset()
	if bar.Value() != 0 {
		t.Errorf("Reset left value %d", bar.Value())
	}
}

func TestProgressBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "converting", false)
	bar.Progress(0.3)
	bar.Progress(1)
	if buf.Len() != 0 {
		t.Errorf("disabled bar wrote %q", buf.String())
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	if !strings.Contains(buf.String(), "v1.2.3") {
		t.Errorf("banner missing version: %q", buf.String())
	}
}
