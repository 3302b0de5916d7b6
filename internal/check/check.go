// Package check provides system diagnostics (the check command) for ffmpeg,
// ffprobe, libx264, AAC and the yadif deinterlacer, plus the binary lookup
// done when the engine loads.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/mtsmux/internal/config"
)

// Sentinel errors for a missing tool or a failed component test.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found")
	ErrFfprobeNotFound = errors.New("ffprobe not found")
	ErrX264Failed      = errors.New("libx264 test encode failed")
	ErrAACFailed       = errors.New("aac test encode failed")
	ErrYadifFailed     = errors.New("yadif deinterlace filter unavailable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Result is one line of the check report.
type Result struct {
	Name   string
	OK     bool
	Detail string
}

// RunCheck runs the interactive check flow: it reports the availability of
// ffmpeg and ffprobe and runs a tiny test encode for each component the plan
// catalog depends on. It does not stop on failure; the returned slice holds
// every result and the caller decides the exit status.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) []Result {
	log.Info("=== System Check ===")

	results := []Result{
		binaryVersion(ctx, "ffmpeg", cfg.FFmpegPath),
		binaryVersion(ctx, "ffprobe", cfg.FFprobePath),
	}
	for _, p := range probes {
		r := Result{Name: p.name, OK: runSilent(ctx, cfg.FFmpegPath, p.args...)}
		if !r.OK {
			r.Detail = p.err.Error()
		}
		results = append(results, r)
	}

	for _, r := range results {
		switch {
		case r.OK && r.Detail != "":
			log.Success("%s: %s", r.Name, r.Detail)
		case r.OK:
			log.Success("%s works", r.Name)
		default:
			log.Error("%s: %s", r.Name, r.Detail)
		}
	}
	return results
}

// LocateBinaries is the engine load step: it only verifies that ffmpeg and
// ffprobe resolve. Encoders are not tested here; a plan whose encoder is
// missing fails on its own and the next plan is tried.
func LocateBinaries(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfprobeNotFound, cfg.FFprobePath)
	}
	return nil
}

// --- internal helpers ---

type toolProbe struct {
	name string
	args []string
	err  error
}

// probes are the minimal lavfi encodes that exercise each component used by
// the compat-reencode and fast-remux plans.
var probes = []toolProbe{
	{
		name: "libx264",
		args: testArgs("color=black:s=256x256:d=0.1",
			"-c:v", "libx264", "-profile:v", "high", "-pix_fmt", "yuv420p"),
		err: ErrX264Failed,
	},
	{
		name: "aac",
		args: testArgs("sine=frequency=1000:duration=0.1", "-c:a", "aac"),
		err:  ErrAACFailed,
	},
	{
		name: "yadif",
		args: testArgs("color=black:s=256x256:d=0.1",
			"-vf", "yadif", "-c:v", "rawvideo"),
		err: ErrYadifFailed,
	},
}

func testArgs(lavfi string, codec ...string) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", lavfi,
	}
	args = append(args, codec...)
	return append(args, "-f", "null", "-")
}

// binaryVersion resolves a binary and returns the first line of its
// -version output as the result detail.
func binaryVersion(ctx context.Context, name, path string) Result {
	if _, err := exec.LookPath(path); err != nil {
		return Result{Name: name, Detail: "not found (" + path + ")"}
	}
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("found but -version failed: %v", err)}
	}
	return Result{Name: name, OK: true, Detail: firstLine(string(out))}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(ctx context.Context, name string, args ...string) bool {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
