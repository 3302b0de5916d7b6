package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mtsmux/internal/config"
)

type recordingLogger struct {
	success, errors []string
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Success(f string, _ ...interface{}) {
	l.success = append(l.success, f)
}
func (l *recordingLogger) Error(f string, _ ...interface{}) {
	l.errors = append(l.errors, f)
}

func missingBinaries() *config.Config {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = "/nonexistent/mtsmux-test/ffmpeg"
	cfg.FFprobePath = "/nonexistent/mtsmux-test/ffprobe"
	return &cfg
}

func TestLocateBinaries_MissingFFmpeg(t *testing.T) {
	err := LocateBinaries(missingBinaries())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFfmpegNotFound))
	assert.Contains(t, err.Error(), "/nonexistent/mtsmux-test/ffmpeg")
}

func TestLocateBinaries_MissingFFprobe(t *testing.T) {
	cfg := missingBinaries()
	cfg.FFmpegPath = fakeTool(t, "ffmpeg", "exit 0")
	assert.ErrorIs(t, LocateBinaries(cfg), ErrFfprobeNotFound)
}

// An ffmpeg that fails every libx264 encode still loads; only the check
// command reports the broken encoder.
func TestLocateBinaries_DoesNotRunEncoderTests(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeTool(t, "ffmpeg", "touch "+marker+"\nexit 1")
	cfg.FFprobePath = fakeTool(t, "ffprobe", "exit 0")

	require.NoError(t, LocateBinaries(&cfg))
	assert.NoFileExists(t, marker)

	results := RunCheck(context.Background(), &cfg, &recordingLogger{})
	for _, r := range results {
		if r.Name == "libx264" {
			assert.False(t, r.OK)
			assert.Equal(t, ErrX264Failed.Error(), r.Detail)
		}
	}
	assert.FileExists(t, marker)
}

func fakeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-ins need a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return p
}

func TestRunCheck_ReportsEveryComponent(t *testing.T) {
	log := &recordingLogger{}
	results := RunCheck(context.Background(), missingBinaries(), log)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		assert.False(t, r.OK, r.Name)
		assert.NotEmpty(t, r.Detail, r.Name)
	}
	assert.Equal(t, []string{"ffmpeg", "ffprobe", "libx264", "aac", "yadif"}, names)
	assert.Len(t, log.errors, len(results))
	assert.Empty(t, log.success)
}

func TestTestArgs_NullMuxer(t *testing.T) {
	args := testArgs("sine=d=0.1", "-c:a", "aac")
	require.GreaterOrEqual(t, len(args), 4)
	assert.Equal(t, []string{"-f", "null", "-"}, args[len(args)-3:])
	assert.Contains(t, args, "lavfi")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "ffmpeg version 7.1", firstLine("  ffmpeg version 7.1\nbuilt with gcc\n"))
	assert.Equal(t, "single", firstLine("single"))
}
