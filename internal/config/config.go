// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Profile selects the plan set and the large-file warning threshold.
type Profile string

const (
	ProfileIPhone  Profile = "iphone"  // Remux first, re-encode fallback (default).
	ProfileDesktop Profile = "desktop" // Same plans, higher memory headroom.
	ProfileCompat  Profile = "compat"  // Re-encode only.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Quality bounds for the re-encode plan. Lower CRF means higher quality.
const (
	CRFMin = 24
	CRFMax = 28
)

// Display progress reserve bounds (share of the bar kept for the export step).
const (
	ReserveMin = 0.05
	ReserveMax = 0.10
)

const (
	mib = int64(1) << 20
	gib = int64(1) << 30
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [LoadFile], then by flag overrides, before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Transcode policy.
	Profile         Profile `toml:"profile"`          // Default: "iphone".
	CRF             int     `toml:"crf"`              // Default: 26. Range 24-28.
	AudioBitrate    string  `toml:"audio_bitrate"`    // Default: "128k".
	MinOutputBytes  int64   `toml:"min_output_bytes"` // Default: 4096. 0 disables the check.
	ProgressReserve float64 `toml:"progress_reserve"` // Default: 0.05.

	// Engine.
	FFmpegPath     string `toml:"ffmpeg_path"`     // Default: "ffmpeg" (PATH lookup).
	FFprobePath    string `toml:"ffprobe_path"`    // Default: "ffprobe".
	WorkDir        string `toml:"work_dir"`        // Default: <tmp>/mtsmux.
	FFmpegLogLevel string `toml:"ffmpeg_loglevel"` // Default: "error".

	// Result handling.
	OutputDir string `toml:"output_dir"` // Empty: next to the source file.
	Overwrite bool   `toml:"overwrite"`
	Preview   bool   `toml:"preview"`

	// Display and logging.
	Verbose     bool      `toml:"verbose"`
	ColorMode   ColorMode `toml:"color"`
	LogFile     string    `toml:"log_file"`
	MetricsFile string    `toml:"metrics_file"`

	// Set at runtime, never read from the file.
	ConfigFile string `toml:"-"`
}

// DefaultConfig returns a Config with built-in defaults. Used as the base
// before the config file and CLI overrides apply.
func DefaultConfig() Config {
	return Config{
		Profile:         ProfileIPhone,
		CRF:             26,
		AudioBitrate:    "128k",
		MinOutputBytes:  4096,
		ProgressReserve: ReserveMin,
		FFmpegPath:      "ffmpeg",
		FFprobePath:     "ffprobe",
		WorkDir:         filepath.Join(os.TempDir(), "mtsmux"),
		FFmpegLogLevel:  "error",
		ColorMode:       ColorAuto,
	}
}

// LargeFileThreshold is the source size above which a memory warning is
// logged. Advisory only; it never blocks a run.
func (p Profile) LargeFileThreshold() int64 {
	if p == ProfileDesktop {
		return 3 * gib / 2
	}
	return 800 * mib
}

// Validate checks enum and range fields and canonicalizes the audio bitrate.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileIPhone, ProfileDesktop, ProfileCompat:
		// valid
	default:
		return fmt.Errorf("invalid profile %q (use 'iphone', 'desktop' or 'compat')", c.Profile)
	}

	if c.CRF < CRFMin || c.CRF > CRFMax {
		return fmt.Errorf("crf %d out of range (%d-%d)", c.CRF, CRFMin, CRFMax)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.FFmpegLogLevel {
	case "quiet", "panic", "fatal", "error", "warning", "info", "verbose", "debug":
		// valid
	default:
		return fmt.Errorf("invalid ffmpeg loglevel %q", c.FFmpegLogLevel)
	}

	if c.MinOutputBytes < 0 {
		return errors.New("min_output_bytes must not be negative")
	}
	if c.ProgressReserve < ReserveMin || c.ProgressReserve > ReserveMax {
		return fmt.Errorf("progress_reserve %.2f out of range (%.2f-%.2f)", c.ProgressReserve, ReserveMin, ReserveMax)
	}
	if strings.TrimSpace(c.FFmpegPath) == "" || strings.TrimSpace(c.FFprobePath) == "" {
		return errors.New("ffmpeg_path and ffprobe_path must not be empty")
	}
	if strings.TrimSpace(c.WorkDir) == "" {
		return errors.New("work_dir must not be empty")
	}

	normalizedBitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalizedBitrate
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "128", "128k", "128K", "128kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 128k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

// ValidatePaths rejects an output file that would replace the source file.
// Both arguments must be absolute, cleaned paths.
func ValidatePaths(inputAbs, outputAbs string) error {
	if filepath.Clean(inputAbs) == filepath.Clean(outputAbs) {
		return errors.New("output file must not replace the source file")
	}
	return nil
}
