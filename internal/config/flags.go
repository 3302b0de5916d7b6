package config

// This file registers the CLI flags that override config values.
// Flag values are captured in a separate struct and copied into Config only
// when the user actually set them, so file values hold unless overridden.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Overrides holds flag values captured during parsing.
type Overrides struct {
	profile         Profile
	crf             int
	audioBitrate    string
	minOutputBytes  int64
	progressReserve float64
	ffmpegPath      string
	ffprobePath     string
	workDir         string
	outputDir       string
	overwrite       bool
	preview         bool
	verbose         bool
	color           ColorMode
	noColor         bool
	logFile         string
	metricsFile     string
}

// BindTranscodeFlags registers the flags used by the convert command.
func BindTranscodeFlags(fs *pflag.FlagSet, o *Overrides) {
	def := DefaultConfig()
	o.profile = def.Profile
	fs.VarP(&profileValue{&o.profile}, "profile", "p", "Plan profile: iphone | desktop | compat")
	fs.IntVar(&o.crf, "crf", def.CRF, fmt.Sprintf("x264 CRF for the re-encode plan (%d-%d)", CRFMin, CRFMax))
	fs.StringVar(&o.audioBitrate, "audio-bitrate", def.AudioBitrate, "AAC bitrate (e.g. 128k)")
	fs.Int64Var(&o.minOutputBytes, "min-output-bytes", def.MinOutputBytes, "Treat smaller outputs as failures (0 disables)")
	fs.Float64Var(&o.progressReserve, "progress-reserve", def.ProgressReserve, "Share of the progress bar kept for export")
	fs.StringVarP(&o.outputDir, "output-dir", "o", "", "Directory for the MP4 (default: next to the source)")
	fs.BoolVarP(&o.overwrite, "force", "f", false, "Overwrite an existing output file")
	fs.BoolVar(&o.preview, "preview", false, "Open the result in the default player")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// BindEngineFlags registers engine flags shared by convert and check.
func BindEngineFlags(fs *pflag.FlagSet, o *Overrides) {
	def := DefaultConfig()
	fs.StringVar(&o.ffmpegPath, "ffmpeg", def.FFmpegPath, "ffmpeg binary")
	fs.StringVar(&o.ffprobePath, "ffprobe", def.FFprobePath, "ffprobe binary")
	fs.StringVar(&o.workDir, "work-dir", def.WorkDir, "Private scratch directory for the engine")
}

// BindDisplayFlags registers logging and color flags (persistent on the root command).
func BindDisplayFlags(fs *pflag.FlagSet, o *Overrides) {
	o.color = ColorAuto
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	fs.Var(&colorModeValue{&o.color}, "color", "Color output: auto | always | never")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&o.logFile, "log", "l", "", "Append logs to file")
}

// Apply copies every flag the user set into cfg. Flags that were not set
// leave the default or config file value in place.
func (o *Overrides) Apply(fs *pflag.FlagSet, cfg *Config) {
	set := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if set("profile") {
		cfg.Profile = o.profile
	}
	if set("crf") {
		cfg.CRF = o.crf
	}
	if set("audio-bitrate") {
		cfg.AudioBitrate = o.audioBitrate
	}
	if set("min-output-bytes") {
		cfg.MinOutputBytes = o.minOutputBytes
	}
	if set("progress-reserve") {
		cfg.ProgressReserve = o.progressReserve
	}
	if set("ffmpeg") {
		cfg.FFmpegPath = o.ffmpegPath
	}
	if set("ffprobe") {
		cfg.FFprobePath = o.ffprobePath
	}
	if set("work-dir") {
		cfg.WorkDir = o.workDir
	}
	if set("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if set("force") {
		cfg.Overwrite = o.overwrite
	}
	if set("preview") {
		cfg.Preview = o.preview
	}
	if set("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if set("verbose") {
		cfg.Verbose = o.verbose
	}
	if set("log") {
		cfg.LogFile = o.logFile
	}
	if set("no-color") && o.noColor {
		cfg.ColorMode = ColorNever
	} else if set("color") {
		cfg.ColorMode = o.color
	}
}

// pflag.Value adapters so enum types can be used with fs.Var.

type profileValue struct{ p *Profile }

func (v *profileValue) String() string { return string(*v.p) }
func (v *profileValue) Type() string   { return "profile" }
func (v *profileValue) Set(s string) error {
	switch p := Profile(strings.ToLower(s)); p {
	case ProfileIPhone, ProfileDesktop, ProfileCompat:
		*v.p = p
	default:
		return fmt.Errorf("invalid profile %q (use 'iphone', 'desktop' or 'compat')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (v *colorModeValue) String() string { return string(*v.p) }
func (v *colorModeValue) Type() string   { return "mode" }
func (v *colorModeValue) Set(s string) error {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		*v.p = m
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
