package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/display"
	"github.com/backmassage/mtsmux/internal/engine"
	"github.com/backmassage/mtsmux/internal/ffmpeg"
	"github.com/backmassage/mtsmux/internal/logging"
	"github.com/backmassage/mtsmux/internal/metrics"
	"github.com/backmassage/mtsmux/internal/naming"
	"github.com/backmassage/mtsmux/internal/pipeline"
	"github.com/backmassage/mtsmux/internal/planner"
	"github.com/backmassage/mtsmux/internal/sink"
	"github.com/backmassage/mtsmux/internal/source"
	"github.com/backmassage/mtsmux/internal/term"
)

func newConvertCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert one MTS/AVCHD file to MP4",
		Long: "Convert one MTS/AVCHD file to MP4.\n\n" +
			"The fast-remux plan copies the video stream and re-encodes audio to AAC.\n" +
			"If the engine rejects it, compat-reencode deinterlaces and re-encodes\n" +
			"to H.264 High@4.1. The MP4 is written next to the source unless\n" +
			"--output-dir is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cc.cfg, cc.log, cmd.OutOrStdout(), args[0], newFFmpegHandle)
		},
	}
	config.BindTranscodeFlags(cmd.Flags(), &cc.overrides)
	config.BindEngineFlags(cmd.Flags(), &cc.overrides)
	return cmd
}

func newFFmpegHandle(cfg *config.Config, log *logging.Logger) *engine.Handle {
	return engine.NewHandle(ffmpeg.New(cfg, log))
}

// runConvert is the convert flow: load, transcode, save, preview. newHandle
// builds the engine so tests can substitute a fake backend.
func runConvert(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	out io.Writer,
	path string,
	newHandle func(*config.Config, *logging.Logger) *engine.Handle,
) error {
	display.PrintBanner(out, version)

	// --- Load ---
	src, err := source.Load(path)
	if err != nil {
		return reportFailure(log, pipeline.InputFailure(err))
	}
	for _, note := range source.Advise(src) {
		log.Warn("%s: %s", src.Name, note)
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	if cfg.Overwrite {
		inAbs, _ := filepath.Abs(path)
		outAbs, _ := filepath.Abs(naming.GetOutputPath(outDir, naming.SuggestedName(src.Name)))
		if err := config.ValidatePaths(inAbs, outAbs); err != nil {
			return err
		}
	}

	// --- Transcode ---
	handle := newHandle(cfg, log)
	defer func() {
		if err := handle.Close(); err != nil {
			log.Warn("Engine cleanup: %v", err)
		}
	}()

	m := metrics.New()
	bar := display.NewProgressBar(os.Stderr, "converting", term.IsTerminal(os.Stderr) && !cfg.Verbose)
	orch := pipeline.New(handle, planner.BuildPlans(cfg), cfg, log, pipeline.Options{Reporter: bar, Recorder: m})

	outcome := orch.Transcode(ctx, src)
	if len(outcome.Attempts) > 0 && (cfg.Verbose || !outcome.OK()) {
		fmt.Fprintln(out, display.AttemptTable(outcome.Attempts))
	}
	writeMetrics(cfg, log, m)

	if !outcome.OK() {
		return reportFailure(log, outcome)
	}

	// --- Deliver ---
	res := outcome.Result
	if mt, ok := sink.VerifyMIME(res.Data); !ok {
		log.Warn("Output sniffed as %s, expected %s", mt, res.MIME)
	}
	saved, err := sink.Save(res, outDir, cfg.Overwrite)
	if err != nil {
		return err
	}
	log.Success("Saved %s (%s, %s via %s)", saved, display.FormatBytes(int64(len(res.Data))),
		display.FormatDuration(outcome.Elapsed), res.Plan)

	if cfg.Preview {
		if err := sink.Preview(ctx, saved); err != nil {
			log.Warn("Preview unavailable: %v", err)
		}
	}
	return nil
}

// reportFailure logs a failure with its remedy and returns it marked as
// already reported.
func reportFailure(log *logging.Logger, outcome pipeline.Outcome) error {
	f := outcome.Failure
	log.Error("%s", f.Reason)
	if f.Remedy != "" {
		log.Info("Suggestion: %s", f.Remedy)
	}
	return &reportedError{err: f}
}

func writeMetrics(cfg *config.Config, log *logging.Logger, m *metrics.Metrics) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(cfg.MetricsFile), 0o755); err != nil {
		log.Warn("Metrics directory: %v", err)
		return
	}
	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Warn("Write metrics: %v", err)
		return
	}
	log.Debug("Metrics written to %s", cfg.MetricsFile)
}
