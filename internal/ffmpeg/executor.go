package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/backmassage/mtsmux/internal/check"
	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/engine"
	"github.com/backmassage/mtsmux/internal/logging"
	"github.com/backmassage/mtsmux/internal/probe"
)

// Backend runs engine operations with the ffmpeg CLI. It implements
// engine.Backend and holds its work directory lock from Load until Close.
type Backend struct {
	cfg *config.Config
	log *logging.Logger

	// depCheck locates the binaries during Load; replaced in tests.
	depCheck func(*config.Config) error

	mu sync.Mutex
	ws *Workspace
}

// New returns an unloaded backend for cfg.
func New(cfg *config.Config, log *logging.Logger) *Backend {
	return &Backend{cfg: cfg, log: log, depCheck: check.LocateBinaries}
}

// Load checks that ffmpeg and ffprobe resolve, then opens and locks the
// work directory. Encoders are not smoke-tested here.
func (b *Backend) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ws != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.depCheck(b.cfg); err != nil {
		return err
	}
	ws, err := OpenWorkspace(b.cfg.WorkDir)
	if err != nil {
		return err
	}
	b.log.Debug("engine work directory: %s", ws.Dir())
	b.ws = ws
	return nil
}

// Run executes op. Scratch entries referenced by op.Args are written to
// the work directory for the duration of the run; the output file is read
// back into scratch on success. A run that exits cleanly but writes no
// output file leaves scratch without an output entry.
func (b *Backend) Run(ctx context.Context, scratch *engine.Scratch, op engine.Operation, progress engine.ProgressFunc) error {
	b.mu.Lock()
	ws := b.ws
	b.mu.Unlock()
	if ws == nil {
		return engine.ErrNotReady
	}

	paths := map[string]string{engine.OutputName: ws.Path(engine.OutputName)}
	cleanup := []string{engine.OutputName}
	defer func() { ws.Discard(cleanup...) }()

	for _, tok := range op.Args {
		if _, done := paths[tok]; done {
			continue
		}
		data, ok := scratch.Read(tok)
		if !ok {
			if tok == engine.InputName {
				return fmt.Errorf("scratch entry %q missing", tok)
			}
			continue
		}
		p, err := ws.Put(tok, data)
		if err != nil {
			return err
		}
		paths[tok] = p
		cleanup = append(cleanup, tok)
	}
	ws.Discard(engine.OutputName)

	var total int64
	if in, ok := paths[engine.InputName]; ok {
		pr, err := probe.Probe(ctx, b.cfg.FFprobePath, in)
		if err != nil {
			b.log.Debug("probe failed, progress limited to completion: %v", err)
		} else {
			total = pr.DurationMicros()
			b.log.Debug("source: %s %s, %.1fs, interlaced=%v",
				videoCodec(pr), pr.Resolution(), pr.Format.Duration, pr.IsInterlaced())
		}
	}

	args := BuildArgs(b.cfg.FFmpegPath, b.cfg.FFmpegLogLevel, paths, op.Args)
	b.log.Debug("%s: %s", op.Name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderrBuf bytes.Buffer
	if b.cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	ended := parseProgress(stdout, total, func(r float64) {
		if progress != nil {
			progress(r)
		}
	})
	err = cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return newExecError(stderrBuf.String(), err)
	}
	if !ended {
		b.log.Debug("%s: progress stream closed without progress=end", op.Name)
	}
	// progress=end is also written by runs that go on to fail, so completion
	// is reported only after a clean exit.
	if progress != nil {
		progress(1)
	}

	data, err := ws.Take(engine.OutputName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output: %w", err)
	}
	scratch.Write(engine.OutputName, data)
	return nil
}

// Close releases the work directory lock.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ws == nil {
		return nil
	}
	err := b.ws.Close()
	b.ws = nil
	return err
}

func videoCodec(pr *probe.ProbeResult) string {
	if pr.PrimaryVideo == nil {
		return "no video"
	}
	return pr.PrimaryVideo.Codec
}
