// Package sink delivers a successful conversion: it saves the MP4 into the
// output directory and optionally opens it in the platform player.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gabriel-vasile/mimetype"

	"github.com/backmassage/mtsmux/internal/naming"
	"github.com/backmassage/mtsmux/internal/pipeline"
)

// ErrNoResult is returned by Save for a nil or empty result.
var ErrNoResult = errors.New("no result to save")

// Save writes res.Data to dir/res.FileName and returns the path. Without
// overwrite an existing file is kept and a " - dupN" name is used instead.
// The file is written to a temporary name first and renamed into place.
func Save(res *pipeline.Result, dir string, overwrite bool) (string, error) {
	if res == nil || len(res.Data) == 0 {
		return "", ErrNoResult
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	target := naming.GetOutputPath(dir, res.FileName)
	if !overwrite {
		target = naming.NewCollisionResolver().Resolve(target)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".mtsmux-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(res.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename output: %w", err)
	}
	return target, nil
}

// VerifyMIME sniffs data and returns the detected type and whether it is
// an MP4 container.
func VerifyMIME(data []byte) (string, bool) {
	mt := mimetype.Detect(data)
	return mt.String(), mt.Is(pipeline.MIMEType)
}

// opener returns the platform command that opens a file in its default
// application.
func opener() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		return "xdg-open", nil
	}
}

// startCommand is replaced in tests. The player outlives this process, so
// it is not bound to ctx.
var startCommand = func(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Preview opens path in the platform player without waiting for it.
func Preview(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := opener()
	if err := startCommand(ctx, name, append(args, path)...); err != nil {
		return fmt.Errorf("preview %s: %w", filepath.Base(path), err)
	}
	return nil
}
