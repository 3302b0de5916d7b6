package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockName is the lock file held inside the work directory.
const LockName = "mtsmux.lock"

// ErrWorkDirLocked means another process holds the work directory.
var ErrWorkDirLocked = errors.New("work directory is in use by another mtsmux process")

// Workspace is a locked directory where scratch entries are materialized
// as files for the duration of one operation.
type Workspace struct {
	dir  string
	lock *flock.Flock
}

// OpenWorkspace creates dir if needed and takes its lock without blocking.
func OpenWorkspace(dir string) (*Workspace, error) {
	if dir == "" {
		return nil, errors.New("work directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock work directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkDirLocked, dir)
	}
	return &Workspace{dir: dir, lock: lock}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the file path used for scratch entry name.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

// Put writes data as the file for name and returns its path.
func (w *Workspace) Put(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("materialize %s: %w", name, err)
	}
	return p, nil
}

// Take reads the file for name and removes it.
func (w *Workspace) Take(name string) ([]byte, error) {
	p := w.Path(name)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	_ = os.Remove(p)
	return data, nil
}

// Discard removes the files for names, ignoring ones that do not exist.
func (w *Workspace) Discard(names ...string) {
	for _, n := range names {
		_ = os.Remove(w.Path(n))
	}
}

// Close releases the lock. The directory itself is left in place.
func (w *Workspace) Close() error {
	if w.lock == nil {
		return nil
	}
	err := w.lock.Unlock()
	w.lock = nil
	return err
}
