package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver picks output paths that neither exist on disk nor were
// handed out earlier by the same resolver. Duplicates get " - dupN"
// suffixes. All methods are goroutine-safe.
type CollisionResolver struct {
	mu      sync.Mutex
	claimed map[string]bool
	exists  func(string) bool
}

// NewCollisionResolver creates a resolver that checks the filesystem.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		claimed: make(map[string]bool),
		exists:  fileExists,
	}
}

// Resolve returns requested if it is free, otherwise the first free
// "<stem> - dupN<ext>" variant, starting at N=1.
func (cr *CollisionResolver) Resolve(requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.taken(requested) {
		cr.claimed[requested] = true
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		if !cr.taken(candidate) {
			cr.claimed[candidate] = true
			return candidate
		}
	}
}

func (cr *CollisionResolver) taken(path string) bool {
	return cr.claimed[path] || cr.exists(path)
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
