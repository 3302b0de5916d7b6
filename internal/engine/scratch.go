package engine

import (
	"sort"
	"sync"
)

// Scratch entry names shared by plans and backends.
const (
	InputName  = "input"
	OutputName = "output"
)

// Scratch is the engine's private name → bytes store. It is the only data
// channel between the orchestrator and a backend. No path semantics are
// implied beyond key lookup.
type Scratch struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewScratch returns an empty scratch store.
func NewScratch() *Scratch {
	return &Scratch{files: make(map[string][]byte)}
}

// Write stores data under name, replacing any previous entry. The slice is
// retained, not copied.
func (s *Scratch) Write(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
}

// Read returns the entry for name and whether it exists.
func (s *Scratch) Read(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}

// Remove deletes name. Removing an absent entry is a successful no-op.
func (s *Scratch) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
}

// Has reports whether name exists.
func (s *Scratch) Has(name string) bool {
	_, ok := s.Read(name)
	return ok
}

// Names returns the current entry names, sorted.
func (s *Scratch) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Size returns the total bytes held.
func (s *Scratch) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.files {
		n += int64(len(b))
	}
	return n
}
