package store

import (
	"sync"

	"github.com/goliatone/go-formstate/pkg/value"
)

// Store keeps the two value buffers of a form: the instant buffer tracks live
// edits, the saved buffer holds the snapshot taken by the last save. Reads
// fall back to the initial value when the selected buffer has no entry.
type Store struct {
	mu      sync.RWMutex
	instant map[string]any
	saved   map[string]any
	initial value.Value
}

// New constructs an empty store backed by initial for fallback reads.
func New(initial value.Value) *Store {
	return &Store{
		instant: make(map[string]any),
		saved:   make(map[string]any),
		initial: initial,
	}
}

// Initial returns the fallback value supplied at construction.
func (s *Store) Initial() value.Value {
	return s.initial
}

// SetInstant overwrites the instant entry for name.
func (s *Store) SetInstant(name string, v any) {
	s.mu.Lock()
	s.instant[name] = v
	s.mu.Unlock()
}

// RemoveInstant deletes the instant entry for name.
func (s *Store) RemoveInstant(name string) {
	s.mu.Lock()
	delete(s.instant, name)
	s.mu.Unlock()
}

// RemoveSaved deletes the saved entry for name.
func (s *Store) RemoveSaved(name string) {
	s.mu.Lock()
	delete(s.saved, name)
	s.mu.Unlock()
}

// HasInstant reports whether the instant buffer holds an entry for name.
func (s *Store) HasInstant(name string) bool {
	s.mu.RLock()
	_, ok := s.instant[name]
	s.mu.RUnlock()
	return ok
}

// Raw returns the instant or saved entry for name, falling back to the
// initial value's entry. The boolean is false when neither source has one.
func (s *Store) Raw(name string, fromSaved bool) (any, bool) {
	s.mu.RLock()
	buffer := s.instant
	if fromSaved {
		buffer = s.saved
	}
	v, ok := buffer[name]
	s.mu.RUnlock()
	if ok {
		return v, true
	}
	return s.initial.Lookup(name)
}

// SnapshotToSaved replaces the saved buffer with a deep copy of the instant
// buffer.
func (s *Store) SnapshotToSaved() {
	s.mu.Lock()
	s.saved = value.Clone(s.instant)
	s.mu.Unlock()
}

// Instant returns a copy of the instant buffer.
func (s *Store) Instant() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return value.Clone(s.instant)
}

// Saved returns a copy of the saved buffer.
func (s *Store) Saved() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return value.Clone(s.saved)
}
