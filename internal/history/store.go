// Bounded, append-only log of completed simulation runs
package history

import (
	"sync"

	"meteorsim/internal/impact"
)

// DefaultCapacity is the number of entries retained; older runs are evicted
// by count, not by age.
const DefaultCapacity = 10

// Entry snapshots one completed run: the parameters that produced it and the
// result. Entries are never mutated after creation.
type Entry struct {
	ID     string                    `json:"id"`
	Params impact.AsteroidParameters `json:"params"`
	Result impact.SimulationResult   `json:"result"`
}

// Store keeps the most recent entries newest-first. Append-then-truncate is
// atomic under the store's lock so the capacity invariant holds for
// concurrent writers.
type Store struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewStore creates a store with the given capacity; values below one fall
// back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append prepends e and discards anything beyond the capacity.
func (s *Store) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

// All returns a copy of the entries, newest first.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Load copies out the entry with the given id. ok is false when no such
// entry is retained.
func (s *Store) Load(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len reports the current number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
