// File-backed key/value cache used by the data-fetch layer
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// StaleAfter is how long an entry stays fresh. Consumers treat anything
// older as a miss.
const StaleAfter = time.Hour

type record struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"ts"` // milliseconds since epoch
}

// Store persists key/value pairs with millisecond timestamps to a single
// JSON file. The engine never touches it; only fetch-layer clients do.
type Store struct {
	mu      sync.Mutex
	path    string
	clock   clockwork.Clock
	records map[string]record
}

// Open loads (or initializes) a cache file at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path, clock: clockwork.NewRealClock(), records: map[string]record{}}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	if err := json.Unmarshal(b, &s.records); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return s, nil
}

// SetClock swaps the time source; tests freeze time with a fake clock.
func (s *Store) SetClock(c clockwork.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		c = clockwork.NewRealClock()
	}
	s.clock = c
}

// Get unmarshals the fresh value for key into v. ok is false on a miss or
// when the entry is older than StaleAfter.
func (s *Store) Get(key string, v any) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, found := s.records[key]
	if !found {
		return false, nil
	}
	age := s.clock.Now().UnixMilli() - r.Timestamp
	if age > StaleAfter.Milliseconds() {
		return false, nil
	}
	if err := json.Unmarshal(r.Value, v); err != nil {
		return false, fmt.Errorf("decode cached value: %w", err)
	}
	return true, nil
}

// Put stores v under key with the current millisecond timestamp and persists
// the whole store to disk.
func (s *Store) Put(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	s.records[key] = record{Value: raw, Timestamp: s.clock.Now().UnixMilli()}
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	b, err := json.Marshal(s.records)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}
