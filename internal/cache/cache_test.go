package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("neo:feed:a:b", map[string]int{"count": 3}); err != nil {
		t.Fatal(err)
	}

	var got map[string]int
	ok, err := s.Get("neo:feed:a:b", &got)
	if err != nil || !ok {
		t.Fatalf("Expected fresh hit, ok=%v err=%v", ok, err)
	}
	if got["count"] != 3 {
		t.Errorf("Unexpected cached value: %v", got)
	}

	// A second Open must see the persisted entry.
	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	ok, err = reopened.Get("neo:feed:a:b", &got)
	if err != nil || !ok {
		t.Fatalf("Expected hit after reopen, ok=%v err=%v", ok, err)
	}
}

func TestStore_MissForUnknownKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatal(err)
	}
	var v struct{}
	if ok, _ := s.Get("missing", &v); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestStore_StaleEntryIsMiss(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatal(err)
	}
	fake := clockwork.NewFakeClock()
	s.SetClock(fake)

	if err := s.Put("k", "v"); err != nil {
		t.Fatal(err)
	}
	fake.Advance(StaleAfter - time.Minute)
	var v string
	if ok, _ := s.Get("k", &v); !ok {
		t.Error("Entry inside the staleness window should hit")
	}
	fake.Advance(2 * time.Minute)
	if ok, _ := s.Get("k", &v); ok {
		t.Error("Entry older than one hour should be a miss")
	}
}
