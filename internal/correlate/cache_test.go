package correlate

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)}
}

func TestCache_TakeBeforeTimeout(t *testing.T) {
	clock := newClock()
	cache := NewCache[string](10*time.Second, clock.Now)
	key := Key{Actor: "A", Target: "T"}

	cache.Put(key, "payload")
	clock.Advance(9 * time.Second)

	got, ok := cache.Take(key)
	if !ok || got != "payload" {
		t.Fatalf("expected payload, got %q/%v", got, ok)
	}
	if _, ok := cache.Take(key); ok {
		t.Fatalf("expected second take to miss")
	}
}

func TestCache_TakeAfterTimeoutMisses(t *testing.T) {
	clock := newClock()
	cache := NewCache[string](10*time.Second, clock.Now)
	key := Key{Actor: "A", Target: "T"}

	cache.Put(key, "payload")
	clock.Advance(10*time.Second + time.Millisecond)

	if _, ok := cache.Take(key); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len=%d", cache.Len())
	}
}

func TestCache_LastWriteWins(t *testing.T) {
	clock := newClock()
	cache := NewCache[int](10*time.Second, clock.Now)
	key := Key{Actor: "A", Target: "T"}

	cache.Put(key, 1)
	clock.Advance(8 * time.Second)
	cache.Put(key, 2)
	clock.Advance(8 * time.Second)

	got, ok := cache.Take(key)
	if !ok || got != 2 {
		t.Fatalf("expected refreshed value 2, got %d/%v", got, ok)
	}
}

func TestCache_Sweep(t *testing.T) {
	clock := newClock()
	cache := NewCache[int](10*time.Second, clock.Now)

	cache.Put(Key{Actor: "old"}, 1)
	clock.Advance(6 * time.Second)
	cache.Put(Key{Actor: "new"}, 2)
	clock.Advance(5 * time.Second)

	if removed := cache.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := cache.Take(Key{Actor: "new"}); !ok {
		t.Fatalf("expected fresh entry to survive sweep")
	}
}

func TestCache_PutSweepsExpired(t *testing.T) {
	clock := newClock()
	cache := NewCache[int](time.Second, clock.Now)

	cache.Put(Key{Actor: "a"}, 1)
	clock.Advance(2 * time.Second)
	cache.Put(Key{Actor: "b"}, 2)

	if cache.Len() != 1 {
		t.Fatalf("expected write to evict the expired entry, len=%d", cache.Len())
	}
}
