package querycache

import (
	"sync"
	"time"
)

// entry is a cached value with its TTL bookkeeping.
type entry struct {
	value      []byte
	insertedAt time.Time
}

// engine is the cache implementation shared by all policies. Eviction
// decisions are delegated to the configured strategy; storage, TTL checks,
// locking, and defensive copies are common.
type engine struct {
	mu      sync.Mutex
	entries map[string]*entry
	strat   strategy
	ttl     time.Duration
	maxSize int

	now func() time.Time // overridden in tests
}

func newEngine(s strategy, ttl time.Duration, maxSize int) *engine {
	return &engine{
		entries: make(map[string]*entry, maxSize),
		strat:   s,
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get retrieves a copy of the cached value. An entry whose age has reached
// the TTL is removed here, lazily; there is no background sweep.
func (e *engine) Get(key string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.entries[key]
	if !ok {
		return nil, false
	}
	if e.now().Sub(ent.insertedAt) >= e.ttl {
		delete(e.entries, key)
		e.strat.onRemove(key)
		return nil, false
	}

	e.strat.onAccess(key)
	return cloneBytes(ent.value), true
}

// Set inserts or wholesale-replaces the value for key, timestamped now.
// A new key at capacity evicts exactly one victim first; overwriting an
// existing key never evicts.
func (e *engine) Set(key string, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, exists := e.entries[key]
	if !exists && len(e.entries) >= e.maxSize {
		v := e.strat.victim()
		delete(e.entries, v)
		e.strat.onRemove(v)
	}

	e.entries[key] = &entry{value: cloneBytes(value), insertedAt: e.now()}
	e.strat.onInsert(key, exists)
}

// Invalidate removes key if present. No eviction bookkeeping runs.
func (e *engine) Invalidate(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.entries[key]; !ok {
		return false
	}
	delete(e.entries, key)
	e.strat.onRemove(key)
	return true
}

// Clear removes all entries.
func (e *engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = make(map[string]*entry, e.maxSize)
	e.strat.reset()
}

// Size returns the current entry count.
func (e *engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.entries)
}

// cloneBytes copies values in and out so callers never hold a mutable
// alias into the cache.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Ensure engine implements Cache
var _ Cache = (*engine)(nil)
