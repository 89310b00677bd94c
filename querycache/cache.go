package querycache

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Policy selects the eviction strategy used when the cache is full.
type Policy string

// Supported eviction policies.
const (
	PolicyLRU  Policy = "lru"
	PolicyLFU  Policy = "lfu"
	PolicyFIFO Policy = "fifo"
)

// Sentinel errors for cache construction.
var (
	ErrUnknownPolicy  = errors.New("querycache: unknown eviction policy")
	ErrInvalidTTL     = errors.New("querycache: ttl must be positive")
	ErrInvalidMaxSize = errors.New("querycache: max size must be positive")
)

// ParsePolicy parses a policy name. Matching is case-insensitive.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(s)); p {
	case PolicyLRU, PolicyLFU, PolicyFIFO:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Cache is the interface for bounded, TTL-aware caches of formatted query
// results.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: all operations are total; absence is expressed via return values.
// - Ownership: values are copied in and out; callers never share a mutable
//   alias with the cache.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss or expiry.
	Get(key string) ([]byte, bool)

	// Set inserts or wholesale-replaces the entry for key. Inserting a new
	// key at capacity evicts exactly one victim first; overwrites never
	// evict.
	Set(key string, value []byte)

	// Invalidate removes the entry if present and reports whether it did.
	Invalidate(key string) bool

	// Clear removes all entries.
	Clear()

	// Size returns the current entry count.
	Size() int
}

// New creates a cache bounded to maxSize entries whose entries expire ttl
// after their last Set, evicting per the given policy when full. The policy
// name is matched case-insensitively.
func New(policy Policy, ttl time.Duration, maxSize int) (Cache, error) {
	p, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if maxSize <= 0 {
		return nil, ErrInvalidMaxSize
	}

	var s strategy
	switch p {
	case PolicyLRU:
		s = newLRUStrategy()
	case PolicyLFU:
		s = newLFUStrategy()
	case PolicyFIFO:
		s = newFIFOStrategy()
	}
	return newEngine(s, ttl, maxSize), nil
}
