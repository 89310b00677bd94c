// Package querycache provides bounded, TTL-aware caching of formatted
// query results.
//
// It provides a Cache interface backed by a single engine with three
// swappable eviction strategies (LRU, LFU, FIFO), plus SHA-256-based key
// derivation over (query, endpoint, format).
package querycache
