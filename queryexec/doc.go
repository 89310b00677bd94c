// Package queryexec executes remote read queries with result memoization.
//
// It wraps a caller-owned RemoteExecutor and a set of Formatters behind a
// bounded, policy-driven querycache.Cache: hits are served locally, misses
// execute remotely, are formatted, and populate the cache. Remote and
// formatter errors are never cached.
package queryexec
