package queryexec

import "errors"

// Sentinel errors for executor operations.
var (
	// ErrEmptyQuery is returned when Execute is called with a blank query.
	ErrEmptyQuery = errors.New("queryexec: query is empty")

	// ErrUnknownFormat is returned when no formatter is registered for the
	// requested format id.
	ErrUnknownFormat = errors.New("queryexec: unknown result format")

	// ErrFormat wraps formatter failures. Failed formats are never cached.
	ErrFormat = errors.New("queryexec: formatting failed")

	// ErrInvalidConfig wraps configuration validation failures. A rejected
	// configuration leaves the prior configuration and cache active.
	ErrInvalidConfig = errors.New("queryexec: invalid configuration")

	// ErrNilRemote is returned by New when no RemoteExecutor is supplied.
	ErrNilRemote = errors.New("queryexec: remote executor is nil")

	// ErrNoFormatters is returned by New when no formatters are registered.
	ErrNoFormatters = errors.New("queryexec: no formatters registered")
)
