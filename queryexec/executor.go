package queryexec

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/queryops/querycache"
)

// RemoteExecutor performs the actual expensive query against a backing
// service.
//
// Contract:
// - Blocking: Execute may block on I/O and must honor ctx cancellation.
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: failures are returned to the caller unchanged; the executor
//   never caches or retries them.
type RemoteExecutor interface {
	Execute(ctx context.Context, query, endpoint string) ([]byte, error)
}

// RemoteExecutorFunc adapts a function to the RemoteExecutor interface.
type RemoteExecutorFunc func(ctx context.Context, query, endpoint string) ([]byte, error)

// Execute calls f.
func (f RemoteExecutorFunc) Execute(ctx context.Context, query, endpoint string) ([]byte, error) {
	return f(ctx, query, endpoint)
}

// Formatter shapes a raw query result into a named presentation format.
//
// Contract:
// - Purity: Format must not retain or mutate raw.
// - Concurrency: implementations must be safe for concurrent use.
type Formatter interface {
	Format(raw []byte, query string) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(raw []byte, query string) ([]byte, error)

// Format calls f.
func (f FormatterFunc) Format(raw []byte, query string) ([]byte, error) {
	return f(raw, query)
}

// Stats describes the executor's current cache state.
type Stats struct {
	Enabled    bool   `json:"enabled"`
	Size       int    `json:"size"`
	MaxSize    int    `json:"max_size"`
	TTLSeconds int    `json:"ttl"`
	Policy     string `json:"policy"`
}

// Executor memoizes formatted results of remote read queries.
//
// Contract:
// - Concurrency: safe for concurrent use. Concurrent misses on the same
//   key may each call the remote unless WithSingleFlight is set.
// - Errors: a cache hit never fails; on a miss, remote errors propagate
//   unchanged and are never cached.
type Executor struct {
	remote     RemoteExecutor
	formatters map[string]Formatter
	keyer      querycache.Keyer
	logger     zerolog.Logger
	tel        *telemetry
	sf         *singleflight.Group

	// set via options, consumed once during construction
	meter  metric.Meter
	tracer trace.Tracer

	mu    sync.RWMutex
	cfg   Config
	cache querycache.Cache
}

// New creates an Executor around the given remote and formatter set. The
// formatter map is keyed by format id and copied; the remote and the
// formatters are shared references owned by the caller.
func New(remote RemoteExecutor, formatters map[string]Formatter, cfg Config, opts ...Option) (*Executor, error) {
	if remote == nil {
		return nil, ErrNilRemote
	}
	if len(formatters) == 0 {
		return nil, ErrNoFormatters
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ex := &Executor{
		remote:     remote,
		formatters: make(map[string]Formatter, len(formatters)),
		keyer:      querycache.NewDefaultKeyer(),
		logger:     zerolog.Nop(),
		cfg:        cfg,
	}
	for id, f := range formatters {
		ex.formatters[id] = f
	}
	for _, opt := range opts {
		opt(ex)
	}

	tel, err := newTelemetry(ex.meter, ex.tracer)
	if err != nil {
		return nil, err
	}
	ex.tel = tel

	if cfg.Enabled {
		c, err := querycache.New(cfg.Policy, cfg.TTL, cfg.MaxSize)
		if err != nil {
			return nil, err
		}
		ex.cache = c
	}
	return ex, nil
}

// Execute runs the query against endpoint and returns the result shaped by
// the formatter registered for format. An empty format id falls back to the
// configured default. With caching enabled, an unexpired cached result
// short-circuits the remote call entirely.
func (ex *Executor) Execute(ctx context.Context, query, endpoint, format string) ([]byte, error) {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	ex.mu.RLock()
	cache := ex.cache
	enabled := ex.cfg.Enabled
	if format == "" {
		format = ex.cfg.DefaultFormat
	}
	ex.mu.RUnlock()

	formatter, ok := ex.formatters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	ctx, span := ex.tel.startSpan(ctx, endpoint, format)
	defer span.End()

	var key string
	if enabled && cache != nil {
		key = ex.keyer.Key(query, endpoint, format)
		if value, ok := cache.Get(key); ok {
			ex.logger.Debug().
				Str("endpoint", endpoint).
				Str("format", format).
				Str("query", truncateQuery(query)).
				Msg("cache hit")
			ex.tel.record(ctx, endpoint, time.Since(start), nil)
			return value, nil
		}
		ex.logger.Debug().
			Str("endpoint", endpoint).
			Str("format", format).
			Str("query", truncateQuery(query)).
			Msg("cache miss")
	}

	var value []byte
	var err error
	if ex.sf != nil && key != "" {
		v, sfErr, _ := ex.sf.Do(key, func() (any, error) {
			return ex.fetchAndStore(ctx, formatter, query, endpoint, key, cache)
		})
		if sfErr == nil {
			value = v.([]byte)
		}
		err = sfErr
	} else {
		value, err = ex.fetchAndStore(ctx, formatter, query, endpoint, key, cache)
	}

	ex.tel.record(ctx, endpoint, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// fetchAndStore performs the remote call, formats the raw result, and
// populates the cache. Errors from either step skip the cache entirely.
func (ex *Executor) fetchAndStore(ctx context.Context, formatter Formatter, query, endpoint, key string, cache querycache.Cache) ([]byte, error) {
	raw, err := ex.remote.Execute(ctx, query, endpoint)
	if err != nil {
		return nil, err
	}

	value, err := formatter.Format(raw, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if cache != nil && key != "" {
		cache.Set(key, value)
	}
	return value, nil
}

// UpdateConfig applies a new configuration. Invalid configurations are
// rejected before any state changes. When Enabled, TTL, MaxSize, or Policy
// change, the existing cache is discarded and a fresh empty one is built;
// stale entries are never migrated. Otherwise the cache instance is left
// untouched.
func (ex *Executor) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if !ex.cfg.cacheParamsChanged(cfg) {
		ex.cfg = cfg
		return nil
	}

	var next querycache.Cache
	if cfg.Enabled {
		c, err := querycache.New(cfg.Policy, cfg.TTL, cfg.MaxSize)
		if err != nil {
			return err
		}
		next = c
	}
	ex.cfg = cfg
	ex.cache = next

	ex.logger.Info().
		Bool("enabled", cfg.Enabled).
		Str("policy", string(cfg.Policy)).
		Dur("ttl", cfg.TTL).
		Int("max_size", cfg.MaxSize).
		Msg("query cache rebuilt")
	return nil
}

// ClearCache drops all cached entries. No-op when caching is disabled.
func (ex *Executor) ClearCache() {
	ex.mu.RLock()
	cache := ex.cache
	ex.mu.RUnlock()

	if cache != nil {
		cache.Clear()
		ex.logger.Info().Msg("query cache cleared")
	}
}

// Stats reports the executor's current cache state.
func (ex *Executor) Stats() Stats {
	ex.mu.RLock()
	defer ex.mu.RUnlock()

	if !ex.cfg.Enabled || ex.cache == nil {
		return Stats{Enabled: false}
	}
	return Stats{
		Enabled:    true,
		Size:       ex.cache.Size(),
		MaxSize:    ex.cfg.MaxSize,
		TTLSeconds: int(ex.cfg.TTL / time.Second),
		Policy:     string(ex.cfg.Policy),
	}
}

// truncateQuery caps query text in log lines.
func truncateQuery(q string) string {
	const max = 50
	if len(q) <= max {
		return q
	}
	return q[:max]
}
