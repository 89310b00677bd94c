package queryexec

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/queryops/querycache"
)

// Config holds the caching configuration for an Executor.
type Config struct {
	// Enabled toggles result caching. Changes take effect on the next
	// Execute call.
	Enabled bool `env:"QUERYOPS_CACHE_ENABLED" envDefault:"true"`

	// TTL is the maximum entry age before a cached result is treated as
	// absent.
	TTL time.Duration `env:"QUERYOPS_CACHE_TTL" envDefault:"5m"`

	// MaxSize bounds the number of cached entries.
	MaxSize int `env:"QUERYOPS_CACHE_MAX_SIZE" envDefault:"100"`

	// Policy selects the eviction strategy. Names are matched
	// case-insensitively.
	Policy querycache.Policy `env:"QUERYOPS_CACHE_POLICY" envDefault:"lru"`

	// DefaultFormat is used when Execute is called with an empty format id.
	DefaultFormat string `env:"QUERYOPS_DEFAULT_FORMAT" envDefault:"json"`
}

// DefaultConfig returns the default configuration: caching enabled, 5
// minute TTL, 100 entries, LRU eviction.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		TTL:           5 * time.Minute,
		MaxSize:       100,
		Policy:        querycache.PolicyLRU,
		DefaultFormat: "json",
	}
}

// FromEnv loads configuration from QUERYOPS_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range cache parameters and normalizes the policy
// name. It runs before any configuration is applied, so a failure leaves
// prior state untouched.
func (c *Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfig, c.TTL)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidConfig, c.MaxSize)
	}
	p, err := querycache.ParsePolicy(string(c.Policy))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.Policy = p
	return nil
}

// cacheParamsChanged reports whether applying next requires discarding and
// rebuilding the cache.
func (c Config) cacheParamsChanged(next Config) bool {
	return c.Enabled != next.Enabled ||
		c.TTL != next.TTL ||
		c.MaxSize != next.MaxSize ||
		c.Policy != next.Policy
}
