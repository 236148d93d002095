package cache

import (
	"time"
)

// Config represents cache configuration settings
type Config struct {
	// Enabled determines if caching is enabled
	Enabled bool

	// DefaultTTL is the default time-to-live for cached items
	DefaultTTL time.Duration

	// MarketDataTTL is the time-to-live for tickers and order books
	MarketDataTTL time.Duration

	// MarketsTTL is the time-to-live for the instrument table
	MarketsTTL time.Duration

	// MaxCacheSize is the maximum number of items in the cache (0 = unlimited)
	MaxCacheSize int

	// CleanupInterval is the interval at which expired items are cleaned up
	CleanupInterval time.Duration
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultTTL:      time.Hour,
		MarketDataTTL:   5 * time.Second, // tickers and books go stale quickly
		MarketsTTL:      30 * time.Minute,
		MaxCacheSize:    10000, // Limit to 10,000 items
		CleanupInterval: time.Minute,
	}
}
