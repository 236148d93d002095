package cache

import (
	"fmt"
)

// MarketDataCache is a typed cache for the read-heavy unified calls:
// tickers, order books, and the instrument table.
type MarketDataCache struct {
	cache  *Cache
	config Config
}

// NewMarketDataCache creates a new market data cache with default configuration
func NewMarketDataCache() *MarketDataCache {
	return NewMarketDataCacheWithConfig(DefaultConfig())
}

// NewMarketDataCacheWithConfig creates a new market data cache with the given configuration
func NewMarketDataCacheWithConfig(config Config) *MarketDataCache {
	return &MarketDataCache{
		cache:  New(config),
		config: config,
	}
}

// TickerKey generates a cache key for one symbol's ticker
func (m *MarketDataCache) TickerKey(exchange, symbol string) string {
	return fmt.Sprintf("ticker:%s:%s", exchange, symbol)
}

// OrderBookKey generates a cache key for one symbol's book at a given depth
func (m *MarketDataCache) OrderBookKey(exchange, symbol string, depth int) string {
	return fmt.Sprintf("orderbook:%s:%s:%d", exchange, symbol, depth)
}

// MarketsKey generates a cache key for a venue's instrument table
func (m *MarketDataCache) MarketsKey(exchange string) string {
	return fmt.Sprintf("markets:%s", exchange)
}

// SetTicker caches a ticker for the market data TTL
func (m *MarketDataCache) SetTicker(exchange, symbol string, ticker interface{}) {
	if !m.config.Enabled {
		return
	}
	m.cache.Set(m.TickerKey(exchange, symbol), ticker, m.config.MarketDataTTL)
}

// GetTicker retrieves a cached ticker
func (m *MarketDataCache) GetTicker(exchange, symbol string) (interface{}, bool) {
	return m.cache.Get(m.TickerKey(exchange, symbol))
}

// SetOrderBook caches an order book for the market data TTL
func (m *MarketDataCache) SetOrderBook(exchange, symbol string, depth int, book interface{}) {
	if !m.config.Enabled {
		return
	}
	m.cache.Set(m.OrderBookKey(exchange, symbol, depth), book, m.config.MarketDataTTL)
}

// GetOrderBook retrieves a cached order book
func (m *MarketDataCache) GetOrderBook(exchange, symbol string, depth int) (interface{}, bool) {
	return m.cache.Get(m.OrderBookKey(exchange, symbol, depth))
}

// SetMarkets caches a venue's instrument table for the markets TTL
func (m *MarketDataCache) SetMarkets(exchange string, markets interface{}) {
	if !m.config.Enabled {
		return
	}
	m.cache.Set(m.MarketsKey(exchange), markets, m.config.MarketsTTL)
}

// GetMarkets retrieves a cached instrument table
func (m *MarketDataCache) GetMarkets(exchange string) (interface{}, bool) {
	return m.cache.Get(m.MarketsKey(exchange))
}

// Clear clears all cached market data
func (m *MarketDataCache) Clear() {
	m.cache.Clear()
}

// Stop stops the cache's background processes
func (m *MarketDataCache) Stop() {
	m.cache.Stop()
}

// IsEnabled returns whether caching is enabled
func (m *MarketDataCache) IsEnabled() bool {
	return m.config.Enabled
}
