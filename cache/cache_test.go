package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGetExpire(t *testing.T) {
	c := New(Config{Enabled: true, CleanupInterval: time.Minute})
	defer c.Stop()

	c.Set("k", "v", 20*time.Millisecond)
	value, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entries must not be returned")
}

func TestCacheMaxSizeEviction(t *testing.T) {
	c := New(Config{Enabled: true, MaxCacheSize: 2, CleanupInterval: time.Minute})
	defer c.Stop()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, 2*time.Minute)
	c.Set("c", 3, 3*time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok, "the entry expiring soonest is evicted first")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestMarketDataCacheKeysAndTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarketDataTTL = 20 * time.Millisecond
	m := NewMarketDataCacheWithConfig(cfg)
	defer m.Stop()

	m.SetTicker("Globitex", "BTC/EUR", "ticker-value")
	value, ok := m.GetTicker("Globitex", "BTC/EUR")
	require.True(t, ok)
	assert.Equal(t, "ticker-value", value)

	_, ok = m.GetTicker("Globitex", "ETH/EUR")
	assert.False(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = m.GetTicker("Globitex", "BTC/EUR")
	assert.False(t, ok, "tickers expire on the market data TTL")

	m.SetMarkets("Globitex", []string{"BTC/EUR"})
	_, ok = m.GetMarkets("Globitex")
	assert.True(t, ok, "the instrument table lives on the longer markets TTL")
}

func TestMarketDataCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	m := NewMarketDataCacheWithConfig(cfg)
	defer m.Stop()

	m.SetTicker("Globitex", "BTC/EUR", "ticker-value")
	_, ok := m.GetTicker("Globitex", "BTC/EUR")
	assert.False(t, ok)
}
