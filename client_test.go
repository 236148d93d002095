package gounify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gounify/cache"
	"github.com/evdnx/gounify/exchange"
)

func TestUnifiedClientCachesTickers(t *testing.T) {
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock)
	defer client.Stop()

	first, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, first.Timestamp, second.Timestamp, "second read must come from cache")
}

func TestUnifiedClientWithoutCache(t *testing.T) {
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock, WithoutClientCache())
	defer client.Stop()

	first, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)
	assert.NotEqual(t, first.Timestamp, second.Timestamp, "uncached reads hit the adapter every time")
}

func TestUnifiedClientCacheConfigDisabled(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.Enabled = false
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock, WithCacheConfig(cfg))
	defer client.Stop()

	first, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := client.GetTicker("BTC/USDT")
	require.NoError(t, err)
	assert.NotEqual(t, first.Timestamp, second.Timestamp)
}

func TestUnifiedClientPanicsWithoutAdapter(t *testing.T) {
	assert.Panics(t, func() { NewUnifiedClient(nil) })
}

func TestUnifiedClientOrderLifecycle(t *testing.T) {
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock, WithoutClientCache())
	defer client.Stop()

	order, err := client.CreateOrder("BTC/USDT", exchange.OrderTypeLimit, exchange.OrderSideBuy, 1, exchange.Float(100), exchange.CreateOrderOptions{})
	require.NoError(t, err)
	assert.Equal(t, exchange.OrderStatusOpen, order.Status)

	open, err := client.GetOpenOrders("BTC/USDT", nil)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	canceled, err := client.CancelOrder(order.ID, "BTC/USDT", nil)
	require.NoError(t, err)
	assert.Equal(t, exchange.OrderStatusCanceled, canceled.Status)

	open, err = client.GetOpenOrders("BTC/USDT", nil)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestUnifiedClientEditOrderReplaces(t *testing.T) {
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock, WithoutClientCache())
	defer client.Stop()

	original, err := client.CreateOrder("BTC/USDT", exchange.OrderTypeLimit, exchange.OrderSideBuy, 1, exchange.Float(100), exchange.CreateOrderOptions{})
	require.NoError(t, err)

	replacement, err := client.EditOrder(original.ID, "BTC/USDT", exchange.OrderTypeLimit, exchange.OrderSideBuy, 2, exchange.Float(101), exchange.CreateOrderOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, replacement.ID)

	stale, err := client.GetOrder(original.ID, "BTC/USDT", nil)
	require.NoError(t, err)
	assert.Equal(t, exchange.OrderStatusCanceled, stale.Status)
}

func TestUnifiedClientFundingRateUnsupported(t *testing.T) {
	mock := NewMockClient("mock")
	client := NewUnifiedClient(mock, WithoutClientCache())
	defer client.Stop()

	_, err := client.GetFundingRate("BTC/USDT", nil)
	assert.True(t, IsNotSupported(err))
}
