package gounify

import (
	"fmt"

	"github.com/evdnx/golog"
	"github.com/evdnx/gounify/cache"
	"github.com/evdnx/gounify/exchange"
	"github.com/evdnx/gounify/internal/logutil"
	"github.com/evdnx/gounify/models"
)

const unifiedClientComponent = "unified_client"

// UnifiedClientOption configures a UnifiedClient
type UnifiedClientOption func(*UnifiedClient)

// UnifiedClient wraps a venue adapter with read caching for market data and
// exposes the cross-venue composite operations. It performs no retry of its
// own: transient transport failures are the HTTP client's concern, and
// everything else propagates to the caller unchanged.
type UnifiedClient struct {
	exchange exchange.Client
	logger   *golog.Logger

	cacheEnabled bool
	cacheConfig  cache.Config
	cacheStore   *cache.MarketDataCache
}

// NewUnifiedClient creates a new unified client around one adapter.
func NewUnifiedClient(client exchange.Client, opts ...UnifiedClientOption) *UnifiedClient {
	if client == nil {
		panic("an exchange client is required for UnifiedClient")
	}

	c := &UnifiedClient{
		exchange:     client,
		logger:       logutil.Default(),
		cacheEnabled: true,
		cacheConfig:  cache.DefaultConfig(),
	}
	c.cacheStore = cache.NewMarketDataCacheWithConfig(c.cacheConfig)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithCacheConfig overrides cache behavior
func WithCacheConfig(cfg cache.Config) UnifiedClientOption {
	return func(c *UnifiedClient) {
		c.cacheConfig = cfg
		c.cacheEnabled = cfg.Enabled
		c.rebuildCache()
	}
}

// WithoutClientCache disables caching entirely
func WithoutClientCache() UnifiedClientOption {
	return func(c *UnifiedClient) {
		c.cacheEnabled = false
		if c.cacheStore != nil {
			c.cacheStore.Stop()
			c.cacheStore = nil
		}
	}
}

// Stop releases background resources held by the client
func (c *UnifiedClient) Stop() {
	if c.cacheStore != nil {
		c.cacheStore.Stop()
	}
}

func (c *UnifiedClient) rebuildCache() {
	if c.cacheStore != nil {
		c.cacheStore.Stop()
	}
	if c.cacheEnabled {
		c.cacheStore = cache.NewMarketDataCacheWithConfig(c.cacheConfig)
	} else {
		c.cacheStore = nil
	}
}

// GetName returns the wrapped adapter's name
func (c *UnifiedClient) GetName() string {
	return c.exchange.GetName()
}

// Capabilities reports what the wrapped adapter supports
func (c *UnifiedClient) Capabilities() exchange.Capabilities {
	return c.exchange.Capabilities()
}

// Exchange exposes the wrapped adapter for venue-specific calls
func (c *UnifiedClient) Exchange() exchange.Client {
	return c.exchange
}

// GetServerTime returns the venue clock in milliseconds
func (c *UnifiedClient) GetServerTime() (int64, error) {
	return c.exchange.GetServerTime()
}

// LoadMarkets returns the instrument table, cached per MarketsTTL
func (c *UnifiedClient) LoadMarkets() (map[string]*exchange.Market, error) {
	if c.cacheEnabled && c.cacheStore != nil {
		if value, ok := c.cacheStore.GetMarkets(c.GetName()); ok {
			if markets, ok := value.(map[string]*exchange.Market); ok {
				return markets, nil
			}
		}
	}
	markets, err := c.exchange.LoadMarkets()
	if err != nil {
		return nil, err
	}
	if c.cacheEnabled && c.cacheStore != nil {
		c.cacheStore.SetMarkets(c.GetName(), markets)
	}
	return markets, nil
}

// LoadAccounts returns the venue accounts
func (c *UnifiedClient) LoadAccounts() ([]exchange.Account, error) {
	return c.exchange.LoadAccounts()
}

// GetTicker returns ticker data, using cache when available
func (c *UnifiedClient) GetTicker(symbol string) (*exchange.Ticker, error) {
	if c.cacheEnabled && c.cacheStore != nil {
		if value, ok := c.cacheStore.GetTicker(c.GetName(), symbol); ok {
			if ticker, ok := value.(*exchange.Ticker); ok {
				return ticker, nil
			}
		}
	}
	ticker, err := c.exchange.GetTicker(symbol)
	if err != nil {
		return nil, err
	}
	if ticker != nil && c.cacheEnabled && c.cacheStore != nil {
		copyTicker := *ticker
		c.cacheStore.SetTicker(c.GetName(), symbol, &copyTicker)
	}
	return ticker, nil
}

// GetTickers returns all tickers, uncached
func (c *UnifiedClient) GetTickers() (map[string]*exchange.Ticker, error) {
	return c.exchange.GetTickers()
}

// GetOrderBook returns the book for a symbol, using cache when available
func (c *UnifiedClient) GetOrderBook(symbol string, depth int) (*models.OrderBook, error) {
	if c.cacheEnabled && c.cacheStore != nil {
		if value, ok := c.cacheStore.GetOrderBook(c.GetName(), symbol, depth); ok {
			if book, ok := value.(*models.OrderBook); ok {
				return book, nil
			}
		}
	}
	book, err := c.exchange.GetOrderBook(symbol, depth)
	if err != nil {
		return nil, err
	}
	if book != nil && c.cacheEnabled && c.cacheStore != nil {
		copyBook := *book
		c.cacheStore.SetOrderBook(c.GetName(), symbol, depth, &copyBook)
	}
	return book, nil
}

// GetTrades returns public trade history
func (c *UnifiedClient) GetTrades(symbol string, since int64, limit int) ([]exchange.Trade, error) {
	return c.exchange.GetTrades(symbol, since, limit)
}

// GetCandles returns the trade-price candle series
func (c *UnifiedClient) GetCandles(symbol, interval string, opts exchange.CandleOptions) ([]models.Candle, error) {
	return c.exchange.GetCandles(symbol, interval, opts)
}

// GetBalances returns the balance map
func (c *UnifiedClient) GetBalances(params exchange.Params) (exchange.Balances, error) {
	return c.exchange.GetBalances(params)
}

// CreateOrder places a new order
func (c *UnifiedClient) CreateOrder(symbol string, typ exchange.OrderType, side exchange.OrderSide, amount float64, price *float64, opts exchange.CreateOrderOptions) (*exchange.Order, error) {
	order, err := c.exchange.CreateOrder(symbol, typ, side, amount, price, opts)
	if err != nil {
		c.logger.Warn(
			fmt.Sprintf("createOrder %s %s %s failed: %v", symbol, side, typ, err),
			golog.String("component", unifiedClientComponent),
		)
		return nil, err
	}
	return order, nil
}

// CancelOrder cancels an order by client order id
func (c *UnifiedClient) CancelOrder(id, symbol string, params exchange.Params) (*exchange.Order, error) {
	return c.exchange.CancelOrder(id, symbol, params)
}

// CancelAllOrders cancels every open order, optionally narrowed to a symbol
func (c *UnifiedClient) CancelAllOrders(symbol string, params exchange.Params) error {
	return c.exchange.CancelAllOrders(symbol, params)
}

// GetOrder fetches one order
func (c *UnifiedClient) GetOrder(id, symbol string, params exchange.Params) (*exchange.Order, error) {
	return c.exchange.GetOrder(id, symbol, params)
}

// GetOrders fetches recent orders
func (c *UnifiedClient) GetOrders(symbol string, since int64, limit int, params exchange.Params) ([]exchange.Order, error) {
	return c.exchange.GetOrders(symbol, since, limit, params)
}

// GetOpenOrders fetches active orders
func (c *UnifiedClient) GetOpenOrders(symbol string, params exchange.Params) ([]exchange.Order, error) {
	return c.exchange.GetOpenOrders(symbol, params)
}

// GetClosedOrders fetches fully filled orders
func (c *UnifiedClient) GetClosedOrders(symbol string, since int64, limit int, params exchange.Params) ([]exchange.Order, error) {
	return c.exchange.GetClosedOrders(symbol, since, limit, params)
}

// GetMyTrades fetches the account's executions
func (c *UnifiedClient) GetMyTrades(symbol string, since int64, limit int, params exchange.Params) ([]exchange.Trade, error) {
	return c.exchange.GetMyTrades(symbol, since, limit, params)
}

// Withdraw requests a payout
func (c *UnifiedClient) Withdraw(code string, amount float64, opts exchange.WithdrawOptions) (*exchange.Transaction, error) {
	return c.exchange.Withdraw(code, amount, opts)
}

// EditOrder cancels an order and places a replacement. The two steps are not
// atomic; see exchange.EditOrder.
func (c *UnifiedClient) EditOrder(id, symbol string, typ exchange.OrderType, side exchange.OrderSide, amount float64, price *float64, opts exchange.CreateOrderOptions) (*exchange.Order, error) {
	return exchange.EditOrder(c.exchange, id, symbol, typ, side, amount, price, opts)
}

// GetFundingRate returns the current funding rate for one contract symbol
func (c *UnifiedClient) GetFundingRate(symbol string, params exchange.Params) (*models.FundingRate, error) {
	return exchange.GetFundingRate(c.exchange, symbol, params)
}

// GetMarkCandles returns the mark-price candle series
func (c *UnifiedClient) GetMarkCandles(symbol, interval string, opts exchange.CandleOptions) ([]models.Candle, error) {
	return exchange.GetMarkCandles(c.exchange, symbol, interval, opts)
}

// GetIndexCandles returns the index-price candle series
func (c *UnifiedClient) GetIndexCandles(symbol, interval string, opts exchange.CandleOptions) ([]models.Candle, error) {
	return exchange.GetIndexCandles(c.exchange, symbol, interval, opts)
}

// GetPremiumIndexCandles returns the premium-index candle series
func (c *UnifiedClient) GetPremiumIndexCandles(symbol, interval string, opts exchange.CandleOptions) ([]models.Candle, error) {
	return exchange.GetPremiumIndexCandles(c.exchange, symbol, interval, opts)
}
