package common

import (
	"errors"

	"github.com/evdnx/gounify/models"
)

// Client is the unified interface a venue adapter implements. Adapters embed
// BaseClient so unimplemented operations report ErrNotImplemented; the
// capability set tells callers ahead of time which operations are real.
type Client interface {
	GetName() string
	Capabilities() Capabilities
	TypeOptions() TypeOptions

	GetServerTime() (int64, error)
	LoadMarkets() (map[string]*Market, error)
	Market(symbol string) (*Market, error)
	LoadAccounts() ([]Account, error)

	GetTicker(symbol string) (*Ticker, error)
	GetTickers() (map[string]*Ticker, error)
	GetOrderBook(symbol string, depth int) (*models.OrderBook, error)
	GetTrades(symbol string, since int64, limit int) ([]Trade, error)
	GetCandles(symbol, interval string, opts CandleOptions) ([]models.Candle, error)
	GetFundingRates(symbols []string, params Params) (map[string]*models.FundingRate, error)

	GetBalances(params Params) (Balances, error)
	CreateOrder(symbol string, typ OrderType, side OrderSide, amount float64, price *float64, opts CreateOrderOptions) (*Order, error)
	CancelOrder(id, symbol string, params Params) (*Order, error)
	CancelAllOrders(symbol string, params Params) error
	GetOrder(id, symbol string, params Params) (*Order, error)
	GetOrders(symbol string, since int64, limit int, params Params) ([]Order, error)
	GetOpenOrders(symbol string, params Params) ([]Order, error)
	GetClosedOrders(symbol string, since int64, limit int, params Params) ([]Order, error)
	GetMyTrades(symbol string, since int64, limit int, params Params) ([]Trade, error)
	Withdraw(code string, amount float64, opts WithdrawOptions) (*Transaction, error)
}

// BaseClient is a base implementation of the Client interface
type BaseClient struct {
	name      string
	apiKey    string
	apiSecret string
	testnet   bool
}

// NewBaseClient creates a new base client
func NewBaseClient(name, apiKey, apiSecret string, testnet bool) *BaseClient {
	return &BaseClient{
		name:      name,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		testnet:   testnet,
	}
}

// GetName returns the name of the exchange
func (c *BaseClient) GetName() string { return c.name }

// APIKey returns the configured API key.
func (c *BaseClient) APIKey() string { return c.apiKey }

// APISecret returns the configured API secret.
func (c *BaseClient) APISecret() string { return c.apiSecret }

// IsTestnet reports whether the client is targeting a testnet environment.
func (c *BaseClient) IsTestnet() bool { return c.testnet }

// Capabilities defaults to nothing supported; adapters override.
func (c *BaseClient) Capabilities() Capabilities { return Capabilities{} }

// TypeOptions defaults to spot-only routing; adapters override.
func (c *BaseClient) TypeOptions() TypeOptions { return TypeOptions{DefaultType: "spot"} }

// ErrNotImplemented is returned when a method is not implemented
var ErrNotImplemented = errors.New("method not implemented")

// Default Client interface implementations that return ErrNotImplemented.
func (c *BaseClient) GetServerTime() (int64, error)             { return 0, ErrNotImplemented }
func (c *BaseClient) LoadMarkets() (map[string]*Market, error)  { return nil, ErrNotImplemented }
func (c *BaseClient) Market(string) (*Market, error)            { return nil, ErrNotImplemented }
func (c *BaseClient) LoadAccounts() ([]Account, error)          { return nil, ErrNotImplemented }
func (c *BaseClient) GetTicker(string) (*Ticker, error)         { return nil, ErrNotImplemented }
func (c *BaseClient) GetTickers() (map[string]*Ticker, error)   { return nil, ErrNotImplemented }
func (c *BaseClient) GetOrderBook(string, int) (*models.OrderBook, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetTrades(string, int64, int) ([]Trade, error) { return nil, ErrNotImplemented }
func (c *BaseClient) GetCandles(string, string, CandleOptions) ([]models.Candle, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetFundingRates([]string, Params) (map[string]*models.FundingRate, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetBalances(Params) (Balances, error) { return nil, ErrNotImplemented }
func (c *BaseClient) CreateOrder(string, OrderType, OrderSide, float64, *float64, CreateOrderOptions) (*Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) CancelOrder(string, string, Params) (*Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) CancelAllOrders(string, Params) error { return ErrNotImplemented }
func (c *BaseClient) GetOrder(string, string, Params) (*Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetOrders(string, int64, int, Params) ([]Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetOpenOrders(string, Params) ([]Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetClosedOrders(string, int64, int, Params) ([]Order, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) GetMyTrades(string, int64, int, Params) ([]Trade, error) {
	return nil, ErrNotImplemented
}
func (c *BaseClient) Withdraw(string, float64, WithdrawOptions) (*Transaction, error) {
	return nil, ErrNotImplemented
}
