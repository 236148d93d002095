package gounify

import (
	"fmt"
	"sync"
	"time"

	"github.com/evdnx/gounify/exchange"
	"github.com/evdnx/gounify/models"
)

// MockClient is a lightweight in-memory exchange implementation for tests
// and factories. Orders rest until canceled; balances are static.
type MockClient struct {
	*exchange.BaseClient
	mu     sync.RWMutex
	orders map[string]exchange.Order
	seq    int
}

// NewMockClient creates a new mock exchange client
func NewMockClient(name string) *MockClient {
	return &MockClient{
		BaseClient: exchange.NewBaseClient(name, "", "", true),
		orders:     make(map[string]exchange.Order),
	}
}

// Capabilities reports everything the mock implements
func (c *MockClient) Capabilities() exchange.Capabilities {
	return exchange.Capabilities{
		Markets:     true,
		Ticker:      true,
		OrderBook:   true,
		Balances:    true,
		CreateOrder: true,
		CancelOrder: true,
		Order:       true,
		Orders:      true,
		OpenOrders:  true,
	}
}

func mockMarkets() map[string]*exchange.Market {
	return map[string]*exchange.Market{
		"BTC/USDT": {ID: "BTCUSDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", Type: "spot", Active: true},
		"ETH/USDT": {ID: "ETHUSDT", Symbol: "ETH/USDT", Base: "ETH", Quote: "USDT", Type: "spot", Active: true},
	}
}

// LoadMarkets returns two static spot markets
func (c *MockClient) LoadMarkets() (map[string]*exchange.Market, error) {
	return mockMarkets(), nil
}

// Market resolves one of the static markets
func (c *MockClient) Market(symbol string) (*exchange.Market, error) {
	if market, ok := mockMarkets()[symbol]; ok {
		return market, nil
	}
	return nil, exchange.NewBadSymbol(c.GetName(), "market", "unknown symbol "+symbol)
}

// GetTicker returns deterministic ticker data
func (c *MockClient) GetTicker(symbol string) (*exchange.Ticker, error) {
	now := time.Now().UnixMilli()
	bid, ask, last := 100.0, 101.0, 100.5
	volume := 10.0
	return &exchange.Ticker{
		Symbol:     symbol,
		Timestamp:  now,
		Bid:        &bid,
		Ask:        &ask,
		Last:       &last,
		Close:      &last,
		BaseVolume: &volume,
	}, nil
}

// GetOrderBook returns a synthetic book of the requested depth
func (c *MockClient) GetOrderBook(symbol string, depth int) (*models.OrderBook, error) {
	book := &models.OrderBook{Symbol: symbol, Timestamp: time.Now().UnixMilli()}
	for i := 0; i < depth; i++ {
		book.Bids = append(book.Bids, models.OrderBookEntry{Price: 100 - float64(i), Amount: float64(i + 1)})
		book.Asks = append(book.Asks, models.OrderBookEntry{Price: 101 + float64(i), Amount: float64(i + 1)})
	}
	return book, nil
}

// GetBalances returns a static USDT balance
func (c *MockClient) GetBalances(params exchange.Params) (exchange.Balances, error) {
	free, used, total := 1000.0, 0.0, 1000.0
	return exchange.Balances{
		"USDT": {Free: &free, Used: &used, Total: &total},
	}, nil
}

// CreateOrder records the order as open and returns it
func (c *MockClient) CreateOrder(symbol string, typ exchange.OrderType, side exchange.OrderSide, amount float64, price *float64, opts exchange.CreateOrderOptions) (*exchange.Order, error) {
	if amount <= 0 {
		return nil, exchange.NewArgumentsRequired(c.GetName(), "createOrder", "amount must be greater than zero")
	}
	resolvedType, postOnly, tif, _, err := exchange.ResolvePostOnly(c.GetName(), typ, opts.TimeInForce, opts.PostOnly, opts.Extra)
	if err != nil {
		return nil, err
	}
	if resolvedType == exchange.OrderTypeLimit && price == nil {
		return nil, exchange.NewArgumentsRequired(c.GetName(), "createOrder", "a price is required for limit orders")
	}
	c.mu.Lock()
	c.seq++
	order := exchange.Order{
		ID:            fmt.Sprintf("order-%d", c.seq),
		ClientOrderID: opts.ClientOrderID,
		Timestamp:     time.Now().UnixMilli(),
		Symbol:        symbol,
		Type:          resolvedType,
		Side:          side,
		Status:        exchange.OrderStatusOpen,
		TimeInForce:   tif,
		PostOnly:      postOnly,
		Price:         price,
		Amount:        &amount,
	}
	c.orders[order.ID] = order
	c.mu.Unlock()
	return &order, nil
}

// CancelOrder marks a tracked order canceled
func (c *MockClient) CancelOrder(id, symbol string, params exchange.Params) (*exchange.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[id]
	if !ok {
		return nil, exchange.NewNullResponse(c.GetName(), "cancelOrder", "order "+id+" not found")
	}
	order.Status = exchange.OrderStatusCanceled
	c.orders[id] = order
	return &order, nil
}

// GetOrder returns a tracked order
func (c *MockClient) GetOrder(id, symbol string, params exchange.Params) (*exchange.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order, ok := c.orders[id]
	if !ok {
		return nil, exchange.NewNullResponse(c.GetName(), "fetchOrder", "order "+id+" not found")
	}
	return &order, nil
}

// GetOrders returns all tracked orders for a symbol
func (c *MockClient) GetOrders(symbol string, since int64, limit int, params exchange.Params) ([]exchange.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	orders := make([]exchange.Order, 0, len(c.orders))
	for _, order := range c.orders {
		if symbol != "" && order.Symbol != symbol {
			continue
		}
		orders = append(orders, order)
		if limit > 0 && len(orders) == limit {
			break
		}
	}
	return orders, nil
}

// GetOpenOrders returns tracked orders that are still open
func (c *MockClient) GetOpenOrders(symbol string, params exchange.Params) ([]exchange.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	orders := make([]exchange.Order, 0, len(c.orders))
	for _, order := range c.orders {
		if symbol != "" && order.Symbol != symbol {
			continue
		}
		if order.Status == exchange.OrderStatusOpen {
			orders = append(orders, order)
		}
	}
	return orders, nil
}
