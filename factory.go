package gounify

import (
	"fmt"
	"sync"

	metrics "github.com/evdnx/gotrademetrics"
	"github.com/evdnx/gounify/exchange"
)

// ExchangeType represents a type of cryptocurrency exchange
type ExchangeType string

const (
	// ExchangeGlobitex represents the Globitex exchange
	ExchangeGlobitex ExchangeType = "globitex"
	// ExchangeMock represents the in-memory mock exchange used in tests
	ExchangeMock ExchangeType = "mock"
)

// ExchangeConfig represents configuration for an exchange
type ExchangeConfig struct {
	Type      ExchangeType
	APIKey    string
	APISecret string
	Metrics   *metrics.Metrics
}

// ExchangeFactory centralizes creation and registration of exchanges
// so the rest of the codebase has a single entry point.
type ExchangeFactory struct {
	configs map[ExchangeType]ExchangeConfig
	mu      sync.RWMutex
}

// NewExchangeFactory creates a new exchange factory
func NewExchangeFactory() *ExchangeFactory {
	return &ExchangeFactory{
		configs: make(map[ExchangeType]ExchangeConfig),
	}
}

// RegisterExchange registers an exchange with the factory
func (f *ExchangeFactory) RegisterExchange(config ExchangeConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs[config.Type] = config
}

// CreateExchangeClient creates a venue adapter from its configuration
func (f *ExchangeFactory) CreateExchangeClient(config ExchangeConfig) (exchange.Client, error) {
	switch config.Type {
	case ExchangeGlobitex:
		return exchange.NewGlobitexClient(config.APIKey, config.APISecret, config.Metrics), nil
	case ExchangeMock:
		return NewMockClient(string(config.Type)), nil
	default:
		return nil, fmt.Errorf("unsupported exchange type: %s", config.Type)
	}
}

// CreateUnifiedClient creates an adapter and wraps it in a UnifiedClient
func (f *ExchangeFactory) CreateUnifiedClient(config ExchangeConfig, opts ...UnifiedClientOption) (*UnifiedClient, error) {
	client, err := f.CreateExchangeClient(config)
	if err != nil {
		return nil, err
	}
	return NewUnifiedClient(client, opts...), nil
}

// GetAllExchangeClients returns clients for all registered exchanges
func (f *ExchangeFactory) GetAllExchangeClients() (map[ExchangeType]exchange.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	clients := make(map[ExchangeType]exchange.Client)
	for exchangeType, config := range f.configs {
		client, err := f.CreateExchangeClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for %s: %w", exchangeType, err)
		}
		clients[exchangeType] = client
	}
	return clients, nil
}

// GetExchangeCapabilities returns the capability set for an exchange type
// without constructing a network-backed client.
func GetExchangeCapabilities(exchangeType ExchangeType) exchange.Capabilities {
	switch exchangeType {
	case ExchangeGlobitex:
		return exchange.Capabilities{
			ServerTime:   true,
			Markets:      true,
			Ticker:       true,
			Tickers:      true,
			OrderBook:    true,
			Trades:       true,
			Balances:     true,
			Accounts:     true,
			CreateOrder:  true,
			CancelOrder:  true,
			CancelAll:    true,
			Order:        true,
			Orders:       true,
			OpenOrders:   true,
			ClosedOrders: true,
			MyTrades:     true,
			Withdraw:     true,
		}
	case ExchangeMock:
		return NewMockClient(string(exchangeType)).Capabilities()
	default:
		return exchange.Capabilities{}
	}
}
