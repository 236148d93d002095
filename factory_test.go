package gounify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreatesRegisteredClients(t *testing.T) {
	factory := NewExchangeFactory()
	factory.RegisterExchange(ExchangeConfig{Type: ExchangeMock})
	factory.RegisterExchange(ExchangeConfig{Type: ExchangeGlobitex, APIKey: "k", APISecret: "s"})

	clients, err := factory.GetAllExchangeClients()
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	assert.Equal(t, "Globitex", clients[ExchangeGlobitex].GetName())
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	factory := NewExchangeFactory()
	_, err := factory.CreateExchangeClient(ExchangeConfig{Type: "kraken"})
	assert.Error(t, err)
}

func TestFactoryCreateUnifiedClient(t *testing.T) {
	factory := NewExchangeFactory()
	client, err := factory.CreateUnifiedClient(ExchangeConfig{Type: ExchangeMock}, WithoutClientCache())
	require.NoError(t, err)
	defer client.Stop()
	assert.Equal(t, "mock", client.GetName())
}

func TestGetExchangeCapabilities(t *testing.T) {
	caps := GetExchangeCapabilities(ExchangeGlobitex)
	assert.True(t, caps.CreateOrder)
	assert.True(t, caps.Withdraw)
	assert.False(t, caps.Candles, "the venue offers no candle series")
	assert.False(t, caps.FundingRates, "spot venues have no funding rates")

	assert.Equal(t, Capabilities{}, GetExchangeCapabilities("unknown"))
}
