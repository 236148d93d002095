package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsAccessors(t *testing.T) {
	p := Params{
		"str":     "hello",
		"num":     42.5,
		"numStr":  "12.25",
		"int":     int64(7),
		"intStr":  "9",
		"flag":    true,
		"flagStr": "true",
	}

	s, ok := p.String("str")
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	f, ok := p.Float("num")
	require.True(t, ok)
	assert.Equal(t, 42.5, f)

	f, ok = p.Float("numStr")
	require.True(t, ok)
	assert.Equal(t, 12.25, f)

	i, ok := p.Int64("int")
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	i, ok = p.Int64("intStr")
	require.True(t, ok)
	assert.Equal(t, int64(9), i)

	b, ok := p.Bool("flag")
	require.True(t, ok)
	assert.True(t, b)

	b, ok = p.Bool("flagStr")
	require.True(t, ok)
	assert.True(t, b)

	_, ok = p.String("missing")
	assert.False(t, ok)
}

func TestParamsOmitDoesNotMutate(t *testing.T) {
	p := Params{"a": 1, "b": 2}
	out := p.Omit("a")
	assert.Equal(t, Params{"b": 2}, out)
	assert.Contains(t, p, "a", "the original bag is untouched")
}

func TestParamsCloneNilReceiver(t *testing.T) {
	var p Params
	out := p.Clone()
	require.NotNil(t, out)
	out["k"] = "v"
	assert.Equal(t, Params{"k": "v"}, out)
}

func TestMarketTypeAndParamsPrecedence(t *testing.T) {
	market := &Market{Symbol: "BTC/EUR", Type: "margin"}
	opts := TypeOptions{
		DefaultType: "swap",
		Methods:     map[string]string{"fetchOpenOrders": "future"},
	}

	// params type beats everything
	typ, params := MarketTypeAndParams("fetchOpenOrders", market, opts, Params{"type": "spot", "defaultType": "margin"})
	assert.Equal(t, "spot", typ)
	assert.Empty(t, params, "routing keys are stripped")

	// params defaultType beats the method override
	typ, _ = MarketTypeAndParams("fetchOpenOrders", market, opts, Params{"defaultType": "spot"})
	assert.Equal(t, "spot", typ)

	// method override beats the market's own type
	typ, _ = MarketTypeAndParams("fetchOpenOrders", market, opts, nil)
	assert.Equal(t, "future", typ)

	// market type beats the client default
	typ, _ = MarketTypeAndParams("fetchBalance", market, opts, nil)
	assert.Equal(t, "margin", typ)

	// client default beats the fallback
	typ, _ = MarketTypeAndParams("fetchBalance", nil, opts, nil)
	assert.Equal(t, "swap", typ)

	// spot when nothing else applies
	typ, _ = MarketTypeAndParams("fetchBalance", nil, TypeOptions{}, nil)
	assert.Equal(t, "spot", typ)
}

func TestWithdrawTagAndParams(t *testing.T) {
	// ordinary tag passes through
	tag, params := WithdrawTagAndParams("memo-1", Params{"account": "A"})
	assert.Equal(t, "memo-1", tag)
	assert.Equal(t, Params{"account": "A"}, params)

	// params bag misplaced in the tag position
	tag, params = WithdrawTagAndParams(map[string]any{"tag": "memo-2", "account": "B"}, nil)
	assert.Equal(t, "memo-2", tag)
	assert.Equal(t, Params{"account": "B"}, params)

	// tag supplied through params
	tag, params = WithdrawTagAndParams(nil, Params{"tag": "memo-3"})
	assert.Equal(t, "memo-3", tag)
	assert.NotContains(t, params, "tag")
}
