package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePostOnlyViaTimeInForce(t *testing.T) {
	typ, postOnly, tif, params, err := ResolvePostOnly("Globitex", OrderTypeLimit, TimeInForcePO, false, Params{})
	require.NoError(t, err)
	assert.Equal(t, OrderTypeLimit, typ)
	assert.True(t, postOnly)
	assert.Equal(t, TimeInForce(""), tif, "synthetic PO marker must be cleared")
	assert.Empty(t, params)
}

func TestResolvePostOnlyViaOrderType(t *testing.T) {
	typ, postOnly, tif, _, err := ResolvePostOnly("Globitex", OrderTypePostOnly, TimeInForceGTC, false, nil)
	require.NoError(t, err)
	assert.Equal(t, OrderTypeLimit, typ)
	assert.True(t, postOnly)
	assert.Equal(t, TimeInForceGTC, tif, "a real time in force survives resolution")
}

func TestResolvePostOnlyViaParams(t *testing.T) {
	for _, key := range []string{"postOnly", "post_only"} {
		typ, postOnly, _, params, err := ResolvePostOnly("Globitex", OrderTypeLimit, "", false, Params{key: true})
		require.NoError(t, err, key)
		assert.Equal(t, OrderTypeLimit, typ)
		assert.True(t, postOnly, key)
		_, present := params[key]
		assert.False(t, present, "request key %s must be stripped", key)
	}
}

func TestResolvePostOnlyViaNativeFlag(t *testing.T) {
	typ, postOnly, _, _, err := ResolvePostOnly("Globitex", OrderTypeLimit, "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, OrderTypeLimit, typ)
	assert.True(t, postOnly)
}

func TestResolvePostOnlyRejectsImmediateTimeInForce(t *testing.T) {
	for _, tif := range []TimeInForce{TimeInForceIOC, TimeInForceFOK} {
		_, postOnly, _, _, err := ResolvePostOnly("Globitex", OrderTypeLimit, tif, true, nil)
		require.Error(t, err, tif)
		assert.True(t, IsInvalidOrder(err), tif)
		assert.False(t, postOnly, "never report postOnly together with %s", tif)
	}
}

func TestResolvePostOnlyRejectsMarketOrders(t *testing.T) {
	_, postOnly, _, _, err := ResolvePostOnly("Globitex", OrderTypeMarket, "", false, Params{"postOnly": true})
	require.Error(t, err)
	assert.True(t, IsInvalidOrder(err))
	assert.False(t, postOnly)
}

func TestResolvePostOnlyNotRequested(t *testing.T) {
	typ, postOnly, tif, params, err := ResolvePostOnly("Globitex", OrderTypeMarket, "", false, Params{"postOnly": false, "foo": "bar"})
	require.NoError(t, err)
	assert.Equal(t, OrderTypeMarket, typ)
	assert.False(t, postOnly)
	assert.Equal(t, TimeInForce(""), tif)
	assert.Equal(t, Params{"foo": "bar"}, params, "only the request keys are stripped")
}
