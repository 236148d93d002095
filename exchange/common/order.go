package common

import (
	"time"
)

// TimeInForce represents the time in force of an order
type TimeInForce string

const (
	// TimeInForceGTC represents Good Till Canceled
	TimeInForceGTC TimeInForce = "GTC"
	// TimeInForceIOC represents Immediate Or Cancel
	TimeInForceIOC TimeInForce = "IOC"
	// TimeInForceFOK represents Fill Or Kill
	TimeInForceFOK TimeInForce = "FOK"
	// TimeInForceGTD represents Good Till Date; orders carrying it require an
	// expire time.
	TimeInForceGTD TimeInForce = "GTD"
	// TimeInForcePO is the synthetic post-only marker. It never reaches the
	// wire: ResolvePostOnly consumes it and clears it from the order.
	TimeInForcePO TimeInForce = "PO"
)

// String returns the string representation of TimeInForce
func (t TimeInForce) String() string {
	return string(t)
}

// TimeInForceFromString converts a string to TimeInForce
func TimeInForceFromString(s string) TimeInForce {
	return TimeInForce(s)
}

// OrderSide represents the side of an order (buy or sell)
type OrderSide string

const (
	// OrderSideBuy represents a buy order
	OrderSideBuy OrderSide = "buy"
	// OrderSideSell represents a sell order
	OrderSideSell OrderSide = "sell"
)

// String returns the string representation of OrderSide
func (s OrderSide) String() string {
	return string(s)
}

// OrderSideFromString converts a string to OrderSide
func OrderSideFromString(s string) OrderSide {
	return OrderSide(s)
}

// OrderType represents the unified type of an order
type OrderType string

const (
	// OrderTypeMarket represents a market order
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit represents a limit order
	OrderTypeLimit OrderType = "limit"
	// OrderTypeStopLimit represents a stop limit order
	OrderTypeStopLimit OrderType = "stopLimit"
	// OrderTypeStopMarket represents a stop market order
	OrderTypeStopMarket OrderType = "stopMarket"
	// OrderTypePostOnly is a synthetic type some callers use to request
	// post-only behavior; ResolvePostOnly rewrites it to OrderTypeLimit.
	OrderTypePostOnly OrderType = "postOnly"
)

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// OrderTypeFromString converts a string to OrderType
func OrderTypeFromString(s string) OrderType {
	return OrderType(s)
}

// OrderStatus represents the unified status of an order
type OrderStatus string

const (
	// OrderStatusOpen covers resting, partially filled and suspended orders
	OrderStatusOpen OrderStatus = "open"
	// OrderStatusClosed represents a fully filled order
	OrderStatusClosed OrderStatus = "closed"
	// OrderStatusCanceled represents a canceled order
	OrderStatusCanceled OrderStatus = "canceled"
	// OrderStatusExpired represents an expired order
	OrderStatusExpired OrderStatus = "expired"
	// OrderStatusRejected represents a rejected order
	OrderStatusRejected OrderStatus = "rejected"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderStatusFromString converts a string to OrderStatus
func OrderStatusFromString(s string) OrderStatus {
	return OrderStatus(s)
}

// Fee describes a fee attached to a trade. Cost is nil when the venue did not
// report one.
type Fee struct {
	Cost     *float64 `json:"cost,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Order is the unified representation of an order across exchanges.
//
// Optional numerics are pointers: nil means the venue did not report the
// value, which is distinct from a genuine zero. Cost is always derived as
// Filled*Average and is nil when either factor is unknown.
type Order struct {
	ID            string      `json:"id"`
	ClientOrderID string      `json:"clientOrderId,omitempty"`
	Timestamp     int64       `json:"timestamp"`
	Datetime      string      `json:"datetime"`
	Symbol        string      `json:"symbol"`
	Type          OrderType   `json:"type"`
	Side          OrderSide   `json:"side"`
	Status        OrderStatus `json:"status"`
	TimeInForce   TimeInForce `json:"timeInForce,omitempty"`
	PostOnly      bool        `json:"postOnly"`
	Price         *float64    `json:"price,omitempty"`
	StopPrice     *float64    `json:"stopPrice,omitempty"`
	Amount        *float64    `json:"amount,omitempty"`
	Filled        *float64    `json:"filled,omitempty"`
	Remaining     *float64    `json:"remaining,omitempty"`
	Average       *float64    `json:"average,omitempty"`
	Cost          *float64    `json:"cost,omitempty"`
	Trades        []Trade     `json:"trades,omitempty"`
	Info          any         `json:"info,omitempty"`
}

// DeriveCost fills Cost from Filled and Average, leaving it nil when either
// factor is unknown.
func (o *Order) DeriveCost() {
	if o.Filled != nil && o.Average != nil {
		cost := *o.Filled * *o.Average
		o.Cost = &cost
		return
	}
	o.Cost = nil
}

// Trade is the unified representation of an execution.
type Trade struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Datetime  string    `json:"datetime"`
	Symbol    string    `json:"symbol"`
	Side      OrderSide `json:"side,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	Amount    *float64  `json:"amount,omitempty"`
	Cost      *float64  `json:"cost,omitempty"`
	Fee       *Fee      `json:"fee,omitempty"`
	Info      any       `json:"info,omitempty"`
}

// DeriveCost fills Cost from Price and Amount, leaving it nil when either
// factor is unknown. A missing factor never degrades to zero.
func (t *Trade) DeriveCost() {
	if t.Price != nil && t.Amount != nil {
		cost := *t.Price * *t.Amount
		t.Cost = &cost
		return
	}
	t.Cost = nil
}

// Ticker is the unified ticker snapshot. Close always mirrors Last.
type Ticker struct {
	Symbol     string   `json:"symbol"`
	Timestamp  int64    `json:"timestamp"`
	Datetime   string   `json:"datetime"`
	High       *float64 `json:"high,omitempty"`
	Low        *float64 `json:"low,omitempty"`
	Bid        *float64 `json:"bid,omitempty"`
	Ask        *float64 `json:"ask,omitempty"`
	Open       *float64 `json:"open,omitempty"`
	Last       *float64 `json:"last,omitempty"`
	Close      *float64 `json:"close,omitempty"`
	BaseVolume *float64 `json:"baseVolume,omitempty"`
	Info       any      `json:"info,omitempty"`
}

// Market describes a tradable instrument as advertised by the venue.
type Market struct {
	ID             string `json:"id"`
	Symbol         string `json:"symbol"`
	Base           string `json:"base"`
	Quote          string `json:"quote"`
	Type           string `json:"type"`
	Contract       bool   `json:"contract"`
	Active         bool   `json:"active"`
	PriceIncrement *float64
	SizeIncrement  *float64
	SizeMin        *float64
	Info           any `json:"info,omitempty"`
}

// Account is a venue-side account usable for trading and payments.
type Account struct {
	ID   string `json:"id"`
	Main bool   `json:"main"`
	Info any    `json:"info,omitempty"`
}

// Balance represents a per-currency balance.
type Balance struct {
	Free  *float64 `json:"free,omitempty"`
	Used  *float64 `json:"used,omitempty"`
	Total *float64 `json:"total,omitempty"`
}

// Balances maps currency codes to balances.
type Balances map[string]Balance

// Transaction is a withdrawal or deposit acknowledgement.
type Transaction struct {
	ID   string `json:"id"`
	Info any    `json:"info,omitempty"`
}

// CreateOrderOptions carries the recognized optional order attributes. Extra
// holds venue-specific passthrough parameters.
type CreateOrderOptions struct {
	ClientOrderID string
	TimeInForce   TimeInForce
	PostOnly      bool
	StopPrice     *float64
	ExpireTime    string
	Account       string
	Extra         Params
}

// WithdrawOptions carries the recognized withdrawal attributes. Crypto payouts
// use Address and Commission; fiat beneficiary details travel in Extra.
type WithdrawOptions struct {
	Address    string
	Tag        string
	Account    string
	Commission *float64
	Extra      Params
}

// CandleOptions selects the candle series variant. Price is the series
// discriminator ("mark", "index", "premiumIndex") and stays empty for the
// regular trade-price series.
type CandleOptions struct {
	Since int64
	Limit int
	Price string
	Extra Params
}

// ISO8601 formats a millisecond timestamp the way unified payloads expect.
func ISO8601(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}

// Milliseconds returns the current time as a millisecond timestamp.
func Milliseconds() int64 {
	return time.Now().UnixMilli()
}

// Float returns a pointer to v. Convenience for optional numeric literals.
func Float(v float64) *float64 {
	return &v
}
