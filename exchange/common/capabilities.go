package common

// Capabilities declares what a venue adapter can do. The composite layer
// consults these flags before issuing a call and reports unsupported
// operations as typed errors instead of letting them fail on the wire.
//
// Candle-series variants are independent flags: a venue may serve trade-price
// candles but not mark/index/premium-index series, or any mix of them.
type Capabilities struct {
	ServerTime   bool
	Markets      bool
	Ticker       bool
	Tickers      bool
	OrderBook    bool
	Trades       bool
	Candles      bool
	Balances     bool
	Accounts     bool
	CreateOrder  bool
	CancelOrder  bool
	CancelAll    bool
	Order        bool
	Orders       bool
	OpenOrders   bool
	ClosedOrders bool
	MyTrades     bool
	Withdraw     bool

	FundingRates        bool
	MarkCandles         bool
	IndexCandles        bool
	PremiumIndexCandles bool
}
