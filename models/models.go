package models

// OrderBook represents the state of bids and asks for a symbol.
type OrderBook struct {
	Symbol    string           `json:"symbol"`
	Bids      []OrderBookEntry `json:"bids"`
	Asks      []OrderBookEntry `json:"asks"`
	Timestamp int64            `json:"timestamp"`
	Datetime  string           `json:"datetime"`
}

// OrderBookEntry represents an entry in an order book.
type OrderBookEntry struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Candle represents one OHLCV bar. Timestamp is the bar open time in
// milliseconds since epoch.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FundingRate is the current funding rate of a perpetual contract.
type FundingRate struct {
	Symbol    string   `json:"symbol"`
	Timestamp int64    `json:"timestamp"`
	Datetime  string   `json:"datetime"`
	Rate      *float64 `json:"fundingRate,omitempty"`
	Info      any      `json:"info,omitempty"`
}

// FundingRateHistory is one historical funding-rate observation.
type FundingRateHistory struct {
	Symbol    string   `json:"symbol"`
	Timestamp int64    `json:"timestamp"`
	Datetime  string   `json:"datetime"`
	Rate      *float64 `json:"fundingRate,omitempty"`
	Info      any      `json:"info,omitempty"`
}

// OpenInterest is one open-interest observation for a contract market.
type OpenInterest struct {
	Symbol    string   `json:"symbol"`
	Timestamp int64    `json:"timestamp"`
	Datetime  string   `json:"datetime"`
	Amount    *float64 `json:"openInterestAmount,omitempty"`
	Value     *float64 `json:"openInterestValue,omitempty"`
	Info      any      `json:"info,omitempty"`
}

// BorrowInterest is one accrued margin-borrow interest record.
type BorrowInterest struct {
	Currency  string   `json:"currency"`
	Symbol    string   `json:"symbol,omitempty"`
	Interest  *float64 `json:"interest,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Datetime  string   `json:"datetime"`
	Info      any      `json:"info,omitempty"`
}
