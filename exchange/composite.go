package exchange

import (
	"sort"

	"github.com/evdnx/golog"
	"github.com/evdnx/gounify/models"
)

// EditOrder replaces a resting order by canceling it and creating a new one
// with the given fields.
//
// The two steps are strictly sequential and NOT atomic: when the cancel
// succeeds but the create fails, the original order stays canceled with no
// replacement. Callers that cannot tolerate that window must not use this
// operation. A failed cancel aborts before any create request is issued.
func EditOrder(c Client, id, symbol string, typ OrderType, side OrderSide, amount float64, price *float64, opts CreateOrderOptions) (*Order, error) {
	if _, err := c.CancelOrder(id, symbol, nil); err != nil {
		return nil, err
	}
	order, err := c.CreateOrder(symbol, typ, side, amount, price, opts)
	if err != nil {
		defaultLogger().Warn("order replacement failed after cancel",
			golog.String("exchange", c.GetName()),
			golog.String("orderId", id),
			golog.String("symbol", symbol),
			golog.String("error", err.Error()),
		)
		return nil, err
	}
	return order, nil
}

// GetFundingRate fetches the current funding rate for one contract symbol
// through the adapter's bulk funding-rate endpoint.
func GetFundingRate(c Client, symbol string, params Params) (*models.FundingRate, error) {
	if !c.Capabilities().FundingRates {
		return nil, NewNotSupported(c.GetName(), "fetchFundingRate", "funding rates are not supported")
	}
	market, err := c.Market(symbol)
	if err != nil {
		return nil, err
	}
	if !market.Contract {
		return nil, NewBadSymbol(c.GetName(), "fetchFundingRate", symbol+" is not a contract market")
	}
	rates, err := c.GetFundingRates([]string{symbol}, params)
	if err != nil {
		return nil, err
	}
	rate, ok := rates[symbol]
	if !ok || rate == nil {
		return nil, NewNullResponse(c.GetName(), "fetchFundingRate", "no funding rate returned for "+symbol)
	}
	return rate, nil
}

// GetMarkCandles fetches the mark-price candle series.
func GetMarkCandles(c Client, symbol, interval string, opts CandleOptions) ([]models.Candle, error) {
	if !c.Capabilities().MarkCandles {
		return nil, NewNotSupported(c.GetName(), "fetchMarkOHLCV", "mark price candles are not supported")
	}
	opts.Price = "mark"
	return c.GetCandles(symbol, interval, opts)
}

// GetIndexCandles fetches the index-price candle series.
func GetIndexCandles(c Client, symbol, interval string, opts CandleOptions) ([]models.Candle, error) {
	if !c.Capabilities().IndexCandles {
		return nil, NewNotSupported(c.GetName(), "fetchIndexOHLCV", "index price candles are not supported")
	}
	opts.Price = "index"
	return c.GetCandles(symbol, interval, opts)
}

// GetPremiumIndexCandles fetches the premium-index candle series.
func GetPremiumIndexCandles(c Client, symbol, interval string, opts CandleOptions) ([]models.Candle, error) {
	if !c.Capabilities().PremiumIndexCandles {
		return nil, NewNotSupported(c.GetName(), "fetchPremiumIndexOHLCV", "premium index candles are not supported")
	}
	opts.Price = "premiumIndex"
	return c.GetCandles(symbol, interval, opts)
}

// CreateLimitOrder places a limit order.
func CreateLimitOrder(c Client, symbol string, side OrderSide, amount, price float64, opts CreateOrderOptions) (*Order, error) {
	return c.CreateOrder(symbol, OrderTypeLimit, side, amount, &price, opts)
}

// CreateMarketOrder places a market order.
func CreateMarketOrder(c Client, symbol string, side OrderSide, amount float64, opts CreateOrderOptions) (*Order, error) {
	return c.CreateOrder(symbol, OrderTypeMarket, side, amount, nil, opts)
}

// CreateStopLimitOrder places a stop-limit order. The stop price is
// mandatory; it triggers the limit order when crossed.
func CreateStopLimitOrder(c Client, symbol string, side OrderSide, amount, price, stopPrice float64, opts CreateOrderOptions) (*Order, error) {
	opts.StopPrice = &stopPrice
	return c.CreateOrder(symbol, OrderTypeStopLimit, side, amount, &price, opts)
}

// CreateStopMarketOrder places a stop-market order.
func CreateStopMarketOrder(c Client, symbol string, side OrderSide, amount, stopPrice float64, opts CreateOrderOptions) (*Order, error) {
	opts.StopPrice = &stopPrice
	return c.CreateOrder(symbol, OrderTypeStopMarket, side, amount, nil, opts)
}

// CreateStopOrder places a stop order of the given base type. A stop price
// must be present in the options.
func CreateStopOrder(c Client, symbol string, typ OrderType, side OrderSide, amount float64, price *float64, opts CreateOrderOptions) (*Order, error) {
	if opts.StopPrice == nil {
		return nil, NewArgumentsRequired(c.GetName(), "createStopOrder", "a stopPrice is required")
	}
	switch typ {
	case OrderTypeLimit:
		typ = OrderTypeStopLimit
	case OrderTypeMarket:
		typ = OrderTypeStopMarket
	}
	return c.CreateOrder(symbol, typ, side, amount, price, opts)
}

// CreatePostOnlyOrder places a limit order that must rest on the book.
func CreatePostOnlyOrder(c Client, symbol string, side OrderSide, amount, price float64, opts CreateOrderOptions) (*Order, error) {
	opts.PostOnly = true
	return c.CreateOrder(symbol, OrderTypeLimit, side, amount, &price, opts)
}

// sortAndFilter orders items ascending by timestamp, stably, then narrows by
// symbol, since and limit. Sorting happens before the limit is applied so a
// truncated result is always the earliest entries at or after since, never
// an arbitrary slice of the venue's response.
func sortAndFilter[T any](items []T, ts func(T) int64, sym func(T) string, symbol string, since int64, limit int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return ts(sorted[i]) < ts(sorted[j]) })

	out := make([]T, 0, len(sorted))
	for _, item := range sorted {
		if symbol != "" && sym(item) != symbol {
			continue
		}
		if since > 0 && ts(item) < since {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ParseFundingRateHistories maps raw response entries through parse, then
// sorts and filters the result by symbol, since and limit.
func ParseFundingRateHistories(raw []any, parse func(any) (models.FundingRateHistory, error), symbol string, since int64, limit int) ([]models.FundingRateHistory, error) {
	parsed := make([]models.FundingRateHistory, 0, len(raw))
	for _, item := range raw {
		history, err := parse(item)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, history)
	}
	return sortAndFilter(parsed,
		func(h models.FundingRateHistory) int64 { return h.Timestamp },
		func(h models.FundingRateHistory) string { return h.Symbol },
		symbol, since, limit), nil
}

// ParseOpenInterests maps raw response entries through parse, then sorts and
// filters the result by symbol, since and limit.
func ParseOpenInterests(raw []any, parse func(any) (models.OpenInterest, error), symbol string, since int64, limit int) ([]models.OpenInterest, error) {
	parsed := make([]models.OpenInterest, 0, len(raw))
	for _, item := range raw {
		interest, err := parse(item)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, interest)
	}
	return sortAndFilter(parsed,
		func(o models.OpenInterest) int64 { return o.Timestamp },
		func(o models.OpenInterest) string { return o.Symbol },
		symbol, since, limit), nil
}

// ParseBorrowInterests maps raw response entries through parse. Order is
// preserved as returned by the venue.
func ParseBorrowInterests(raw []any, parse func(any) (models.BorrowInterest, error)) ([]models.BorrowInterest, error) {
	parsed := make([]models.BorrowInterest, 0, len(raw))
	for _, item := range raw {
		interest, err := parse(item)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, interest)
	}
	return parsed, nil
}
