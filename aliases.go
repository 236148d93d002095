package gounify

import (
	"github.com/evdnx/gounify/exchange"
)

type (
	// Re-export domain types so consumers can use gounify.Order, etc.
	TimeInForce        = exchange.TimeInForce
	OrderSide          = exchange.OrderSide
	OrderType          = exchange.OrderType
	OrderStatus        = exchange.OrderStatus
	Order              = exchange.Order
	Trade              = exchange.Trade
	Fee                = exchange.Fee
	Ticker             = exchange.Ticker
	Market             = exchange.Market
	Account            = exchange.Account
	Balance            = exchange.Balance
	Balances           = exchange.Balances
	Transaction        = exchange.Transaction
	Params             = exchange.Params
	Capabilities       = exchange.Capabilities
	CreateOrderOptions = exchange.CreateOrderOptions
	WithdrawOptions    = exchange.WithdrawOptions
	CandleOptions      = exchange.CandleOptions
	ErrorType          = exchange.ErrorType
	ExchangeError      = exchange.ExchangeError
	Client             = exchange.Client
	BaseClient         = exchange.BaseClient
)

const (
	TimeInForceGTC = exchange.TimeInForceGTC
	TimeInForceIOC = exchange.TimeInForceIOC
	TimeInForceFOK = exchange.TimeInForceFOK
	TimeInForceGTD = exchange.TimeInForceGTD
	TimeInForcePO  = exchange.TimeInForcePO

	OrderSideBuy  = exchange.OrderSideBuy
	OrderSideSell = exchange.OrderSideSell

	OrderTypeMarket     = exchange.OrderTypeMarket
	OrderTypeLimit      = exchange.OrderTypeLimit
	OrderTypeStopLimit  = exchange.OrderTypeStopLimit
	OrderTypeStopMarket = exchange.OrderTypeStopMarket
	OrderTypePostOnly   = exchange.OrderTypePostOnly

	OrderStatusOpen     = exchange.OrderStatusOpen
	OrderStatusClosed   = exchange.OrderStatusClosed
	OrderStatusCanceled = exchange.OrderStatusCanceled
	OrderStatusExpired  = exchange.OrderStatusExpired
	OrderStatusRejected = exchange.OrderStatusRejected

	ErrorTypeHTTP              = exchange.ErrorTypeHTTP
	ErrorTypeNetwork           = exchange.ErrorTypeNetwork
	ErrorTypeRateLimit         = exchange.ErrorTypeRateLimit
	ErrorTypeAuthentication    = exchange.ErrorTypeAuthentication
	ErrorTypeParsing           = exchange.ErrorTypeParsing
	ErrorTypeArgumentsRequired = exchange.ErrorTypeArgumentsRequired
	ErrorTypeInvalidOrder      = exchange.ErrorTypeInvalidOrder
	ErrorTypeBadSymbol         = exchange.ErrorTypeBadSymbol
	ErrorTypeNotSupported      = exchange.ErrorTypeNotSupported
	ErrorTypeNullResponse      = exchange.ErrorTypeNullResponse
	ErrorTypeExchange          = exchange.ErrorTypeExchange
	ErrorTypeUnknown           = exchange.ErrorTypeUnknown
)

var (
	ErrNotImplemented = exchange.ErrNotImplemented
)

// NewGlobitexClient re-exports the Globitex adapter constructor.
var NewGlobitexClient = exchange.NewGlobitexClient

func IsNetworkError(err error) bool        { return exchange.IsNetworkError(err) }
func IsHTTPError(err error) bool           { return exchange.IsHTTPError(err) }
func IsRateLimitError(err error) bool      { return exchange.IsRateLimitError(err) }
func IsAuthenticationError(err error) bool { return exchange.IsAuthenticationError(err) }
func IsParsingError(err error) bool        { return exchange.IsParsingError(err) }
func IsArgumentsRequired(err error) bool   { return exchange.IsArgumentsRequired(err) }
func IsInvalidOrder(err error) bool        { return exchange.IsInvalidOrder(err) }
func IsBadSymbol(err error) bool           { return exchange.IsBadSymbol(err) }
func IsNotSupported(err error) bool        { return exchange.IsNotSupported(err) }
func IsNullResponse(err error) bool        { return exchange.IsNullResponse(err) }
func IsExchangeError(err error) bool       { return exchange.IsExchangeError(err) }
func IsRetriable(err error) bool           { return exchange.IsRetriable(err) }
