package exchange

import (
	"github.com/evdnx/gohttpcl"
	"github.com/evdnx/golog"
	metrics "github.com/evdnx/gotrademetrics"
	common "github.com/evdnx/gounify/exchange/common"
)

// Re-export shared types so existing consumers of the exchange package keep working.
type (
	Client             = common.Client
	BaseClient         = common.BaseClient
	Capabilities       = common.Capabilities
	TypeOptions        = common.TypeOptions
	Params             = common.Params
	Order              = common.Order
	Trade              = common.Trade
	Fee                = common.Fee
	Ticker             = common.Ticker
	Market             = common.Market
	Account            = common.Account
	Balance            = common.Balance
	Balances           = common.Balances
	Transaction        = common.Transaction
	CreateOrderOptions = common.CreateOrderOptions
	WithdrawOptions    = common.WithdrawOptions
	CandleOptions      = common.CandleOptions
	OrderSide          = common.OrderSide
	OrderType          = common.OrderType
	OrderStatus        = common.OrderStatus
	TimeInForce        = common.TimeInForce
	NonceSource        = common.NonceSource
	ErrorType          = common.ErrorType
	ExchangeError      = common.ExchangeError
)

// Re-export shared constants.
const (
	TimeInForceGTC TimeInForce = common.TimeInForceGTC
	TimeInForceIOC TimeInForce = common.TimeInForceIOC
	TimeInForceFOK TimeInForce = common.TimeInForceFOK
	TimeInForceGTD TimeInForce = common.TimeInForceGTD
	TimeInForcePO  TimeInForce = common.TimeInForcePO

	OrderSideBuy  OrderSide = common.OrderSideBuy
	OrderSideSell OrderSide = common.OrderSideSell

	OrderTypeMarket     OrderType = common.OrderTypeMarket
	OrderTypeLimit      OrderType = common.OrderTypeLimit
	OrderTypeStopLimit  OrderType = common.OrderTypeStopLimit
	OrderTypeStopMarket OrderType = common.OrderTypeStopMarket
	OrderTypePostOnly   OrderType = common.OrderTypePostOnly

	OrderStatusOpen     OrderStatus = common.OrderStatusOpen
	OrderStatusClosed   OrderStatus = common.OrderStatusClosed
	OrderStatusCanceled OrderStatus = common.OrderStatusCanceled
	OrderStatusExpired  OrderStatus = common.OrderStatusExpired
	OrderStatusRejected OrderStatus = common.OrderStatusRejected

	ErrorTypeHTTP              ErrorType = common.ErrorTypeHTTP
	ErrorTypeNetwork           ErrorType = common.ErrorTypeNetwork
	ErrorTypeRateLimit         ErrorType = common.ErrorTypeRateLimit
	ErrorTypeAuthentication    ErrorType = common.ErrorTypeAuthentication
	ErrorTypeParsing           ErrorType = common.ErrorTypeParsing
	ErrorTypeArgumentsRequired ErrorType = common.ErrorTypeArgumentsRequired
	ErrorTypeInvalidOrder      ErrorType = common.ErrorTypeInvalidOrder
	ErrorTypeBadSymbol         ErrorType = common.ErrorTypeBadSymbol
	ErrorTypeNotSupported      ErrorType = common.ErrorTypeNotSupported
	ErrorTypeNullResponse      ErrorType = common.ErrorTypeNullResponse
	ErrorTypeExchange          ErrorType = common.ErrorTypeExchange
	ErrorTypeUnknown           ErrorType = common.ErrorTypeUnknown
)

// Re-export common package functions and variables.
var (
	ErrNotImplemented = common.ErrNotImplemented
)

func NewBaseClient(name, apiKey, apiSecret string, testnet bool) *BaseClient {
	return common.NewBaseClient(name, apiKey, apiSecret, testnet)
}

func NewNonceSource() *NonceSource { return common.NewNonceSource() }

func NewExchangeError(errType ErrorType, exchange, code, message string, cause error) *ExchangeError {
	return common.NewExchangeError(errType, exchange, code, message, cause)
}

func NewNetworkError(exchange, code, message string, cause error, retriable bool) *ExchangeError {
	return common.NewNetworkError(exchange, code, message, cause, retriable)
}

func NewExchangeHTTPError(exchange string, statusCode int, body []byte, message string) *ExchangeError {
	return common.NewExchangeHTTPError(exchange, statusCode, body, message)
}

func NewParsingError(exchange, message string, cause error, rawData []byte) *ExchangeError {
	return common.NewParsingError(exchange, message, cause, rawData)
}

func NewAuthenticationError(exchange, message string) *ExchangeError {
	return common.NewAuthenticationError(exchange, message)
}

func NewArgumentsRequired(exchange, op, message string) *ExchangeError {
	return common.NewArgumentsRequired(exchange, op, message)
}

func NewInvalidOrder(exchange, op, message string) *ExchangeError {
	return common.NewInvalidOrder(exchange, op, message)
}

func NewBadSymbol(exchange, op, message string) *ExchangeError {
	return common.NewBadSymbol(exchange, op, message)
}

func NewNotSupported(exchange, op, message string) *ExchangeError {
	return common.NewNotSupported(exchange, op, message)
}

func NewNullResponse(exchange, op, message string) *ExchangeError {
	return common.NewNullResponse(exchange, op, message)
}

func IsNetworkError(err error) bool        { return common.IsNetworkError(err) }
func IsHTTPError(err error) bool           { return common.IsHTTPError(err) }
func IsRateLimitError(err error) bool      { return common.IsRateLimitError(err) }
func IsAuthenticationError(err error) bool { return common.IsAuthenticationError(err) }
func IsParsingError(err error) bool        { return common.IsParsingError(err) }
func IsArgumentsRequired(err error) bool   { return common.IsArgumentsRequired(err) }
func IsInvalidOrder(err error) bool        { return common.IsInvalidOrder(err) }
func IsBadSymbol(err error) bool           { return common.IsBadSymbol(err) }
func IsNotSupported(err error) bool        { return common.IsNotSupported(err) }
func IsNullResponse(err error) bool        { return common.IsNullResponse(err) }
func IsExchangeError(err error) bool       { return common.IsExchangeError(err) }
func IsRetriable(err error) bool           { return common.IsRetriable(err) }

func OrderSideFromString(s string) OrderSide { return common.OrderSideFromString(s) }
func OrderTypeFromString(s string) OrderType { return common.OrderTypeFromString(s) }
func OrderStatusFromString(s string) OrderStatus {
	return common.OrderStatusFromString(s)
}
func TimeInForceFromString(s string) TimeInForce { return common.TimeInForceFromString(s) }

// Float returns a pointer to v. Convenience for optional numeric literals.
func Float(v float64) *float64 { return common.Float(v) }

// ResolvePostOnly re-exports the post-only order resolver.
func ResolvePostOnly(exchange string, typ OrderType, tif TimeInForce, exchangeFlag bool, params Params) (OrderType, bool, TimeInForce, Params, error) {
	return common.ResolvePostOnly(exchange, typ, tif, exchangeFlag, params)
}

// MarketTypeAndParams re-exports market-type resolution.
func MarketTypeAndParams(method string, market *Market, opts TypeOptions, params Params) (string, Params) {
	return common.MarketTypeAndParams(method, market, opts, params)
}

// WithdrawTagAndParams re-exports withdraw tag untangling.
func WithdrawTagAndParams(tag any, params Params) (string, Params) {
	return common.WithdrawTagAndParams(tag, params)
}

func hmacSHA512Hex(secret, message string) string {
	return common.HMACSHA512Hex(secret, message)
}

func defaultLogger() *golog.Logger {
	return common.DefaultLogger()
}

func newHTTPMetricsCollector(m *metrics.Metrics, service string) gohttpcl.MetricsCollector {
	return common.NewHTTPMetricsCollector(m, service)
}
