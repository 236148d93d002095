package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of an error
type ErrorType string

const (
	// ErrorTypeHTTP represents HTTP-related errors (status codes, etc.)
	ErrorTypeHTTP ErrorType = "http"

	// ErrorTypeNetwork represents network-related errors (connection issues, timeouts, etc.)
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeAuthentication represents authentication errors
	ErrorTypeAuthentication ErrorType = "authentication"

	// ErrorTypeParsing represents JSON parsing or data format errors
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeArgumentsRequired represents a required argument missing from a call
	ErrorTypeArgumentsRequired ErrorType = "arguments_required"

	// ErrorTypeInvalidOrder represents an order rejected before transmission
	// because its attributes contradict each other or the venue's rules
	ErrorTypeInvalidOrder ErrorType = "invalid_order"

	// ErrorTypeBadSymbol represents a symbol unknown to the venue or of the
	// wrong market class for the operation
	ErrorTypeBadSymbol ErrorType = "bad_symbol"

	// ErrorTypeNotSupported represents an operation the venue cannot perform
	ErrorTypeNotSupported ErrorType = "not_supported"

	// ErrorTypeNullResponse represents a structurally valid response missing
	// the requested entry
	ErrorTypeNullResponse ErrorType = "null_response"

	// ErrorTypeExchange represents exchange-specific errors
	ErrorTypeExchange ErrorType = "exchange"

	// ErrorTypeUnknown represents unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// ExchangeError is the base error type for all exchange-related errors.
// Exchange and Op identify the adapter and unified operation the error
// originated from, so callers can tell which venue and which call failed
// without string-matching the message.
type ExchangeError struct {
	Type        ErrorType
	Exchange    string
	Op          string
	Code        string
	Message     string
	StatusCode  int
	RawResponse []byte
	Timestamp   time.Time
	Retriable   bool
	Cause       error
}

// Error returns the error message
func (e *ExchangeError) Error() string {
	prefix := e.Exchange
	if e.Op != "" {
		prefix = prefix + "." + e.Op
	}
	if prefix != "" {
		prefix = prefix + " "
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s[%s:%s] %s (HTTP %d)", prefix, e.Type, e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s[%s:%s] %s", prefix, e.Type, e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error
func (e *ExchangeError) Unwrap() error {
	return e.Cause
}

// IsRetriable returns whether the error is retriable
func (e *ExchangeError) IsRetriable() bool {
	return e.Retriable
}

// ParseJSON parses the error body as JSON
func (e *ExchangeError) ParseJSON(v interface{}) error {
	return json.Unmarshal(e.RawResponse, v)
}

// WithOp returns the error annotated with the unified operation name.
func (e *ExchangeError) WithOp(op string) *ExchangeError {
	e.Op = op
	return e
}

// NewExchangeError creates a new exchange error
func NewExchangeError(errType ErrorType, exchange, code, message string, cause error) *ExchangeError {
	return &ExchangeError{
		Type:      errType,
		Exchange:  exchange,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Retriable: false,
		Cause:     cause,
	}
}

// NewArgumentsRequired reports a missing required argument. Raised before
// any request is built.
func NewArgumentsRequired(exchange, op, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeArgumentsRequired,
		Exchange:  exchange,
		Op:        op,
		Code:      "arguments_required",
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInvalidOrder reports contradictory or disallowed order attributes.
// Raised before any request is built.
func NewInvalidOrder(exchange, op, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeInvalidOrder,
		Exchange:  exchange,
		Op:        op,
		Code:      "invalid_order",
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewBadSymbol reports a symbol the venue does not know or that is the
// wrong market class for the operation.
func NewBadSymbol(exchange, op, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeBadSymbol,
		Exchange:  exchange,
		Op:        op,
		Code:      "bad_symbol",
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewNotSupported reports an operation the venue cannot perform.
func NewNotSupported(exchange, op, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeNotSupported,
		Exchange:  exchange,
		Op:        op,
		Code:      "not_supported",
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewNullResponse reports a structurally valid response that lacks the
// requested entry. Never degrades to a key-access panic.
func NewNullResponse(exchange, op, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeNullResponse,
		Exchange:  exchange,
		Op:        op,
		Code:      "null_response",
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(exchange, code, message string, cause error, retriable bool) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeNetwork,
		Exchange:  exchange,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Retriable: retriable,
		Cause:     cause,
	}
}

// NewExchangeHTTPError creates a new HTTP error with enhanced information
func NewExchangeHTTPError(exchange string, statusCode int, body []byte, message string) *ExchangeError {
	retriable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	errType := ErrorTypeHTTP
	code := fmt.Sprintf("http_%d", statusCode)

	// Categorize common HTTP errors
	switch statusCode {
	case http.StatusTooManyRequests:
		errType = ErrorTypeRateLimit
		code = "rate_limit_exceeded"
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrorTypeAuthentication
		code = "authentication_failed"
	}

	return &ExchangeError{
		Type:        errType,
		Exchange:    exchange,
		Code:        code,
		Message:     message,
		StatusCode:  statusCode,
		RawResponse: body,
		Timestamp:   time.Now(),
		Retriable:   retriable,
	}
}

// NewParsingError creates a new parsing error
func NewParsingError(exchange, message string, cause error, rawData []byte) *ExchangeError {
	return &ExchangeError{
		Type:        ErrorTypeParsing,
		Exchange:    exchange,
		Code:        "json_parse_error",
		Message:     message,
		Timestamp:   time.Now(),
		Retriable:   false,
		Cause:       cause,
		RawResponse: rawData,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(exchange, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeAuthentication,
		Exchange:  exchange,
		Code:      "authentication_failed",
		Message:   message,
		Timestamp: time.Now(),
		Retriable: false,
	}
}

func hasErrorType(err error, t ErrorType) bool {
	var exchangeErr *ExchangeError
	if !errors.As(err, &exchangeErr) {
		return false
	}
	return exchangeErr.Type == t
}

// IsNetworkError checks if the error is a network error
func IsNetworkError(err error) bool { return hasErrorType(err, ErrorTypeNetwork) }

// IsHTTPError checks if the error is an HTTP error
func IsHTTPError(err error) bool { return hasErrorType(err, ErrorTypeHTTP) }

// IsRateLimitError checks if the error is a rate limit error
func IsRateLimitError(err error) bool { return hasErrorType(err, ErrorTypeRateLimit) }

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool { return hasErrorType(err, ErrorTypeAuthentication) }

// IsParsingError checks if the error is a parsing error
func IsParsingError(err error) bool { return hasErrorType(err, ErrorTypeParsing) }

// IsArgumentsRequired checks if the error reports a missing argument
func IsArgumentsRequired(err error) bool { return hasErrorType(err, ErrorTypeArgumentsRequired) }

// IsInvalidOrder checks if the error reports rejected order attributes
func IsInvalidOrder(err error) bool { return hasErrorType(err, ErrorTypeInvalidOrder) }

// IsBadSymbol checks if the error reports an unusable symbol
func IsBadSymbol(err error) bool { return hasErrorType(err, ErrorTypeBadSymbol) }

// IsNotSupported checks if the error reports an unsupported operation
func IsNotSupported(err error) bool { return hasErrorType(err, ErrorTypeNotSupported) }

// IsNullResponse checks if the error reports a missing response entry
func IsNullResponse(err error) bool { return hasErrorType(err, ErrorTypeNullResponse) }

// IsExchangeError checks if the error is a venue-reported error
func IsExchangeError(err error) bool { return hasErrorType(err, ErrorTypeExchange) }

// IsRetriable checks if the error is retriable
func IsRetriable(err error) bool {
	var exchangeErr *ExchangeError
	if !errors.As(err, &exchangeErr) {
		return false
	}
	return exchangeErr.IsRetriable()
}
