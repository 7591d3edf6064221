package domain

import (
	"errors"
	"fmt"
)

// Configuration errors. These are fatal and only ever raised at startup.
var (
	ErrMalformedTimeRange = errors.New("malformed time range")
	ErrInvalidTimeRange   = errors.New("invalid time range")
	ErrInvalidBudget      = errors.New("invalid request budget")
	ErrUnknownApiProvider = errors.New("unknown api provider")
	ErrUnknownApiMode     = errors.New("unknown api mode")
)

// ConfigError ties a configuration sentinel to the offending field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err for the given field.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

// FetchErrorKind classifies quote fetch failures.
type FetchErrorKind int

const (
	// NetworkFailure covers connection errors and timeouts.
	NetworkFailure FetchErrorKind = iota
	// HttpStatus is any unexpected non-200 response.
	HttpStatus
	// UnknownSymbol means the API reports the symbol does not exist.
	UnknownSymbol
	// Forbidden means the key lacks access to the endpoint.
	Forbidden
	// InvalidApiKey invalidates every future request.
	InvalidApiKey
	// MalformedResponse means the body could not be decoded.
	MalformedResponse
)

// String returns a human-readable name for the kind.
func (k FetchErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "NetworkFailure"
	case HttpStatus:
		return "HttpStatus"
	case UnknownSymbol:
		return "UnknownSymbol"
	case Forbidden:
		return "Forbidden"
	case InvalidApiKey:
		return "InvalidApiKey"
	case MalformedResponse:
		return "MalformedResponse"
	default:
		return "Unknown"
	}
}

// FetchError is returned by QuoteFetchTransport implementations.
type FetchError struct {
	Kind       FetchErrorKind
	Symbol     string
	StatusCode int // set for HttpStatus
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.Symbol, e.Kind)
	if e.Kind == HttpStatus {
		msg = fmt.Sprintf("%s %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchErrorKindOf extracts the kind from err. Errors that are not
// *FetchError are treated as network failures.
func FetchErrorKindOf(err error) FetchErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return NetworkFailure
}

// IsUnknownSymbol reports whether err permanently invalidates a symbol.
func IsUnknownSymbol(err error) bool {
	return err != nil && FetchErrorKindOf(err) == UnknownSymbol
}

// IsInvalidApiKey reports whether err invalidates all future fetches.
func IsInvalidApiKey(err error) bool {
	return err != nil && FetchErrorKindOf(err) == InvalidApiKey
}
