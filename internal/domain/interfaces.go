package domain

import (
	"context"
	"time"
)

// QuoteFetchTransport retrieves the latest quote values for one symbol.
// Implementations own their timeout; a timeout is reported as a NetworkFailure.
// Errors should be *FetchError so callers can tell permanent from transient failures.
type QuoteFetchTransport interface {
	Fetch(ctx context.Context, symbol string) (QuoteValues, error)
}

// ClockSource supplies the local wall-clock time used for session
// classification and fetch timestamps.
type ClockSource interface {
	Now() time.Time
}
