// Package events provides event management functionality.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	MarketStateChanged EventType = "MARKET_STATE_CHANGED"
	QuoteUpdated       EventType = "QUOTE_UPDATED"
	SymbolInvalidated  EventType = "SYMBOL_INVALIDATED"
	FetchFailed        EventType = "FETCH_FAILED"
	StatusChanged      EventType = "STATUS_CHANGED"
	ErrorOccurred      EventType = "ERROR_OCCURRED"
)

// Event is what subscribers receive.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data,omitempty"`
}

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// MarketStateChangedData contains data for MarketStateChanged events
type MarketStateChangedData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EventType returns the event type for MarketStateChangedData
func (d *MarketStateChangedData) EventType() EventType {
	return MarketStateChanged
}

// QuoteUpdatedData contains data for QuoteUpdated events
type QuoteUpdatedData struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	FetchedAt     int64   `json:"fetched_at"`
}

// EventType returns the event type for QuoteUpdatedData
func (d *QuoteUpdatedData) EventType() EventType {
	return QuoteUpdated
}

// SymbolInvalidatedData contains data for SymbolInvalidated events
type SymbolInvalidatedData struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// EventType returns the event type for SymbolInvalidatedData
func (d *SymbolInvalidatedData) EventType() EventType {
	return SymbolInvalidated
}

// FetchFailedData contains data for FetchFailed events
type FetchFailedData struct {
	Symbol string `json:"symbol"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// EventType returns the event type for FetchFailedData
func (d *FetchFailedData) EventType() EventType {
	return FetchFailed
}

// StatusChangedData carries the indicator flags after a change.
type StatusChangedData struct {
	Wifi              bool   `json:"wifi"`
	SD                bool   `json:"sd"`
	Api               bool   `json:"api"`
	Time              bool   `json:"time"`
	SymbolLocked      bool   `json:"symbol_locked"`
	RequestInProgress bool   `json:"request_in_progress"`
	FatalError        string `json:"fatal_error,omitempty"`
}

// EventType returns the event type for StatusChangedData
func (d *StatusChangedData) EventType() EventType {
	return StatusChanged
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}
