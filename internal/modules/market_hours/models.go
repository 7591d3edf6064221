package market_hours

import "fmt"

// MarketState is the trading session derived from wall-clock time.
type MarketState int

const (
	Unknown MarketState = iota
	Holiday
	Weekend
	PreHours
	MarketHours
	AfterHours
	Closed
)

var marketStateNames = [...]string{"Unknown", "Holiday", "Weekend", "PreHours", "MarketHours", "AfterHours", "Closed"}

// String returns the display name of the state.
func (s MarketState) String() string {
	if s < 0 || int(s) >= len(marketStateNames) {
		return marketStateNames[Unknown]
	}
	return marketStateNames[s]
}

// MarshalText implements encoding.TextMarshaler so states render as names in JSON.
func (s MarketState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MarketState) UnmarshalText(text []byte) error {
	for i, name := range marketStateNames {
		if name == string(text) {
			*s = MarketState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown market state: %q", string(text))
}

// Sessions groups the configured time-of-day windows of a trading day.
type Sessions struct {
	PreMarket   TimeRange `json:"pre_market"`
	Market      TimeRange `json:"market"`
	AfterMarket TimeRange `json:"after_market"`
}

// DefaultSessions are the US equity sessions in exchange local time.
var DefaultSessions = Sessions{
	PreMarket:   NewTimeRange(4, 0, 9, 29),
	Market:      NewTimeRange(9, 30, 15, 59),
	AfterMarket: NewTimeRange(16, 0, 21, 59),
}

// MarketStatus is the read model served to display clients.
type MarketStatus struct {
	State     MarketState `json:"state"`
	Holiday   bool        `json:"holiday"`
	LocalTime string      `json:"local_time"`
	Timezone  string      `json:"timezone"`
	Sessions  Sessions    `json:"sessions"`
}
