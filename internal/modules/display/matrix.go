package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/quotes"
)

// Pattern is the animation the LED matrix plays.
type Pattern int

const (
	PatternOff Pattern = iota
	PatternSolid
	PatternGainers
	PatternPulse
)

var patternNames = [...]string{"off", "solid", "gainers", "pulse"}

// String returns the configuration name of the pattern.
func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return patternNames[PatternOff]
	}
	return patternNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePattern resolves a configured pattern name, ignoring case.
func ParsePattern(s string) (Pattern, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return PatternOff, fmt.Errorf("unknown matrix pattern: %q", s)
}

// LEDColor represents RGB color values (0-255)
type LEDColor struct {
	R uint8 `json:"r" msgpack:"r"`
	G uint8 `json:"g" msgpack:"g"`
	B uint8 `json:"b" msgpack:"b"`
}

var (
	ColorOff   = LEDColor{}
	ColorGreen = LEDColor{G: 255}
	ColorRed   = LEDColor{R: 255}
	ColorBlue  = LEDColor{B: 255}
)

// Frame is one complete matrix state as sent to the device bridge.
type Frame struct {
	Pattern    Pattern  `json:"pattern" msgpack:"pattern"`
	Color      LEDColor `json:"color" msgpack:"color"`
	Brightness uint8    `json:"brightness" msgpack:"brightness"`
	Gainers    int      `json:"gainers" msgpack:"gainers"`
	Losers     int      `json:"losers" msgpack:"losers"`
}

// MatrixConfig selects patterns per session and the matrix dimming.
type MatrixConfig struct {
	MarketHoursPattern Pattern
	AfterHoursPattern  Pattern
	Dimming            DimmingConfig
}

// Matrix derives frames from the market state and the symbol table.
type Matrix struct {
	config MatrixConfig
}

// NewMatrix creates a matrix indicator.
func NewMatrix(config MatrixConfig) *Matrix {
	return &Matrix{config: config}
}

// PatternFor returns the pattern for a market state. Pre and after hours
// share the extended-hours pattern; every other state turns the matrix off.
func (m *Matrix) PatternFor(state market_hours.MarketState) Pattern {
	switch state {
	case market_hours.MarketHours:
		return m.config.MarketHoursPattern
	case market_hours.PreHours, market_hours.AfterHours:
		return m.config.AfterHoursPattern
	default:
		return PatternOff
	}
}

// FrameFor builds the frame for state using the change of every valid,
// fetched record. The colour follows the sign of the summed change: green
// up, red down, blue flat.
func (m *Matrix) FrameFor(state market_hours.MarketState, records []quotes.SymbolRecord, now time.Time) Frame {
	pattern := m.PatternFor(state)
	if pattern == PatternOff {
		return Frame{Pattern: PatternOff, Color: ColorOff}
	}

	frame := Frame{
		Pattern:    pattern,
		Brightness: m.config.Dimming.Level(now),
	}

	var total float64
	for _, r := range records {
		if !r.IsValid || r.NeverFetched() {
			continue
		}
		total += r.Change
		switch {
		case r.Change > 0:
			frame.Gainers++
		case r.Change < 0:
			frame.Losers++
		}
	}

	switch {
	case total > 0:
		frame.Color = ColorGreen
	case total < 0:
		frame.Color = ColorRed
	default:
		frame.Color = ColorBlue
	}
	return frame
}
