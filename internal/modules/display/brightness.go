package display

import (
	"sync/atomic"
	"time"

	"github.com/aristath/stockticker/internal/modules/market_hours"
)

// DimmingConfig describes one light source: full brightness outside the dim
// window and reduced brightness inside it.
type DimmingConfig struct {
	Max       uint8
	Min       uint8
	DimWindow market_hours.TimeRange
}

// Level returns the brightness to use at now. The dim window follows the
// same open-interval rule as the session ranges.
func (c DimmingConfig) Level(now time.Time) uint8 {
	if c.DimWindow.ContainsClock(now) {
		return c.Min
	}
	return c.Max
}

// Dimmed reports whether now falls inside the dim window.
func (c DimmingConfig) Dimmed(now time.Time) bool {
	return c.DimWindow.ContainsClock(now)
}

// MapFloat linearly maps x from [inMin, inMax] to [outMin, outMax], rounding
// half a step the way integer pixel maths does.
func MapFloat(x, inMin, inMax, outMin, outMax float64) float64 {
	dividend := outMax - outMin
	divisor := inMax - inMin
	if divisor == 0 {
		return outMin
	}
	delta := x - inMin
	return (delta*dividend+divisor/2)/divisor + outMin
}

// Backlight holds the screen brightness most recently applied.
type Backlight struct {
	config DimmingConfig
	level  atomic.Uint32
}

// NewBacklight creates a backlight at full brightness.
func NewBacklight(config DimmingConfig) *Backlight {
	b := &Backlight{config: config}
	b.level.Store(uint32(config.Max))
	return b
}

// Update recomputes the level for now and reports whether it changed.
func (b *Backlight) Update(now time.Time) (uint8, bool) {
	level := b.config.Level(now)
	previous := b.level.Swap(uint32(level))
	return level, previous != uint32(level)
}

// Level returns the current level.
func (b *Backlight) Level() uint8 {
	return uint8(b.level.Load())
}
