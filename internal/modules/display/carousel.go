package display

import (
	"sync"
	"time"

	"github.com/aristath/stockticker/internal/modules/quotes"
)

// TouchDebounce is the minimum spacing between two accepted touches.
const TouchDebounce = 250 * time.Millisecond

// Carousel tracks which symbol is on screen. It advances on touch and,
// unless locked, automatically after the configured delay. Invalid symbols
// are skipped.
type Carousel struct {
	table  *quotes.Table
	delay  time.Duration
	status *StatusManager

	mu         sync.Mutex
	index      int
	locked     bool
	lastSwitch time.Time
	lastTouch  time.Time
}

// NewCarousel creates a carousel starting at the first symbol. A zero delay
// disables auto-advance. status may be nil.
func NewCarousel(table *quotes.Table, delay time.Duration, status *StatusManager, now time.Time) *Carousel {
	return &Carousel{
		table:      table,
		delay:      delay,
		status:     status,
		lastSwitch: now,
	}
}

// Current returns the record on screen, moving past it first if it has
// been invalidated since it was selected.
func (c *Carousel) Current() (quotes.SymbolRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.table.At(c.index)
	if ok && record.IsValid {
		return record, true
	}
	if !c.step() {
		return record, ok
	}
	return c.table.At(c.index)
}

// Index returns the position of the symbol on screen.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Next handles a touch. Touches closer together than TouchDebounce are
// ignored.
func (c *Carousel) Next(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastTouch.IsZero() && now.Sub(c.lastTouch) < TouchDebounce {
		return false
	}
	c.lastTouch = now

	if !c.step() {
		return false
	}
	c.lastSwitch = now
	return true
}

// Advance moves to the next symbol once the delay has elapsed since the
// last switch.
func (c *Carousel) Advance(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locked || c.delay <= 0 || now.Sub(c.lastSwitch) < c.delay {
		return false
	}
	if !c.step() {
		return false
	}
	c.lastSwitch = now
	return true
}

// SetLocked pins or releases the current symbol.
func (c *Carousel) SetLocked(locked bool) {
	c.mu.Lock()
	c.locked = locked
	c.mu.Unlock()

	if c.status != nil {
		c.status.SetSymbolLocked(locked)
	}
}

// Locked reports whether auto-advance is suspended.
func (c *Carousel) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// step moves to the next valid record after the current one, wrapping
// around. Must be called with mu held.
func (c *Carousel) step() bool {
	n := c.table.Len()
	for i := 1; i <= n; i++ {
		candidate := (c.index + i) % n
		if record, ok := c.table.At(candidate); ok && record.IsValid {
			changed := candidate != c.index
			c.index = candidate
			return changed
		}
	}
	return false
}
