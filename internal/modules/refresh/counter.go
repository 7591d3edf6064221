package refresh

import (
	"sync"
	"time"
)

// RequestCounter tracks requests sent since the last daily reset.
// It is reported in status only and never gates a fetch.
type RequestCounter struct {
	mu      sync.Mutex
	count   int64
	resetAt time.Time
}

// NewRequestCounter creates a counter whose window starts at now.
func NewRequestCounter(now time.Time) *RequestCounter {
	return &RequestCounter{resetAt: now}
}

// Inc records one request.
func (c *RequestCounter) Inc() {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

// Reset starts a new window at now and returns the previous count.
func (c *RequestCounter) Reset(now time.Time) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.count
	c.count = 0
	c.resetAt = now
	return previous
}

// Snapshot returns the current count and when the window started.
func (c *RequestCounter) Snapshot() (int64, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.resetAt
}
