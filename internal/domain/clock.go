package domain

import "time"

// SystemClock reads the host clock and converts it to a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock for the given IANA zone name.
// An empty name means UTC.
func NewSystemClock(zone string) (*SystemClock, error) {
	if zone == "" {
		return &SystemClock{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &SystemClock{Location: loc}, nil
}

// Now returns the current time in the clock's location.
func (c *SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
