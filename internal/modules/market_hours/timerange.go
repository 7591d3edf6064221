package market_hours

import (
	"fmt"
	"time"

	"github.com/aristath/stockticker/internal/domain"
)

// timeRangeLength is the length of the canonical "HH:MM-HH:MM" form.
const timeRangeLength = 11

// TimeRange is a same-day time-of-day window.
//
// Membership is an open interval: the start and end minutes themselves are
// outside the range.
type TimeRange struct {
	StartHour   uint
	StartMinute uint
	EndHour     uint
	EndMinute   uint
}

// NewTimeRange builds a range without validation. Use Validate or
// ParseTimeRange for configuration input.
func NewTimeRange(startHour, startMinute, endHour, endMinute uint) TimeRange {
	return TimeRange{
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
	}
}

// ParseTimeRange parses "HH:MM-HH:MM". The string must be exactly 11
// characters with the separators at fixed offsets.
func ParseTimeRange(s string) (TimeRange, error) {
	if len(s) != timeRangeLength || s[2] != ':' || s[5] != '-' || s[8] != ':' {
		return TimeRange{}, fmt.Errorf("%w: %q", domain.ErrMalformedTimeRange, s)
	}

	var fields [4]uint
	for i, offset := range []int{0, 3, 6, 9} {
		v, ok := parseTwoDigits(s[offset : offset+2])
		if !ok {
			return TimeRange{}, fmt.Errorf("%w: %q", domain.ErrMalformedTimeRange, s)
		}
		fields[i] = v
	}

	tr := NewTimeRange(fields[0], fields[1], fields[2], fields[3])
	if tr.StartHour > 23 || tr.EndHour > 23 || tr.StartMinute > 59 || tr.EndMinute > 59 {
		return TimeRange{}, fmt.Errorf("%w: %q out of bounds", domain.ErrMalformedTimeRange, s)
	}
	return tr, nil
}

func parseTwoDigits(s string) (uint, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return uint(s[0]-'0')*10 + uint(s[1]-'0'), true
}

// Contains reports whether hour:minute lies strictly between start and end.
func (r TimeRange) Contains(hour, minute int) bool {
	if hour < 0 || minute < 0 {
		return false
	}
	t := toSeconds(uint(hour), uint(minute))
	return t > r.startSeconds() && t < r.endSeconds()
}

// ContainsClock is Contains applied to the wall-clock fields of t.
func (r TimeRange) ContainsClock(t time.Time) bool {
	return r.Contains(t.Hour(), t.Minute())
}

// TotalSeconds returns the length of the range. A range whose end precedes
// its start has no defined length.
func (r TimeRange) TotalSeconds() (uint32, error) {
	start, end := r.startSeconds(), r.endSeconds()
	if end < start {
		return 0, fmt.Errorf("%w: %s ends before it starts", domain.ErrInvalidTimeRange, r)
	}
	return end - start, nil
}

// Validate checks bounds and ordering.
func (r TimeRange) Validate() error {
	if r.StartHour > 23 || r.EndHour > 23 || r.StartMinute > 59 || r.EndMinute > 59 {
		return fmt.Errorf("%w: %s out of bounds", domain.ErrInvalidTimeRange, r)
	}
	_, err := r.TotalSeconds()
	return err
}

// String returns the canonical "HH:MM-HH:MM" form.
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
}

// MarshalText implements encoding.TextMarshaler.
func (r TimeRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *TimeRange) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r TimeRange) startSeconds() uint32 {
	return toSeconds(r.StartHour, r.StartMinute)
}

func (r TimeRange) endSeconds() uint32 {
	return toSeconds(r.EndHour, r.EndMinute)
}

func toSeconds(hour, minute uint) uint32 {
	return uint32(hour*3600 + minute*60)
}
