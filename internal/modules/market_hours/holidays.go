package market_hours

import (
	"sync"
	"sync/atomic"
	"time"
)

// HolidaySource answers whether the market is closed for a holiday on the
// date of t.
type HolidaySource interface {
	IsHoliday(t time.Time) bool
}

// ManualHoliday is an operator-set flag. It applies to whatever day it is
// while set; there is no calendar behind it.
type ManualHoliday struct {
	flag atomic.Bool
}

// NewManualHoliday creates a flag with the given initial value.
func NewManualHoliday(initial bool) *ManualHoliday {
	h := &ManualHoliday{}
	h.flag.Store(initial)
	return h
}

// IsHoliday implements HolidaySource.
func (h *ManualHoliday) IsHoliday(time.Time) bool {
	return h.flag.Load()
}

// Set changes the flag.
func (h *ManualHoliday) Set(holiday bool) {
	h.flag.Store(holiday)
}

// USCalendar computes NYSE full-day closures from fixed rules. The manual
// flag is OR-ed in so an operator can still close an unlisted day.
type USCalendar struct {
	manual *ManualHoliday

	mu    sync.Mutex
	cache map[int][]civilDate // Cache holidays by year
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// NewUSCalendar creates a rule-based calendar.
func NewUSCalendar(manual *ManualHoliday) *USCalendar {
	if manual == nil {
		manual = NewManualHoliday(false)
	}
	return &USCalendar{
		manual: manual,
		cache:  make(map[int][]civilDate),
	}
}

// IsHoliday implements HolidaySource.
func (c *USCalendar) IsHoliday(t time.Time) bool {
	if c.manual.IsHoliday(t) {
		return true
	}

	today := dateOf(t)
	for _, h := range c.holidaysFor(today.year) {
		if h == today {
			return true
		}
	}
	return false
}

// Manual returns the operator flag layered over the calendar.
func (c *USCalendar) Manual() *ManualHoliday {
	return c.manual
}

func (c *USCalendar) holidaysFor(year int) []civilDate {
	c.mu.Lock()
	defer c.mu.Unlock()

	if holidays, ok := c.cache[year]; ok {
		return holidays
	}

	// A Saturday New Year's Day observes on Dec 31 of the previous year,
	// which never matches this year's lookups; NYSE does not close then.
	dates := CalculateUSHolidays(year)
	holidays := make([]civilDate, 0, len(dates))
	for _, d := range dates {
		holidays = append(holidays, dateOf(d))
	}
	c.cache[year] = holidays
	return holidays
}

// CalculateEaster returns Easter Sunday (Gregorian computus).
func CalculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// findNthWeekday finds the nth occurrence of a weekday in a given month/year
func findNthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	daysToAdd := int(weekday - date.Weekday())
	if daysToAdd < 0 {
		daysToAdd += 7
	}
	return date.AddDate(0, 0, daysToAdd+(n-1)*7)
}

// findLastWeekday finds the last occurrence of a weekday in a given month/year
func findLastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	date := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	daysToSubtract := int(date.Weekday() - weekday)
	if daysToSubtract < 0 {
		daysToSubtract += 7
	}
	return date.AddDate(0, 0, -daysToSubtract)
}

// observeOnWeekday moves a weekend date to the nearest weekday.
// Saturday -> Friday, Sunday -> Monday
func observeOnWeekday(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}

// CalculateUSHolidays calculates all US market holidays for a given year
func CalculateUSHolidays(year int) []time.Time {
	holidays := make([]time.Time, 0, 10)

	// New Year's Day - Jan 1 (observed on nearest weekday)
	holidays = append(holidays, observeOnWeekday(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Martin Luther King Jr. Day and Presidents Day - 3rd Mondays
	holidays = append(holidays, findNthWeekday(year, time.January, time.Monday, 3))
	holidays = append(holidays, findNthWeekday(year, time.February, time.Monday, 3))

	// Good Friday - Friday before Easter
	holidays = append(holidays, CalculateEaster(year).AddDate(0, 0, -2))

	// Memorial Day - Last Monday in May
	holidays = append(holidays, findLastWeekday(year, time.May, time.Monday))

	// Juneteenth and Independence Day (observed on nearest weekday)
	holidays = append(holidays, observeOnWeekday(time.Date(year, 6, 19, 0, 0, 0, 0, time.UTC)))
	holidays = append(holidays, observeOnWeekday(time.Date(year, 7, 4, 0, 0, 0, 0, time.UTC)))

	// Labor Day - 1st Monday in September
	holidays = append(holidays, findNthWeekday(year, time.September, time.Monday, 1))

	// Thanksgiving - 4th Thursday in November
	holidays = append(holidays, findNthWeekday(year, time.November, time.Thursday, 4))

	// Christmas - Dec 25 (observed on nearest weekday)
	holidays = append(holidays, observeOnWeekday(time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC)))

	return holidays
}
