package market_hours

import (
	"sync"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/rs/zerolog"
)

// Classify determines the market state for now. Holiday and weekend take
// precedence over the time-of-day windows, which carry no day-of-week meaning.
func Classify(sessions Sessions, now time.Time, isHoliday bool) MarketState {
	if isHoliday {
		return Holiday
	}

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return Weekend
	}

	hour, minute := now.Hour(), now.Minute()
	switch {
	case sessions.PreMarket.Contains(hour, minute):
		return PreHours
	case sessions.Market.Contains(hour, minute):
		return MarketHours
	case sessions.AfterMarket.Contains(hour, minute):
		return AfterHours
	default:
		return Closed
	}
}

// MarketHoursService classifies the current session from a clock and a
// holiday source. It keeps the last observed state only to report changes.
type MarketHoursService struct {
	sessions Sessions
	clock    domain.ClockSource
	holidays HolidaySource
	log      zerolog.Logger

	mu   sync.Mutex
	last MarketState
}

// NewMarketHoursService creates a new market hours service
func NewMarketHoursService(sessions Sessions, clock domain.ClockSource, holidays HolidaySource, log zerolog.Logger) *MarketHoursService {
	if holidays == nil {
		holidays = NewManualHoliday(false)
	}
	return &MarketHoursService{
		sessions: sessions,
		clock:    clock,
		holidays: holidays,
		log:      log.With().Str("component", "market_hours").Logger(),
		last:     Unknown,
	}
}

// Sessions returns the configured session windows.
func (s *MarketHoursService) Sessions() Sessions {
	return s.sessions
}

// Holidays returns the holiday source in use.
func (s *MarketHoursService) Holidays() HolidaySource {
	return s.holidays
}

// CurrentState evaluates the state from the clock right now.
func (s *MarketHoursService) CurrentState() MarketState {
	now := s.clock.Now()
	return Classify(s.sessions, now, s.holidays.IsHoliday(now))
}

// Observe evaluates the state and reports whether it differs from the
// previous observation.
func (s *MarketHoursService) Observe() (MarketState, bool) {
	state := s.CurrentState()

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := state != s.last
	if changed {
		s.log.Info().
			Str("from", s.last.String()).
			Str("to", state.String()).
			Msg("Market state changed")
		s.last = state
	}
	return state, changed
}

// GetMarketStatus returns detailed status for display clients.
func (s *MarketHoursService) GetMarketStatus() MarketStatus {
	now := s.clock.Now()
	holiday := s.holidays.IsHoliday(now)
	return MarketStatus{
		State:     Classify(s.sessions, now, holiday),
		Holiday:   holiday,
		LocalTime: now.Format("15:04:05"),
		Timezone:  now.Location().String(),
		Sessions:  s.sessions,
	}
}
