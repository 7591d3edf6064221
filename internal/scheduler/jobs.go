package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/events"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/aristath/stockticker/internal/modules/refresh"
	"github.com/rs/zerolog"
)

// Schedules for the registered jobs.
const (
	EveryMinute = "0 * * * * *"
	EverySecond = "* * * * * *"
	Midnight    = "0 0 0 * * *"
)

// MarketSessionJob re-evaluates the market state and announces changes.
type MarketSessionJob struct {
	service *market_hours.MarketHoursService
	events  *events.Manager
	last    market_hours.MarketState
}

// NewMarketSessionJob creates the session evaluation job.
func NewMarketSessionJob(service *market_hours.MarketHoursService, eventManager *events.Manager) *MarketSessionJob {
	return &MarketSessionJob{service: service, events: eventManager, last: market_hours.Unknown}
}

// Name implements Job.
func (j *MarketSessionJob) Name() string { return "market_session" }

// Run implements Job.
func (j *MarketSessionJob) Run() error {
	state, changed := j.service.Observe()
	if changed {
		j.events.Emit("market_hours", &events.MarketStateChangedData{
			From: j.last.String(),
			To:   state.String(),
		})
	}
	j.last = state
	return nil
}

// BrightnessJob applies the backlight level and pushes the matrix frame.
type BrightnessJob struct {
	clock     domain.ClockSource
	session   refresh.SessionSource
	table     *quotes.Table
	backlight *display.Backlight
	matrix    *display.Matrix
	bridge    *display.Bridge
	log       zerolog.Logger
}

// NewBrightnessJob creates the brightness and matrix job.
func NewBrightnessJob(
	clock domain.ClockSource,
	session refresh.SessionSource,
	table *quotes.Table,
	backlight *display.Backlight,
	matrix *display.Matrix,
	bridge *display.Bridge,
	log zerolog.Logger,
) *BrightnessJob {
	return &BrightnessJob{
		clock:     clock,
		session:   session,
		table:     table,
		backlight: backlight,
		matrix:    matrix,
		bridge:    bridge,
		log:       log.With().Str("job", "brightness").Logger(),
	}
}

// Name implements Job.
func (j *BrightnessJob) Name() string { return "brightness" }

// Run implements Job.
func (j *BrightnessJob) Run() error {
	now := j.clock.Now()

	if level, changed := j.backlight.Update(now); changed {
		j.log.Info().Uint8("level", level).Msg("Backlight level changed")
	}

	frame := j.matrix.FrameFor(j.session.CurrentState(), j.table.Snapshot(), now)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := j.bridge.Push(ctx, frame); err != nil {
		return fmt.Errorf("failed to push matrix frame: %w", err)
	}
	return nil
}

// CarouselJob auto-advances the symbol on screen.
type CarouselJob struct {
	clock    domain.ClockSource
	carousel *display.Carousel
}

// NewCarouselJob creates the carousel job.
func NewCarouselJob(clock domain.ClockSource, carousel *display.Carousel) *CarouselJob {
	return &CarouselJob{clock: clock, carousel: carousel}
}

// Name implements Job.
func (j *CarouselJob) Name() string { return "carousel" }

// Run implements Job.
func (j *CarouselJob) Run() error {
	j.carousel.Advance(j.clock.Now())
	return nil
}

// RequestCounterResetJob starts a new daily request window.
type RequestCounterResetJob struct {
	clock   domain.ClockSource
	counter *refresh.RequestCounter
	log     zerolog.Logger
}

// NewRequestCounterResetJob creates the daily reset job.
func NewRequestCounterResetJob(clock domain.ClockSource, counter *refresh.RequestCounter, log zerolog.Logger) *RequestCounterResetJob {
	return &RequestCounterResetJob{
		clock:   clock,
		counter: counter,
		log:     log.With().Str("job", "request_counter_reset").Logger(),
	}
}

// Name implements Job.
func (j *RequestCounterResetJob) Name() string { return "request_counter_reset" }

// Run implements Job.
func (j *RequestCounterResetJob) Run() error {
	previous := j.counter.Reset(j.clock.Now())
	j.log.Info().Int64("requests", previous).Msg("Daily request counter reset")
	return nil
}
