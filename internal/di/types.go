// Package di provides dependency injection wiring and initialization.
package di

import (
	"time"

	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/events"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/aristath/stockticker/internal/modules/refresh"
	"github.com/aristath/stockticker/internal/scheduler"
)

// Container holds every long-lived component. The infrastructure fields
// are always set. The domain fields stay nil when the configuration is
// invalid, in which case ConfigErr says why.
type Container struct {
	Config *config.Config

	// Infrastructure
	EventBus     *events.Bus
	EventManager *events.Manager
	Status       *display.StatusManager

	// Configuration
	Settings  *config.Settings
	ConfigErr error

	// Domain
	Clock         domain.ClockSource
	ManualHoliday *market_hours.ManualHoliday
	Holidays      market_hours.HolidaySource
	MarketHours   *market_hours.MarketHoursService
	Table         *quotes.Table
	Transport     domain.QuoteFetchTransport
	Counter       *refresh.RequestCounter
	Interval      time.Duration
	Refresh       *refresh.Scheduler

	// Display
	Backlight *display.Backlight
	Matrix    *display.Matrix
	Bridge    *display.Bridge
	Carousel  *display.Carousel

	// Jobs
	Scheduler *scheduler.Scheduler
	Jobs      *JobInstances
}

// JobInstances holds the registered cron jobs so they can also be run on
// demand, e.g. once at startup.
type JobInstances struct {
	MarketSession       scheduler.Job
	Brightness          scheduler.Job
	Carousel            scheduler.Job
	RequestCounterReset scheduler.Job
}

// Ready reports whether the domain components were built.
func (c *Container) Ready() bool {
	return c.ConfigErr == nil && c.Refresh != nil
}
