package di

import (
	"fmt"

	"github.com/aristath/stockticker/internal/clients/demo"
	"github.com/aristath/stockticker/internal/clients/iexcloud"
	"github.com/aristath/stockticker/internal/clients/yahoo"
	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/aristath/stockticker/internal/modules/refresh"
	"github.com/rs/zerolog"
)

// InitializeServices builds the domain and display components from resolved
// settings.
func InitializeServices(container *Container, settings *config.Settings, log zerolog.Logger) error {
	clock, err := domain.NewSystemClock(settings.TimeZone)
	if err != nil {
		return domain.NewConfigError("system.timeZone", err)
	}
	container.Clock = clock

	// Holidays: the manual flag always applies, the calendar is optional
	container.ManualHoliday = market_hours.NewManualHoliday(settings.Holiday)
	container.Holidays = container.ManualHoliday
	if settings.HolidayCalendar == config.CalendarUS {
		container.Holidays = market_hours.NewUSCalendar(container.ManualHoliday)
	}
	container.MarketHours = market_hours.NewMarketHoursService(settings.Sessions, clock, container.Holidays, log)

	// Request budget
	durations, err := refresh.DurationsOf(settings.Sessions)
	if err != nil {
		return err
	}
	interval, err := refresh.NewPlanner(settings.Policy).IntervalFor(settings.Budget, durations)
	if err != nil {
		return err
	}
	container.Interval = interval

	container.Transport, err = newTransport(settings, log)
	if err != nil {
		return err
	}

	now := clock.Now()
	container.Table = quotes.NewTable(settings.Symbols)
	container.Counter = refresh.NewRequestCounter(now)
	container.Refresh = refresh.NewScheduler(refresh.Config{
		Table:     container.Table,
		Transport: container.Transport,
		Session:   container.MarketHours,
		Clock:     clock,
		Policy:    settings.Policy,
		Interval:  interval,
		Counter:   container.Counter,
		Status:    container.Status,
		Events:    container.EventManager,
	}, log)

	container.Backlight = display.NewBacklight(settings.Display)
	container.Matrix = display.NewMatrix(settings.Matrix)
	container.Bridge = display.NewBridge(container.Config.DisplayBridgeURL, log)
	container.Carousel = display.NewCarousel(container.Table, settings.NextSymbolDelay, container.Status, now)

	log.Info().
		Str("provider", settings.Provider.String()).
		Str("mode", settings.Budget.Mode.String()).
		Dur("interval", interval).
		Int("symbols", container.Table.Len()).
		Msg("Services initialized")

	return nil
}

func newTransport(settings *config.Settings, log zerolog.Logger) (domain.QuoteFetchTransport, error) {
	switch settings.Budget.Mode {
	case refresh.ModeDemo:
		return demo.NewClient(), nil
	case refresh.ModeSandbox, refresh.ModeLive:
		switch settings.Provider {
		case refresh.ProviderIEXCloud:
			return iexcloud.NewClient(settings.ApiKey, settings.Budget.Mode == refresh.ModeSandbox, log), nil
		case refresh.ProviderYahoo:
			return yahoo.NewClient(log), nil
		default:
			return nil, domain.NewConfigError("api.provider", domain.ErrUnknownApiProvider)
		}
	default:
		return nil, domain.NewConfigError("api.mode", fmt.Errorf("%w: %s", domain.ErrUnknownApiMode, settings.Budget.Mode))
	}
}
