package di

import (
	"fmt"

	"github.com/aristath/stockticker/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the cron scheduler and registers the background jobs.
// The refresh loop is not a cron job: it runs on its own ticker at the
// planned interval.
func RegisterJobs(container *Container, log zerolog.Logger) error {
	if container == nil || container.MarketHours == nil {
		return fmt.Errorf("services must be initialized before jobs")
	}

	loc := container.Clock.Now().Location()
	container.Scheduler = scheduler.New(loc, log)

	jobs := &JobInstances{
		MarketSession: scheduler.NewMarketSessionJob(container.MarketHours, container.EventManager),
		Brightness: scheduler.NewBrightnessJob(
			container.Clock,
			container.MarketHours,
			container.Table,
			container.Backlight,
			container.Matrix,
			container.Bridge,
			log,
		),
		Carousel:            scheduler.NewCarouselJob(container.Clock, container.Carousel),
		RequestCounterReset: scheduler.NewRequestCounterResetJob(container.Clock, container.Counter, log),
	}

	schedules := []struct {
		schedule string
		job      scheduler.Job
	}{
		{scheduler.EveryMinute, jobs.MarketSession},
		{scheduler.EveryMinute, jobs.Brightness},
		{scheduler.EverySecond, jobs.Carousel},
		{scheduler.Midnight, jobs.RequestCounterReset},
	}
	for _, s := range schedules {
		if err := container.Scheduler.AddJob(s.schedule, s.job); err != nil {
			return fmt.Errorf("failed to register %s job: %w", s.job.Name(), err)
		}
	}

	container.Jobs = jobs
	return nil
}
