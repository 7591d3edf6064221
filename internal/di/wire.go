package di

import (
	"fmt"

	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/events"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/rs/zerolog"
)

// Wire initializes all dependencies and returns a configured container.
// Order of operations:
// 1. Infrastructure (event bus, status)
// 2. Parameters (load, validate, resolve)
// 3. Services
// 4. Jobs
//
// A configuration error is fatal for the domain but not for the process:
// the container is still returned with ConfigErr set and the status in its
// error state, so the HTTP surface can report it.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	bus := events.NewBus(log)
	eventManager := events.NewManager(bus, log)

	container := &Container{
		Config:       cfg,
		EventBus:     bus,
		EventManager: eventManager,
		Status:       display.NewStatusManager(eventManager, log),
	}

	if err := wireDomain(container, log); err != nil {
		container.ConfigErr = err
		container.Status.SetFatalError(err.Error())
		return container, err
	}
	return container, nil
}

func wireDomain(container *Container, log zerolog.Logger) error {
	params, err := config.LoadParameters(container.Config.ParametersFile)
	if err != nil {
		container.Status.SetSD(false)
		return fmt.Errorf("failed to load parameters: %w", err)
	}
	container.Status.SetSD(true)

	settings, err := params.Resolve(container.Config.ApiKey)
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	container.Settings = settings

	if err := InitializeServices(container, settings, log); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	container.Status.SetTime(true)
	container.Status.SetWifi(len(settings.WifiCredentials) > 0 || container.Config.DevMode)

	if err := RegisterJobs(container, log); err != nil {
		return fmt.Errorf("failed to register jobs: %w", err)
	}
	return nil
}
