package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	// Embedded zone database for hosts without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/di"
	"github.com/aristath/stockticker/internal/scheduler"
	"github.com/aristath/stockticker/internal/server"
	"github.com/aristath/stockticker/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting stock ticker")

	// A configuration error is not fatal to the process: the server keeps
	// reporting it while the refresh loop and jobs stay down.
	container, err := di.Wire(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Configuration invalid, quotes will not be fetched")
	}

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	if container.Ready() {
		// Settle market state and brightness before the first full minute
		for _, job := range []scheduler.Job{container.Jobs.MarketSession, container.Jobs.Brightness} {
			if err := container.Scheduler.RunNow(job); err != nil {
				log.Warn().Err(err).Str("job", job.Name()).Msg("Startup job failed")
			}
		}

		container.Scheduler.Start()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := container.Refresh.Run(ctx); err != nil {
				log.Error().Err(err).Msg("Refresh loop exited")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	cancel()
	wg.Wait()

	if container.Scheduler != nil {
		container.Scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
