// Command matrix-bridge receives matrix frames from the ticker over HTTP and
// forwards them to the LED matrix MCU through arduino-router.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/matrixbridge"
	"github.com/aristath/stockticker/pkg/logger"
)

func main() {
	cfg := config.LoadBridge()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Matrix bridge starting...")

	router, err := matrixbridge.Dial(cfg.RouterAddr, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to arduino-router")
	}
	defer router.Close()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	matrixbridge.NewHandler(router, log).RegisterRoutes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Listening for frames")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Bridge forced to shutdown")
	}
	log.Info().Msg("Matrix bridge stopped")
}
