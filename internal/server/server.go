// Package server provides the HTTP server and routing for the ticker.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/stockticker/internal/di"
	displayhandlers "github.com/aristath/stockticker/internal/modules/display/handlers"
	markethandlers "github.com/aristath/stockticker/internal/modules/market_hours/handlers"
	quotehandlers "github.com/aristath/stockticker/internal/modules/quotes/handlers"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	Container *di.Container // DI container with all services
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	port      int
	container *di.Container

	// baseCtx outlives individual requests so hijacked stream connections
	// can be ended on shutdown.
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		router:     chi.NewRouter(),
		log:        cfg.Log.With().Str("component", "server").Logger(),
		port:       cfg.Port,
		container:  cfg.Container,
		baseCtx:    baseCtx,
		cancelBase: cancel,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.DevMode)

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware installs the middleware shared by every route. Timeout and
// compression are applied per group in setupRoutes since the event stream
// cannot use them.
func (s *Server) setupMiddleware() {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(devMode bool) {
	c := s.container

	s.router.Route("/api", func(r chi.Router) {
		// Long-lived websocket, outside the timeout group
		r.Get("/stream", NewStreamHandler(c.EventBus, c.Status, s.log).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			if !devMode {
				r.Use(middleware.Compress(5))
			}

			r.Get("/status", s.handleStatus)

			// Domain routes exist only when the configuration was valid
			if !c.Ready() {
				return
			}
			quotehandlers.NewHandler(c.Table, s.log).RegisterRoutes(r)
			markethandlers.NewHandler(c.MarketHours, c.ManualHoliday, s.log).RegisterRoutes(r)
			displayhandlers.NewHandler(c.Carousel, c.Backlight, c.Status, c.Clock, s.log).RegisterRoutes(r)
		})
	})

	s.router.Get("/health", s.handleHealth)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.cancelBase()
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
