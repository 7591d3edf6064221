package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/events"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const moduleName = "refresh"

// Outcome describes what a single tick did.
type Outcome int

const (
	// NoValidSymbols means every record has been invalidated.
	NoValidSymbols Outcome = iota
	// Gated means the session forbids fetching the selected record now.
	Gated
	// Busy means another fetch was still in flight.
	Busy
	// Fetched means the selected record was refreshed.
	Fetched
	// Invalidated means the API reported the symbol as unknown.
	Invalidated
	// Failed means the fetch failed and the record stays stale.
	Failed
)

// String returns a log-friendly name.
func (o Outcome) String() string {
	switch o {
	case NoValidSymbols:
		return "no_valid_symbols"
	case Gated:
		return "gated"
	case Busy:
		return "busy"
	case Fetched:
		return "fetched"
	case Invalidated:
		return "invalidated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionSource supplies the current market state.
type SessionSource interface {
	CurrentState() market_hours.MarketState
}

// StatusSink receives indicator updates from the scheduler.
type StatusSink interface {
	SetRequestInProgress(inProgress bool)
	SetApi(ok bool)
	SetFatalError(message string)
}

// Scheduler refreshes the stalest valid symbol on each tick.
type Scheduler struct {
	table     *quotes.Table
	transport domain.QuoteFetchTransport
	session   SessionSource
	clock     domain.ClockSource
	policy    FetchPolicy
	interval  time.Duration
	counter   *RequestCounter
	status    StatusSink
	events    *events.Manager
	log       zerolog.Logger

	// inflight bounds concurrent fetches to one.
	inflight sync.Mutex
}

// Config bundles the scheduler's collaborators.
type Config struct {
	Table     *quotes.Table
	Transport domain.QuoteFetchTransport
	Session   SessionSource
	Clock     domain.ClockSource
	Policy    FetchPolicy
	Interval  time.Duration
	Counter   *RequestCounter
	Status    StatusSink
	Events    *events.Manager
}

// NewScheduler creates a new refresh scheduler. Counter, Status and Events
// are optional.
func NewScheduler(cfg Config, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		table:     cfg.Table,
		transport: cfg.Transport,
		session:   cfg.Session,
		clock:     cfg.Clock,
		policy:    cfg.Policy,
		interval:  cfg.Interval,
		counter:   cfg.Counter,
		status:    cfg.Status,
		events:    cfg.Events,
		log:       log.With().Str("component", "refresh_scheduler").Logger(),
	}
}

// Interval returns the delay between ticks.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Tick performs one selection, gate and dispatch cycle. The only error it
// returns is an invalid API key, which the caller must treat as fatal.
func (s *Scheduler) Tick(ctx context.Context) (Outcome, error) {
	if !s.inflight.TryLock() {
		return Busy, nil
	}
	defer s.inflight.Unlock()

	record, ok := s.table.SelectOldest()
	if !ok {
		return NoValidSymbols, nil
	}

	state := s.session.CurrentState()
	if !s.policy.Allows(state, record.NeverFetched()) {
		return Gated, nil
	}

	return s.dispatch(ctx, record.Symbol)
}

func (s *Scheduler) dispatch(ctx context.Context, symbol string) (Outcome, error) {
	log := s.log.With().
		Str("symbol", symbol).
		Str("request_id", uuid.NewString()).
		Logger()

	s.setInProgress(true)
	defer s.setInProgress(false)

	if s.counter != nil {
		s.counter.Inc()
	}

	start := time.Now()
	values, err := s.transport.Fetch(ctx, symbol)
	elapsed := time.Since(start)

	if err == nil {
		fetchedAt := s.clock.Now().Unix()
		s.table.MarkFetched(symbol, values, fetchedAt)
		if s.status != nil {
			s.status.SetApi(true)
		}

		log.Debug().
			Float64("price", values.CurrentPrice).
			Dur("elapsed", elapsed).
			Msg("Quote fetched")
		s.events.Emit(moduleName, &events.QuoteUpdatedData{
			Symbol:        symbol,
			CurrentPrice:  values.CurrentPrice,
			Change:        values.Change,
			ChangePercent: values.ChangePercent,
			FetchedAt:     fetchedAt,
		})
		return Fetched, nil
	}

	switch {
	case domain.IsUnknownSymbol(err):
		s.table.MarkInvalid(symbol, err.Error())
		log.Warn().Err(err).Msg("Symbol unknown to the API, excluding it from refresh")
		s.events.Emit(moduleName, &events.SymbolInvalidatedData{
			Symbol: symbol,
			Reason: err.Error(),
		})
		return Invalidated, nil

	case domain.IsInvalidApiKey(err):
		s.table.MarkFailed(symbol, err.Error())
		if s.status != nil {
			s.status.SetApi(false)
		}
		log.Error().Err(err).Msg("API key rejected")
		s.events.EmitError(moduleName, err, map[string]interface{}{"symbol": symbol})
		return Failed, err

	default:
		kind := domain.FetchErrorKindOf(err)
		s.table.MarkFailed(symbol, err.Error())
		if s.status != nil {
			s.status.SetApi(false)
		}
		log.Warn().
			Err(err).
			Str("kind", kind.String()).
			Dur("elapsed", elapsed).
			Msg("Quote fetch failed")
		s.events.Emit(moduleName, &events.FetchFailedData{
			Symbol: symbol,
			Kind:   kind.String(),
			Error:  err.Error(),
		})
		return Failed, nil
	}
}

// Run ticks immediately and then once per interval until ctx is cancelled or
// the API key is rejected. A rejected key is returned after the status has
// been put into its fatal state.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return domain.NewConfigError("refresh.interval", domain.ErrInvalidBudget)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().
		Dur("interval", s.interval).
		Int("symbols", s.table.Len()).
		Msg("Refresh loop started")

	for {
		outcome, err := s.Tick(ctx)
		if err != nil {
			if s.status != nil {
				s.status.SetFatalError(err.Error())
			}
			s.log.Error().Err(err).Msg("Refresh loop halted")
			return err
		}
		s.log.Trace().Str("outcome", outcome.String()).Msg("Tick")

		select {
		case <-ctx.Done():
			s.log.Info().Msg("Refresh loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) setInProgress(inProgress bool) {
	if s.status != nil {
		s.status.SetRequestInProgress(inProgress)
	}
}
