// Package yahoo fetches quotes through the unofficial Yahoo Finance API.
// Yahoo needs no API key and has no sandbox, so sandbox and live modes
// behave the same.
package yahoo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/client"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// snapshot is the subset of Yahoo data the ticker displays.
type snapshot struct {
	Name          string
	Price         float64
	PreviousClose float64
	TrailingPE    float64
	Bars          []models.Bar
}

type fetchFunc func(symbol string) (*snapshot, error)

// Client implements domain.QuoteFetchTransport on top of go-yfinance.
type Client struct {
	fetch fetchFunc
	log   zerolog.Logger
}

// NewClient creates a Yahoo Finance client.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		fetch: fetchSnapshot,
		log:   log.With().Str("client", "yahoo").Logger(),
	}
}

func fetchSnapshot(symbol string) (*snapshot, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get info: %w", err)
	}
	if info == nil {
		return nil, nil
	}

	snap := &snapshot{
		Name:          info.LongName,
		Price:         info.CurrentPrice,
		PreviousClose: info.RegularMarketPreviousClose,
		TrailingPE:    info.TrailingPE,
	}
	if snap.Name == "" {
		snap.Name = info.ShortName
	}

	// Quote carries the live price outside regular hours.
	if quote, err := t.Quote(); err == nil && quote != nil {
		switch {
		case quote.PostMarketPrice > 0:
			snap.Price = quote.PostMarketPrice
		case quote.PreMarketPrice > 0:
			snap.Price = quote.PreMarketPrice
		case quote.RegularMarketPrice > 0:
			snap.Price = quote.RegularMarketPrice
		}
	}

	bars, err := t.History(models.HistoryParams{
		Period:     "1y",
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	snap.Bars = bars
	return snap, nil
}

// Fetch implements domain.QuoteFetchTransport. go-yfinance is not
// context aware, so cancellation is only observed before and after the
// call.
func (c *Client) Fetch(ctx context.Context, symbol string) (domain.QuoteValues, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}

	c.log.Debug().Str("symbol", symbol).Msg("Fetching quote")

	snap, err := c.fetch(symbol)
	if err != nil {
		return domain.QuoteValues{}, fetchError(symbol, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}
	if snap == nil || (snap.Name == "" && snap.Price == 0 && len(snap.Bars) == 0) {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.UnknownSymbol, Symbol: symbol}
	}
	if snap.Price <= 0 {
		return domain.QuoteValues{}, &domain.FetchError{
			Kind:   domain.MalformedResponse,
			Symbol: symbol,
			Err:    fmt.Errorf("no current price"),
		}
	}

	values := snap.toValues()
	c.log.Debug().
		Str("symbol", symbol).
		Float64("price", values.CurrentPrice).
		Msg("Fetched quote")
	return values, nil
}

// fetchError classifies go-yfinance failures. Yahoo answers unknown tickers
// with 404, which must invalidate the symbol rather than retry it forever.
func fetchError(symbol string, err error) *domain.FetchError {
	switch {
	case client.IsNotFoundError(err), client.IsInvalidSymbolError(err):
		return &domain.FetchError{Kind: domain.UnknownSymbol, Symbol: symbol, Err: err}
	case client.IsRateLimitError(err):
		return &domain.FetchError{
			Kind:       domain.HttpStatus,
			Symbol:     symbol,
			StatusCode: http.StatusTooManyRequests,
			Err:        err,
		}
	default:
		return &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}
}

func (s *snapshot) toValues() domain.QuoteValues {
	v := domain.QuoteValues{
		CompanyName:  s.Name,
		CurrentPrice: s.Price,
		PERatio:      s.TrailingPE,
	}
	if s.PreviousClose > 0 {
		v.Change = s.Price - s.PreviousClose
		v.ChangePercent = v.Change / s.PreviousClose * 100
	}

	for i, bar := range s.Bars {
		if i == 0 || bar.High > v.Week52High {
			v.Week52High = bar.High
		}
		if i == 0 || (bar.Low > 0 && bar.Low < v.Week52Low) {
			v.Week52Low = bar.Low
		}
	}
	if n := len(s.Bars); n > 0 {
		v.OpenPrice = s.Bars[n-1].Open
	}
	// The current price can sit outside the daily bars.
	if len(s.Bars) > 0 {
		if s.Price > v.Week52High {
			v.Week52High = s.Price
		}
		if s.Price < v.Week52Low {
			v.Week52Low = s.Price
		}
	}
	return v
}
