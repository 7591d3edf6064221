// Package demo provides a quote transport that needs no network or API key.
package demo

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"github.com/aristath/stockticker/internal/domain"
)

// Client produces deterministic synthetic quotes. Each symbol starts from a
// price derived from its name and walks a fixed sine curve, one step per
// fetch.
type Client struct {
	mu    sync.Mutex
	steps map[string]int

	// Unknown lists symbols reported as UnknownSymbol.
	Unknown map[string]bool
}

// NewClient creates a demo client. unknown symbols are answered with an
// UnknownSymbol error so the invalidation path can be seen without an API.
func NewClient(unknown ...string) *Client {
	c := &Client{
		steps:   make(map[string]int),
		Unknown: make(map[string]bool, len(unknown)),
	}
	for _, s := range unknown {
		c.Unknown[strings.ToUpper(s)] = true
	}
	return c
}

// Fetch implements domain.QuoteFetchTransport.
func (c *Client) Fetch(ctx context.Context, symbol string) (domain.QuoteValues, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}

	symbol = strings.ToUpper(symbol)
	if c.Unknown[symbol] {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.UnknownSymbol, Symbol: symbol}
	}

	c.mu.Lock()
	step := c.steps[symbol]
	c.steps[symbol] = step + 1
	c.mu.Unlock()

	return Quote(symbol, step), nil
}

// Quote returns the synthetic quote for symbol at step.
func Quote(symbol string, step int) domain.QuoteValues {
	base := basePrice(symbol)
	swing := base * 0.05 * math.Sin(float64(step)/4)
	price := round2(base + swing)
	change := round2(price - base)

	return domain.QuoteValues{
		CompanyName:   symbol + " Demo Corp",
		OpenPrice:     base,
		CurrentPrice:  price,
		Change:        change,
		ChangePercent: round2(change / base * 100),
		PERatio:       round2(base / 7.5),
		Week52High:    round2(base * 1.2),
		Week52Low:     round2(base * 0.8),
	}
}

// basePrice maps a symbol to a stable price between 10 and 500.
func basePrice(symbol string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return float64(10 + h.Sum32()%491)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
