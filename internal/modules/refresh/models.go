package refresh

import (
	"strings"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/market_hours"
)

// ApiMode selects which quote endpoint is polled and how the interval is planned.
type ApiMode int

const (
	ModeUnknown ApiMode = iota
	ModeDemo
	ModeSandbox
	ModeLive
)

// String returns the configuration name of the mode.
func (m ApiMode) String() string {
	switch m {
	case ModeDemo:
		return "demo"
	case ModeSandbox:
		return "sandbox"
	case ModeLive:
		return "live"
	default:
		return "unknown"
	}
}

// ParseApiMode resolves a configured mode name, ignoring case.
func ParseApiMode(s string) (ApiMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "demo":
		return ModeDemo, nil
	case "sandbox":
		return ModeSandbox, nil
	case "live":
		return ModeLive, nil
	default:
		return ModeUnknown, domain.ErrUnknownApiMode
	}
}

// ApiProvider identifies the quote vendor.
type ApiProvider int

const (
	ProviderUnknown ApiProvider = iota
	ProviderIEXCloud
	ProviderYahoo
)

// String returns the configuration name of the provider.
func (p ApiProvider) String() string {
	switch p {
	case ProviderIEXCloud:
		return "iexcloud"
	case ProviderYahoo:
		return "yahoo"
	default:
		return "unknown"
	}
}

// RequiresKey reports whether non-demo modes need an API key.
func (p ApiProvider) RequiresKey() bool {
	return p == ProviderIEXCloud
}

// ParseApiProvider resolves a configured provider name, ignoring case.
func ParseApiProvider(s string) (ApiProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iexcloud", "iex":
		return ProviderIEXCloud, nil
	case "yahoo":
		return ProviderYahoo, nil
	default:
		return ProviderUnknown, domain.ErrUnknownApiProvider
	}
}

// FetchPolicy says which extended sessions are worth polling.
// Market hours are always fetched.
type FetchPolicy struct {
	FetchPreMarket   bool
	FetchAfterMarket bool
}

// Allows reports whether a record may be fetched in state. Records that were
// never fetched are always allowed so every symbol shows a value after boot.
func (p FetchPolicy) Allows(state market_hours.MarketState, neverFetched bool) bool {
	switch {
	case neverFetched:
		return true
	case state == market_hours.MarketHours:
		return true
	case state == market_hours.PreHours:
		return p.FetchPreMarket
	case state == market_hours.AfterHours:
		return p.FetchAfterMarket
	default:
		return false
	}
}

// RateBudget is the request allowance for the configured mode.
type RateBudget struct {
	Mode                  ApiMode
	LiveRequestsPerDay    int
	SandboxRequestsPerDay int
	DemoInterval          time.Duration
}

// SessionDurations are the lengths in seconds of the configured sessions.
type SessionDurations struct {
	PreMarket   uint32
	Market      uint32
	AfterMarket uint32
}

// DurationsOf measures each session. A session whose end precedes its start
// is rejected.
func DurationsOf(sessions market_hours.Sessions) (SessionDurations, error) {
	var d SessionDurations
	var err error

	if d.PreMarket, err = sessions.PreMarket.TotalSeconds(); err != nil {
		return d, domain.NewConfigError("market.preMarket", err)
	}
	if d.Market, err = sessions.Market.TotalSeconds(); err != nil {
		return d, domain.NewConfigError("market.marketHours", err)
	}
	if d.AfterMarket, err = sessions.AfterMarket.TotalSeconds(); err != nil {
		return d, domain.NewConfigError("market.afterMarket", err)
	}
	return d, nil
}
