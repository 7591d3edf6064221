package refresh

import (
	"testing"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDurations(t *testing.T) SessionDurations {
	d, err := DurationsOf(market_hours.DefaultSessions)
	require.NoError(t, err)
	return d
}

func TestDurationsOf(t *testing.T) {
	d := defaultDurations(t)
	assert.Equal(t, uint32(19740), d.PreMarket)
	assert.Equal(t, uint32(23340), d.Market)
	assert.Equal(t, uint32(21540), d.AfterMarket)

	sessions := market_hours.DefaultSessions
	sessions.AfterMarket = market_hours.NewTimeRange(22, 0, 2, 0)
	_, err := DurationsOf(sessions)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestPlanner_IntervalFor(t *testing.T) {
	tests := []struct {
		name        string
		policy      FetchPolicy
		budget      RateBudget
		expected    time.Duration
		expectedErr error
	}{
		{
			name:     "sandbox spreads over the whole day",
			budget:   RateBudget{Mode: ModeSandbox, SandboxRequestsPerDay: 100},
			expected: 864000 * time.Millisecond,
		},
		{
			name:     "sandbox ignores fetch policy",
			policy:   FetchPolicy{FetchPreMarket: true, FetchAfterMarket: true},
			budget:   RateBudget{Mode: ModeSandbox, SandboxRequestsPerDay: 100},
			expected: 864000 * time.Millisecond,
		},
		{
			name:     "live market hours only",
			budget:   RateBudget{Mode: ModeLive, LiveRequestsPerDay: 100},
			expected: 233400 * time.Millisecond,
		},
		{
			name:     "live with pre market",
			policy:   FetchPolicy{FetchPreMarket: true},
			budget:   RateBudget{Mode: ModeLive, LiveRequestsPerDay: 100},
			expected: 430800 * time.Millisecond,
		},
		{
			name:     "live with all sessions",
			policy:   FetchPolicy{FetchPreMarket: true, FetchAfterMarket: true},
			budget:   RateBudget{Mode: ModeLive, LiveRequestsPerDay: 100},
			expected: 646200 * time.Millisecond,
		},
		{
			name:     "demo uses fixed interval",
			budget:   RateBudget{Mode: ModeDemo, DemoInterval: 750 * time.Millisecond},
			expected: 750 * time.Millisecond,
		},
		{
			name:        "zero sandbox budget",
			budget:      RateBudget{Mode: ModeSandbox, SandboxRequestsPerDay: 0},
			expectedErr: domain.ErrInvalidBudget,
		},
		{
			name:        "negative live budget",
			budget:      RateBudget{Mode: ModeLive, LiveRequestsPerDay: -5},
			expectedErr: domain.ErrInvalidBudget,
		},
		{
			name:        "budget rounds interval to zero",
			budget:      RateBudget{Mode: ModeSandbox, SandboxRequestsPerDay: 100_000_000},
			expectedErr: domain.ErrInvalidBudget,
		},
		{
			name:        "demo without interval",
			budget:      RateBudget{Mode: ModeDemo},
			expectedErr: domain.ErrInvalidBudget,
		},
		{
			name:        "unknown mode",
			budget:      RateBudget{Mode: ModeUnknown, LiveRequestsPerDay: 100},
			expectedErr: domain.ErrUnknownApiMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := NewPlanner(tt.policy).IntervalFor(tt.budget, defaultDurations(t))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, interval)
		})
	}
}

func TestParseApiMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ApiMode
		wantErr  bool
	}{
		{"demo", ModeDemo, false},
		{"Sandbox", ModeSandbox, false},
		{" LIVE ", ModeLive, false},
		{"production", ModeUnknown, true},
		{"", ModeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseApiMode(tt.input)
			assert.Equal(t, tt.expected, mode)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownApiMode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseApiProvider(t *testing.T) {
	provider, err := ParseApiProvider("IEXCloud")
	assert.NoError(t, err)
	assert.Equal(t, ProviderIEXCloud, provider)
	assert.True(t, provider.RequiresKey())

	provider, err = ParseApiProvider(" yahoo ")
	assert.NoError(t, err)
	assert.Equal(t, ProviderYahoo, provider)
	assert.Equal(t, "yahoo", provider.String())
	assert.False(t, provider.RequiresKey())

	_, err = ParseApiProvider("alphavantage")
	assert.ErrorIs(t, err, domain.ErrUnknownApiProvider)
}

func TestFetchPolicy_Allows(t *testing.T) {
	tests := []struct {
		name         string
		policy       FetchPolicy
		state        market_hours.MarketState
		neverFetched bool
		expected     bool
	}{
		{"market hours", FetchPolicy{}, market_hours.MarketHours, false, true},
		{"pre hours disabled", FetchPolicy{}, market_hours.PreHours, false, false},
		{"pre hours enabled", FetchPolicy{FetchPreMarket: true}, market_hours.PreHours, false, true},
		{"after hours disabled", FetchPolicy{FetchPreMarket: true}, market_hours.AfterHours, false, false},
		{"after hours enabled", FetchPolicy{FetchAfterMarket: true}, market_hours.AfterHours, false, true},
		{"closed", FetchPolicy{FetchPreMarket: true, FetchAfterMarket: true}, market_hours.Closed, false, false},
		{"weekend", FetchPolicy{FetchPreMarket: true, FetchAfterMarket: true}, market_hours.Weekend, false, false},
		{"holiday never fetched", FetchPolicy{}, market_hours.Holiday, true, true},
		{"closed never fetched", FetchPolicy{}, market_hours.Closed, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.Allows(tt.state, tt.neverFetched))
		})
	}
}

func TestRequestCounter(t *testing.T) {
	start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	counter := NewRequestCounter(start)

	counter.Inc()
	counter.Inc()
	count, since := counter.Snapshot()
	assert.Equal(t, int64(2), count)
	assert.Equal(t, start, since)

	next := start.Add(24 * time.Hour)
	assert.Equal(t, int64(2), counter.Reset(next))
	count, since = counter.Snapshot()
	assert.Equal(t, int64(0), count)
	assert.Equal(t, next, since)
}
