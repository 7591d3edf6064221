package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/aristath/stockticker/internal/modules/refresh"
)

// HolidayCalendar selects how holidays are decided.
type HolidayCalendar int

const (
	// CalendarNone relies on the manual holiday flag only.
	CalendarNone HolidayCalendar = iota
	// CalendarUS adds the NYSE holiday rules.
	CalendarUS
)

// Settings is the parameters document with every string resolved to its
// typed form. It is built once at startup.
type Settings struct {
	Symbols         []string
	WifiCredentials []WifiCredential

	Provider refresh.ApiProvider
	ApiKey   string
	Budget   refresh.RateBudget
	Policy   refresh.FetchPolicy

	Sessions        market_hours.Sessions
	Holiday         bool
	HolidayCalendar HolidayCalendar

	NextSymbolDelay time.Duration
	Display         display.DimmingConfig
	Matrix          display.MatrixConfig

	TimeZone string
}

// Resolve parses and checks every string-typed parameter. apiKeyOverride
// replaces api.key when non-empty. The first problem found is returned as a
// *domain.ConfigError.
func (p *Parameters) Resolve(apiKeyOverride string) (*Settings, error) {
	s := &Settings{
		Symbols:         p.Symbols,
		WifiCredentials: p.WifiCredentials,
		ApiKey:          p.API.Key,
		Holiday:         p.Market.Holiday,
		NextSymbolDelay: time.Duration(p.Display.NextSymbolDelay) * time.Second,
		TimeZone:        p.System.TimeZone,
		Policy: refresh.FetchPolicy{
			FetchPreMarket:   p.Market.FetchPreMarketData,
			FetchAfterMarket: p.Market.FetchAfterMarketData,
		},
	}
	if apiKeyOverride != "" {
		s.ApiKey = apiKeyOverride
	}

	var err error
	if s.Provider, err = refresh.ParseApiProvider(p.API.Provider); err != nil {
		return nil, domain.NewConfigError("api.provider", err)
	}

	mode, err := refresh.ParseApiMode(p.API.Mode)
	if err != nil {
		return nil, domain.NewConfigError("api.mode", err)
	}
	s.Budget = refresh.RateBudget{
		Mode:                  mode,
		LiveRequestsPerDay:    p.API.LiveRequestsPerDay,
		SandboxRequestsPerDay: p.API.SandboxRequestsPerDay,
		DemoInterval:          time.Duration(p.API.DemoIntervalMs) * time.Millisecond,
	}
	if mode != refresh.ModeDemo && s.Provider.RequiresKey() && s.ApiKey == "" {
		return nil, domain.NewConfigError("api.key", fmt.Errorf("required in %s mode", mode))
	}

	if s.Sessions.PreMarket, err = parseRange("market.preMarket", p.Market.PreMarket); err != nil {
		return nil, err
	}
	if s.Sessions.Market, err = parseRange("market.marketHours", p.Market.MarketHours); err != nil {
		return nil, err
	}
	if s.Sessions.AfterMarket, err = parseRange("market.afterMarket", p.Market.AfterMarket); err != nil {
		return nil, err
	}

	switch strings.ToLower(p.Market.HolidayCalendar) {
	case "", "none":
		s.HolidayCalendar = CalendarNone
	case "us":
		s.HolidayCalendar = CalendarUS
	default:
		return nil, domain.NewConfigError("market.holidayCalendar",
			fmt.Errorf("unknown calendar %q", p.Market.HolidayCalendar))
	}

	if s.Display, err = dimming("display", p.Display.BrightnessMax, p.Display.BrightnessMin, p.Display.DimWindow); err != nil {
		return nil, err
	}

	matrixDimming, err := dimming("matrix", p.Matrix.BrightnessMax, p.Matrix.BrightnessMin, p.Matrix.DimWindow)
	if err != nil {
		return nil, err
	}
	s.Matrix.Dimming = matrixDimming
	if s.Matrix.MarketHoursPattern, err = display.ParsePattern(p.Matrix.MarketHoursPattern); err != nil {
		return nil, domain.NewConfigError("matrix.marketHoursPattern", err)
	}
	if s.Matrix.AfterHoursPattern, err = display.ParsePattern(p.Matrix.AfterHoursPattern); err != nil {
		return nil, domain.NewConfigError("matrix.afterHoursPattern", err)
	}

	if _, err := time.LoadLocation(s.TimeZone); err != nil {
		return nil, domain.NewConfigError("system.timeZone", err)
	}

	return s, nil
}

// parseRange parses a session or dim window and rejects ranges that end
// before they start.
func parseRange(field, value string) (market_hours.TimeRange, error) {
	r, err := market_hours.ParseTimeRange(value)
	if err != nil {
		return r, domain.NewConfigError(field, err)
	}
	if err := r.Validate(); err != nil {
		return r, domain.NewConfigError(field, err)
	}
	return r, nil
}

func dimming(prefix string, max, min int, window string) (display.DimmingConfig, error) {
	cfg := display.DimmingConfig{Max: uint8(max), Min: uint8(min)}
	if window == "" {
		return cfg, nil
	}
	r, err := parseRange(prefix+".dimWindow", window)
	if err != nil {
		return cfg, err
	}
	cfg.DimWindow = r
	return cfg, nil
}
