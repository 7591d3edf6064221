package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/stockticker/internal/modules/display"
)

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Ready       bool           `json:"ready"`
	ConfigError string         `json:"config_error,omitempty"`
	Indicators  display.Status `json:"indicators"`
	MarketState string         `json:"market_state,omitempty"`
	Refresh     *RefreshStatus `json:"refresh,omitempty"`
}

// RefreshStatus describes the refresh loop and its request budget.
type RefreshStatus struct {
	Mode          string    `json:"mode"`
	IntervalMs    int64     `json:"interval_ms"`
	RequestsToday int64     `json:"requests_today"`
	CountingSince time.Time `json:"counting_since"`
	Symbols       int       `json:"symbols"`
	ValidSymbols  int       `json:"valid_symbols"`
}

// handleHealth handles health check requests. A configuration error leaves
// the process up but degraded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !s.container.Ready() {
		status = "degraded"
	}

	response := map[string]interface{}{
		"status":  status,
		"version": "1.0.0",
		"service": "stockticker",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	c := s.container
	resp := StatusResponse{
		Ready:      c.Ready(),
		Indicators: c.Status.Get(),
	}
	if c.ConfigErr != nil {
		resp.ConfigError = c.ConfigErr.Error()
	}

	if c.Ready() {
		resp.MarketState = c.MarketHours.CurrentState().String()

		count, since := c.Counter.Snapshot()
		resp.Refresh = &RefreshStatus{
			Mode:          c.Settings.Budget.Mode.String(),
			IntervalMs:    c.Interval.Milliseconds(),
			RequestsToday: count,
			CountingSince: since,
			Symbols:       c.Table.Len(),
			ValidSymbols:  c.Table.ValidCount(),
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": resp,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
