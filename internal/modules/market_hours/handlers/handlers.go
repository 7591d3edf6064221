// Package handlers provides HTTP handlers for market hours operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/stockticker/internal/modules/market_hours"
	"github.com/rs/zerolog"
)

// Handler handles market hours HTTP requests
type Handler struct {
	service *market_hours.MarketHoursService
	manual  *market_hours.ManualHoliday
	log     zerolog.Logger
}

// NewHandler creates a new market hours handler.
// manual may be nil, in which case the holiday flag cannot be changed over HTTP.
func NewHandler(
	service *market_hours.MarketHoursService,
	manual *market_hours.ManualHoliday,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service: service,
		manual:  manual,
		log:     log.With().Str("handler", "market_hours").Logger(),
	}
}

// HandleGetStatus handles GET /api/market-hours/status
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": h.service.GetMarketStatus(),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

type holidayRequest struct {
	Holiday *bool `json:"holiday"`
}

// HandleSetHoliday handles PUT /api/market-hours/holiday
// Body: {"holiday": true}
func (h *Handler) HandleSetHoliday(w http.ResponseWriter, r *http.Request) {
	if h.manual == nil {
		http.Error(w, "holiday flag is not configurable", http.StatusNotImplemented)
		return
	}

	var req holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Holiday == nil {
		http.Error(w, "body must be {\"holiday\": bool}", http.StatusBadRequest)
		return
	}

	h.manual.Set(*req.Holiday)
	h.log.Info().Bool("holiday", *req.Holiday).Msg("Holiday flag updated")

	h.HandleGetStatus(w, r)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
