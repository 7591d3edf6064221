// Package handlers provides HTTP handlers for the ticker screen.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/aristath/stockticker/internal/modules/display"
	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/rs/zerolog"
)

// Handler handles display HTTP requests. The touch and lock endpoints stand
// in for the physical touch screen.
type Handler struct {
	carousel  *display.Carousel
	backlight *display.Backlight
	status    *display.StatusManager
	clock     domain.ClockSource
	log       zerolog.Logger
}

// NewHandler creates a new display handler
func NewHandler(
	carousel *display.Carousel,
	backlight *display.Backlight,
	status *display.StatusManager,
	clock domain.ClockSource,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		carousel:  carousel,
		backlight: backlight,
		status:    status,
		clock:     clock,
		log:       log.With().Str("handler", "display").Logger(),
	}
}

// ScreenResponse is what the screen currently shows.
type ScreenResponse struct {
	Index      int                  `json:"index"`
	Locked     bool                 `json:"locked"`
	Brightness uint8                `json:"brightness"`
	Record     *quotes.SymbolRecord `json:"record,omitempty"`
	Lines      *display.QuoteLines  `json:"lines,omitempty"`
	Status     display.Status       `json:"status"`
}

func (h *Handler) screen() ScreenResponse {
	resp := ScreenResponse{
		Index:      h.carousel.Index(),
		Locked:     h.carousel.Locked(),
		Brightness: h.backlight.Level(),
		Status:     h.status.Get(),
	}

	record, ok := h.carousel.Current()
	if !ok {
		return resp
	}
	resp.Record = &record
	if record.IsValid && !record.NeverFetched() {
		lines := display.RenderQuote(record.Symbol, record.QuoteValues)
		resp.Lines = &lines
	}
	return resp
}

// HandleGetScreen handles GET /api/display
func (h *Handler) HandleGetScreen(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.screen())
}

// HandleNext handles POST /api/display/next, the equivalent of a touch.
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	if h.carousel.Next(h.clock.Now()) {
		h.log.Debug().Int("index", h.carousel.Index()).Msg("Switched symbol")
	}
	h.writeData(w, h.screen())
}

type lockRequest struct {
	Locked *bool `json:"locked"`
}

// HandleSetLock handles PUT /api/display/lock
// Body: {"locked": true}
func (h *Handler) HandleSetLock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Locked == nil {
		http.Error(w, "body must be {\"locked\": bool}", http.StatusBadRequest)
		return
	}

	h.carousel.SetLocked(*req.Locked)
	h.log.Info().Bool("locked", *req.Locked).Msg("Symbol lock updated")

	h.writeData(w, h.screen())
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
