// Package handlers provides HTTP handlers for the symbol table.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/stockticker/internal/modules/quotes"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler serves read-only views of the symbol table
type Handler struct {
	table *quotes.Table
	log   zerolog.Logger
}

// NewHandler creates a new quotes handler
func NewHandler(table *quotes.Table, log zerolog.Logger) *Handler {
	return &Handler{
		table: table,
		log:   log.With().Str("handler", "quotes").Logger(),
	}
}

// HandleList handles GET /api/quotes
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	records := h.table.Snapshot()

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": records,
		"metadata": map[string]interface{}{
			"count":     len(records),
			"valid":     h.table.ValidCount(),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGet handles GET /api/quotes/{symbol}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	record, ok := h.table.Get(symbol)
	if !ok {
		http.Error(w, "symbol not tracked", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": record,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
