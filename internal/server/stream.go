package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/stockticker/internal/events"
	"github.com/aristath/stockticker/internal/modules/display"
)

const streamWriteTimeout = 5 * time.Second

// StreamHandler pushes bus events to websocket clients as JSON, one event
// per text message. Renderers use it instead of polling.
type StreamHandler struct {
	bus    *events.Bus
	status *display.StatusManager
	log    zerolog.Logger
}

// NewStreamHandler creates a new stream handler. status may be nil.
func NewStreamHandler(bus *events.Bus, status *display.StatusManager, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		bus:    bus,
		status: status,
		log:    log.With().Str("component", "event_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/stream. The optional types query parameter is a
// comma separated list of event types to receive.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	allowed := parseTypes(r.URL.Query().Get("types"))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket handshake failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(ch)

	// Clients never send; CloseRead handles control frames and cancels ctx
	// when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	h.log.Info().Str("types", r.URL.Query().Get("types")).Msg("Client connected to event stream")

	// Current indicators first so a fresh client need not wait for a change
	if h.status != nil && allows(allowed, events.StatusChanged) {
		initial := events.Event{
			Type:      events.StatusChanged,
			Timestamp: time.Now(),
			Module:    "display",
			Data:      h.status.Get().EventData(),
		}
		if err := h.write(ctx, conn, initial); err != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if !allows(allowed, event.Type) {
				continue
			}
			if err := h.write(ctx, conn, event); err != nil {
				h.log.Debug().Err(err).Msg("Event stream write failed")
				return
			}
		}
	}
}

func (h *StreamHandler) write(ctx context.Context, conn *websocket.Conn, event events.Event) error {
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, event)
}

func parseTypes(filter string) map[events.EventType]bool {
	if filter == "" {
		return nil
	}
	allowed := make(map[events.EventType]bool)
	for _, t := range strings.Split(filter, ",") {
		if t = strings.TrimSpace(t); t != "" {
			allowed[events.EventType(t)] = true
		}
	}
	return allowed
}

// allows reports whether t passes the filter. A nil filter passes everything.
func allows(allowed map[events.EventType]bool, t events.EventType) bool {
	return allowed == nil || allowed[t]
}
