package matrixbridge

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/stockticker/internal/modules/display"
)

// maxFrameBytes bounds a request body. A frame encodes to well under 100 bytes.
const maxFrameBytes = 4 << 10

// FrameSink receives decoded frames.
type FrameSink interface {
	SetFrame(frame display.Frame) error
}

// Handler accepts frames posted by the ticker.
type Handler struct {
	sink FrameSink
	log  zerolog.Logger
}

// NewHandler creates a new frame handler
func NewHandler(sink FrameSink, log zerolog.Logger) *Handler {
	return &Handler{
		sink: sink,
		log:  log.With().Str("handler", "matrix").Logger(),
	}
}

// RegisterRoutes registers the frame endpoint
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/matrix", h.HandleFrame)
}

// HandleFrame handles POST /matrix with a msgpack encoded frame.
func (h *Handler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var frame display.Frame
	if err := msgpack.Unmarshal(body, &frame); err != nil {
		h.log.Debug().Err(err).Msg("Rejected frame")
		http.Error(w, "invalid frame", http.StatusBadRequest)
		return
	}

	if err := h.sink.SetFrame(frame); err != nil {
		h.log.Warn().Err(err).Msg("Failed to forward frame")
		http.Error(w, "device unavailable", http.StatusBadGateway)
		return
	}

	h.log.Debug().
		Str("pattern", frame.Pattern.String()).
		Uint8("brightness", frame.Brightness).
		Msg("Frame forwarded")
	w.WriteHeader(http.StatusNoContent)
}
