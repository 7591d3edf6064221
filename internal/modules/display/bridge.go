package display

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Bridge pushes matrix frames to the device bridge over HTTP. Frames are
// msgpack encoded. A bridge without a URL is disabled and drops frames.
type Bridge struct {
	log        zerolog.Logger
	httpClient *http.Client
	url        string

	mu        sync.Mutex
	last      Frame
	hasLast   bool
	pushCount int
}

// NewBridge creates a bridge for baseURL. An empty URL disables it.
func NewBridge(baseURL string, log zerolog.Logger) *Bridge {
	return &Bridge{
		log: log.With().Str("component", "matrix_bridge").Logger(),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		url: strings.TrimRight(baseURL, "/"),
	}
}

// Enabled reports whether a bridge URL is configured.
func (b *Bridge) Enabled() bool {
	return b.url != ""
}

// Push sends frame if it differs from the last frame delivered. It reports
// whether a request was made.
func (b *Bridge) Push(ctx context.Context, frame Frame) (bool, error) {
	if !b.Enabled() {
		return false, nil
	}

	b.mu.Lock()
	unchanged := b.hasLast && b.last == frame
	b.mu.Unlock()
	if unchanged {
		return false, nil
	}

	if err := b.post(ctx, "/matrix", frame); err != nil {
		return true, err
	}

	b.mu.Lock()
	b.last = frame
	b.hasLast = true
	b.pushCount++
	b.mu.Unlock()

	b.log.Debug().
		Str("pattern", frame.Pattern.String()).
		Uint8("brightness", frame.Brightness).
		Msg("Matrix frame pushed")
	return true, nil
}

// PushCount returns the number of frames delivered.
func (b *Bridge) PushCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pushCount
}

func (b *Bridge) post(ctx context.Context, endpoint string, data interface{}) error {
	url := b.url + endpoint

	body, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/msgpack")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.log.Debug().Err(err).Str("url", url).Msg("Bridge request failed (device may be offline)")
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("bridge returned error status: %d", resp.StatusCode)
	}
	return nil
}
