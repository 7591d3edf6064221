// Package tui is a terminal renderer for the ticker screen. It reads the
// same display endpoints a touch screen would.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	displayhandlers "github.com/aristath/stockticker/internal/modules/display/handlers"
)

// Client talks to the ticker's display API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the ticker at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type screenEnvelope struct {
	Data displayhandlers.ScreenResponse `json:"data"`
}

// Screen fetches what the screen currently shows.
func (c *Client) Screen() (displayhandlers.ScreenResponse, error) {
	return c.do(http.MethodGet, "/api/display", nil)
}

// Next is a touch on the screen.
func (c *Client) Next() (displayhandlers.ScreenResponse, error) {
	return c.do(http.MethodPost, "/api/display/next", nil)
}

// SetLock pins or releases the current symbol.
func (c *Client) SetLock(locked bool) (displayhandlers.ScreenResponse, error) {
	body, err := json.Marshal(map[string]bool{"locked": locked})
	if err != nil {
		return displayhandlers.ScreenResponse{}, err
	}
	return c.do(http.MethodPut, "/api/display/lock", body)
}

func (c *Client) do(method, path string, body []byte) (displayhandlers.ScreenResponse, error) {
	var envelope screenEnvelope

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return envelope.Data, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope.Data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return envelope.Data, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return envelope.Data, fmt.Errorf("failed to decode screen: %w", err)
	}
	return envelope.Data, nil
}
