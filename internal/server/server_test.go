package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aristath/stockticker/internal/config"
	"github.com/aristath/stockticker/internal/di"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoParameters = `{
  "symbols": ["AAPL", "MSFT"],
  "api": {"provider": "iexcloud", "mode": "demo", "demoIntervalMs": 1500}
}`

func newTestServer(t *testing.T, parameters string) *Server {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "parameters.json")
	if parameters != "" {
		require.NoError(t, os.WriteFile(path, []byte(parameters), 0o644))
	}

	// A configuration error still yields a usable container
	container, _ := di.Wire(&config.Config{ParametersFile: path, DevMode: true}, zerolog.Nop())
	require.NotNil(t, container)

	return New(Config{
		Log:       zerolog.Nop(),
		Port:      0,
		DevMode:   true,
		Container: container,
	})
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		parameters string
		expected   string
	}{
		{"valid configuration", demoParameters, "healthy"},
		{"missing parameters", "", "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.parameters)

			w := get(t, s, "/health")
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body["status"])
			assert.Equal(t, "stockticker", body["service"])
		})
	}
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, demoParameters)

	w := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Data.Ready)
	assert.Empty(t, body.Data.ConfigError)
	assert.True(t, body.Data.Indicators.SD)
	assert.NotEmpty(t, body.Data.MarketState)
	require.NotNil(t, body.Data.Refresh)
	assert.Equal(t, "demo", body.Data.Refresh.Mode)
	assert.Equal(t, int64(1500), body.Data.Refresh.IntervalMs)
	assert.Equal(t, 2, body.Data.Refresh.Symbols)
	assert.Equal(t, int64(0), body.Data.Refresh.RequestsToday)
}

func TestStatus_ConfigError(t *testing.T) {
	s := newTestServer(t, `{"symbols": ["AAPL"], "api": {"provider": "iexcloud", "mode": "turbo"}}`)

	w := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.False(t, body.Data.Ready)
	assert.Contains(t, body.Data.ConfigError, "api.mode")
	assert.Equal(t, body.Data.ConfigError, body.Data.Indicators.FatalError)
	assert.Nil(t, body.Data.Refresh)
}

func TestDomainRoutes(t *testing.T) {
	t.Run("registered when ready", func(t *testing.T) {
		s := newTestServer(t, demoParameters)

		assert.Equal(t, http.StatusOK, get(t, s, "/api/quotes").Code)
		assert.Equal(t, http.StatusOK, get(t, s, "/api/quotes/AAPL").Code)
		assert.Equal(t, http.StatusOK, get(t, s, "/api/market-hours/status").Code)
		assert.Equal(t, http.StatusOK, get(t, s, "/api/display").Code)
	})

	t.Run("absent after configuration error", func(t *testing.T) {
		s := newTestServer(t, "")

		assert.Equal(t, http.StatusNotFound, get(t, s, "/api/quotes").Code)
		assert.Equal(t, http.StatusNotFound, get(t, s, "/api/market-hours/status").Code)
		assert.Equal(t, http.StatusOK, get(t, s, "/api/status").Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, demoParameters)

	req := httptest.NewRequest(http.MethodOptions, "/api/quotes", nil)
	req.Header.Set("Origin", "http://renderer.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}
