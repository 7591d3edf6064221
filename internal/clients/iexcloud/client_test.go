package iexcloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	live := NewClient("pk_live", false, zerolog.Nop())
	assert.Equal(t, LiveBaseURL, live.baseURL)
	assert.Equal(t, 10*time.Second, live.client.Timeout)

	sandbox := NewClient("Tpk_test", true, zerolog.Nop())
	assert.Equal(t, SandboxBaseURL, sandbox.baseURL)
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/stock/aapl/quote", r.URL.Path)
		assert.Equal(t, "pk_test", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"symbol": "AAPL",
			"companyName": "Apple Inc",
			"open": 188.1,
			"latestPrice": 190.5,
			"change": 2.4,
			"changePercent": 0.01276,
			"peRatio": null,
			"week52High": 199.62,
			"week52Low": 124.17
		}`))
	}))
	defer server.Close()

	client := NewClient("pk_test", false, zerolog.Nop())
	client.baseURL = server.URL

	values, err := client.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc", values.CompanyName)
	assert.Equal(t, 188.1, values.OpenPrice)
	assert.Equal(t, 190.5, values.CurrentPrice)
	assert.Equal(t, 2.4, values.Change)
	assert.InDelta(t, 1.276, values.ChangePercent, 1e-9)
	assert.Equal(t, 0.0, values.PERatio)
	assert.Equal(t, 199.62, values.Week52High)
	assert.Equal(t, 124.17, values.Week52Low)
}

func TestFetch_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected domain.FetchErrorKind
	}{
		{"not found", http.StatusNotFound, domain.UnknownSymbol},
		{"unauthorized", http.StatusUnauthorized, domain.InvalidApiKey},
		{"forbidden", http.StatusForbidden, domain.Forbidden},
		{"rate limited", http.StatusTooManyRequests, domain.HttpStatus},
		{"server error", http.StatusBadGateway, domain.HttpStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("pk_test", false, zerolog.Nop())
			client.baseURL = server.URL

			_, err := client.Fetch(context.Background(), "ZZZZ")
			require.Error(t, err)

			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.expected, fetchErr.Kind)
			assert.Equal(t, tt.status, fetchErr.StatusCode)
			assert.Equal(t, "ZZZZ", fetchErr.Symbol)
		})
	}
}

func TestFetch_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing price", `{"symbol": "AAPL", "latestPrice": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("pk_test", false, zerolog.Nop())
			client.baseURL = server.URL

			_, err := client.Fetch(context.Background(), "AAPL")
			assert.Equal(t, domain.MalformedResponse, domain.FetchErrorKindOf(err))
		})
	}
}

func TestFetch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("pk_test", false, zerolog.Nop())
	client.baseURL = server.URL

	_, err := client.Fetch(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, domain.NetworkFailure, domain.FetchErrorKindOf(err))
	assert.False(t, domain.IsUnknownSymbol(err))
}
