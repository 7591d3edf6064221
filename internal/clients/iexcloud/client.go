// Package iexcloud provides quote fetching from the IEX Cloud REST API.
package iexcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/rs/zerolog"
)

const (
	LiveBaseURL    = "https://cloud.iexapis.com/stable"
	SandboxBaseURL = "https://sandbox.iexapis.com/stable"
)

// Client for the IEX Cloud quote endpoint
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new IEX Cloud client. sandbox selects the test
// environment, whose data is scrambled and whose keys start with "T".
func NewClient(apiKey string, sandbox bool, log zerolog.Logger) *Client {
	baseURL := LiveBaseURL
	if sandbox {
		baseURL = SandboxBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "iexcloud").Logger(),
	}
}

// quoteResponse mirrors the fields of /stock/{symbol}/quote we display.
// IEX sends null for fields it has no value for.
type quoteResponse struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"companyName"`
	Open          *float64 `json:"open"`
	LatestPrice   *float64 `json:"latestPrice"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	PERatio       *float64 `json:"peRatio"`
	Week52High    *float64 `json:"week52High"`
	Week52Low     *float64 `json:"week52Low"`
}

func (q quoteResponse) toValues() domain.QuoteValues {
	return domain.QuoteValues{
		CompanyName:  q.CompanyName,
		OpenPrice:    deref(q.Open),
		CurrentPrice: deref(q.LatestPrice),
		Change:       deref(q.Change),
		// IEX reports a fraction; the display works in percent.
		ChangePercent: deref(q.ChangePercent) * 100,
		PERatio:       deref(q.PERatio),
		Week52High:    deref(q.Week52High),
		Week52Low:     deref(q.Week52Low),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Fetch implements domain.QuoteFetchTransport.
func (c *Client) Fetch(ctx context.Context, symbol string) (domain.QuoteValues, error) {
	endpoint := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(strings.ToLower(symbol)), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("symbol", symbol).Msg("Fetching quote")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.NetworkFailure, Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.QuoteValues{}, &domain.FetchError{
			Kind:       kindForStatus(resp.StatusCode),
			Symbol:     symbol,
			StatusCode: resp.StatusCode,
		}
	}

	var result quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.QuoteValues{}, &domain.FetchError{Kind: domain.MalformedResponse, Symbol: symbol, Err: err}
	}
	if result.LatestPrice == nil {
		return domain.QuoteValues{}, &domain.FetchError{
			Kind:   domain.MalformedResponse,
			Symbol: symbol,
			Err:    fmt.Errorf("response has no latestPrice"),
		}
	}

	values := result.toValues()
	c.log.Debug().
		Str("symbol", symbol).
		Float64("price", values.CurrentPrice).
		Msg("Fetched quote")
	return values, nil
}

// kindForStatus maps IEX error statuses. IEX answers 404 with "Unknown
// symbol" and 401 when the token is invalid.
func kindForStatus(status int) domain.FetchErrorKind {
	switch status {
	case http.StatusNotFound:
		return domain.UnknownSymbol
	case http.StatusUnauthorized:
		return domain.InvalidApiKey
	case http.StatusForbidden:
		return domain.Forbidden
	default:
		return domain.HttpStatus
	}
}
