package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"parcels/internal/domain"

	"github.com/shopspring/decimal"
)

// maxResponseBytes caps the daily document; the real one is a few tens of KiB.
const maxResponseBytes = 1 << 20

// CBRClient reads the USD/RUB rate from a cbr-xml-daily compatible document.
type CBRClient struct {
	http *http.Client
	url  string
}

type dailyResponse struct {
	Valute map[string]struct {
		CharCode string          `json:"CharCode"`
		Value    json.RawMessage `json:"Value"`
	} `json:"Valute"`
}

// FetchUSDRate returns Valute.USD.Value rounded to two places.
func (c *CBRClient) FetchUSDRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create rate request: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to execute rate request: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("unexpected status code %d from rate source: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var body dailyResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w: %w", domain.ErrMalformedResponse, err)
	}

	usd, ok := body.Valute["USD"]
	if !ok {
		return decimal.Zero, fmt.Errorf("field Valute.USD is missing: %w", domain.ErrMalformedResponse)
	}
	value, err := parseRate(usd.Value)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.RoundMoney(value), nil
}

// parseRate accepts only a positive JSON number. Quoted numbers are rejected.
func parseRate(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("field Valute.USD.Value is missing: %w", domain.ErrMalformedResponse)
	}
	if raw[0] == '"' {
		return decimal.Zero, fmt.Errorf("field Valute.USD.Value is a string (%s): %w", raw, domain.ErrMalformedResponse)
	}

	value, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("field Valute.USD.Value is not a number (%s): %w", raw, domain.ErrMalformedResponse)
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("field Valute.USD.Value is not positive (%s): %w", value, domain.ErrMalformedResponse)
	}
	return value, nil
}

func NewCBRClient(httpClient *http.Client, url string) *CBRClient {
	return &CBRClient{http: httpClient, url: url}
}
