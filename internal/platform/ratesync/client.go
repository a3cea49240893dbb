package ratesync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Client fetches the latest KRW-anchored rates from the open er-api feed.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient initializes a new rate feed client.
func NewClient(url string, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// apiResponse is the shape of the er-api payload. Rates are decoded as
// json.Number so the decimal values never pass through a float64.
type apiResponse struct {
	Result   string                 `json:"result"`
	BaseCode string                 `json:"base_code"`
	Rates    map[string]json.Number `json:"rates"`
}

// FetchRates downloads the feed and returns one row per supported foreign
// currency. Unsupported currencies in the payload are dropped, as is the KRW
// identity row the feed always carries.
func (c *Client) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from rate feed: %d", resp.StatusCode)
	}

	var payload apiResponse
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate feed payload: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("rate feed reported result %q", payload.Result)
	}

	now := time.Now()
	rates := make([]domain.ExchangeRate, 0, len(payload.Rates))
	for code, raw := range payload.Rates {
		target := domain.NormalizeCurrencyCode(code)
		if !target.IsSupported() || target.IsKRW() {
			continue
		}
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			c.logger.Warn("Skipping unparseable rate", slog.String("currency", code), slog.String("raw", raw.String()))
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			BaseCurrency:   domain.CurrencyKRW,
			TargetCurrency: target,
			Rate:           rate,
			UpdatedAt:      now,
		})
	}
	return rates, nil
}
