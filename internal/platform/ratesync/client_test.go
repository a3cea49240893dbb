package ratesync_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/dongle-dev/dongle_backend/internal/platform/ratesync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_FiltersToSupportedSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "KRW",
			"rates": {
				"KRW": 1,
				"USD": 0.00075,
				"JPY": 0.11,
				"XYZ": 42.5
			}
		}`))
	}))
	defer server.Close()

	client := ratesync.NewClient(server.URL, slog.Default())
	rates, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 2)

	byCurrency := make(map[domain.CurrencyCode]domain.ExchangeRate)
	for _, rate := range rates {
		byCurrency[rate.TargetCurrency] = rate
	}
	usd, ok := byCurrency[domain.CurrencyUSD]
	require.True(t, ok)
	assert.Equal(t, "0.00075", usd.Rate.String())
	assert.Equal(t, domain.CurrencyKRW, usd.BaseCurrency)
	_, hasKRW := byCurrency[domain.CurrencyKRW]
	assert.False(t, hasKRW)
}

func TestFetchRates_ErrorResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "error", "rates": {}}`))
	}))
	defer server.Close()

	client := ratesync.NewClient(server.URL, slog.Default())
	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
}

func TestFetchRates_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := ratesync.NewClient(server.URL, slog.Default())
	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
}
