package services

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// RateSvcFacade exposes the exchange-rate store: reads for the API and
// converter, upserts for the periodic refresher.
type RateSvcFacade interface {
	GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
	// UpsertRates overwrites the stored row for each rate's target currency.
	// Unsupported currency codes are rejected with a validation error.
	UpsertRates(ctx context.Context, rates []domain.ExchangeRate) error
}
