package repositories

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// RateReader defines read operations against the exchange-rate store.
type RateReader interface {
	// GetRate returns the single latest rate row for a target currency, or
	// apperrors.ErrNotFound if none has ever been recorded.
	GetRate(ctx context.Context, currency domain.CurrencyCode) (*domain.ExchangeRate, error)
	// ListRates returns all stored rate rows.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateWriter defines write operations for the periodic refresher. UpsertRate
// is insert-or-overwrite keyed by target currency: the store keeps only the
// latest row per currency.
type RateWriter interface {
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// RateRepositoryFacade combines all exchange-rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
