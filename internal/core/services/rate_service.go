package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RateService provides business logic for the exchange-rate store.
type RateService struct {
	BaseService
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade) *RateService {
	return &RateService{
		rateRepo: rateRepo,
	}
}

// GetRate retrieves the latest stored rate for one target currency.
func (s *RateService) GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := domain.NormalizeCurrencyCode(currencyCode)
	if !code.IsSupported() {
		return nil, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, currencyCode)
	}
	if code.IsKRW() {
		return nil, fmt.Errorf("%w: KRW is the anchor currency and has no rate row", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.GetRate(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all stored rate rows.
func (s *RateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	return rates, nil
}

// UpsertRates overwrites the stored row for each rate's target currency. The
// whole batch is validated first so a bad row from the upstream feed never
// partially clobbers the table.
func (s *RateService) UpsertRates(ctx context.Context, rates []domain.ExchangeRate) error {
	now := time.Now()
	for i := range rates {
		rate := &rates[i]
		rate.TargetCurrency = domain.NormalizeCurrencyCode(string(rate.TargetCurrency))
		if !rate.TargetCurrency.IsSupported() || rate.TargetCurrency.IsKRW() {
			return fmt.Errorf("%w: unsupported target currency '%s'", apperrors.ErrValidation, rate.TargetCurrency)
		}
		if rate.Rate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: exchange rate for %s must be positive", apperrors.ErrValidation, rate.TargetCurrency)
		}
		rate.BaseCurrency = domain.CurrencyKRW
		if rate.UpdatedAt.IsZero() {
			rate.UpdatedAt = now
		}
	}

	for i := range rates {
		if err := s.rateRepo.UpsertRate(ctx, rates[i]); err != nil {
			return fmt.Errorf("failed to upsert exchange rate for %s: %w", rates[i].TargetCurrency, err)
		}
	}
	s.LogDebug(ctx, "exchange rates refreshed", slog.Int("count", len(rates)))
	return nil
}
