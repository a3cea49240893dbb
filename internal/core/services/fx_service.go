package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ConverterService converts amounts between KRW and the supported foreign
// currencies. Rates are anchored to KRW (1 KRW = rate units of the target
// currency), so converting to KRW divides by the rate and converting from KRW
// multiplies by it. Converted results are rounded to two decimal places, half
// up; same-currency conversions are exact identities.
type ConverterService struct {
	BaseService
	rateRepo portsrepo.RateReader
}

// NewConverterService creates a new ConverterService.
func NewConverterService(rateRepo portsrepo.RateReader) *ConverterService {
	return &ConverterService{
		rateRepo: rateRepo,
	}
}

func (s *ConverterService) lookupRate(ctx context.Context, currency domain.CurrencyCode) (decimal.Decimal, error) {
	rate, err := s.rateRepo.GetRate(ctx, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no rate on record for %s", apperrors.ErrRateUnavailable, currency)
		}
		return decimal.Zero, fmt.Errorf("failed to look up rate for %s: %w", currency, err)
	}
	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: stored rate for %s is not positive", apperrors.ErrRateUnavailable, currency)
	}
	return rate.Rate, nil
}

// ToKRW converts an amount in a foreign currency to KRW.
func (s *ConverterService) ToKRW(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) (decimal.Decimal, error) {
	if from.IsKRW() {
		return amount, nil
	}
	rate, err := s.lookupRate(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.DivRound(rate, 2), nil
}

// FromKRW converts a KRW amount to a foreign currency.
func (s *ConverterService) FromKRW(ctx context.Context, amount decimal.Decimal, to domain.CurrencyCode) (decimal.Decimal, error) {
	if to.IsKRW() {
		return amount, nil
	}
	rate, err := s.lookupRate(ctx, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// Convert converts between any two supported currencies, chaining through
// KRW for foreign-to-foreign pairs. Rounding happens on each hop.
func (s *ConverterService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	inKRW, err := s.ToKRW(ctx, amount, from)
	if err != nil {
		return decimal.Zero, err
	}
	return s.FromKRW(ctx, inKRW, to)
}
