package services

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConverterSvc converts monetary amounts between KRW and the supported
// foreign currencies using the latest stored rates. All results are rounded
// to two decimal places, half up, at the point of conversion. A currency with
// no rate on record yields apperrors.ErrRateUnavailable; aggregating callers
// are expected to skip the line item rather than abort.
type ConverterSvc interface {
	ToKRW(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) (decimal.Decimal, error)
	FromKRW(ctx context.Context, amount decimal.Decimal, to domain.CurrencyCode) (decimal.Decimal, error)
	// Convert chains through KRW for foreign-to-foreign pairs. Rounding
	// applies at each hop, so a round trip may drift by up to a cent.
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)
}
