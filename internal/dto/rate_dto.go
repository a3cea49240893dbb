package dto

import (
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse describes one stored rate row.
type ExchangeRateResponse struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrency:   rate.BaseCurrency.String(),
		TargetCurrency: rate.TargetCurrency.String(),
		Rate:           rate.Rate,
		UpdatedAt:      rate.UpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of rate rows to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ConvertResultResponse is the outcome of a one-off conversion request.
type ConvertResultResponse struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Amount       string `json:"amount"`
	Converted    string `json:"converted"`
}
