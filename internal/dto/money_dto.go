package dto

import (
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Money is the wire shape of every monetary value: a decimal string with
// exactly two fraction digits next to an explicit currency code. Bare
// numbers never appear in payloads.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney formats an amount/currency pair for the wire.
func NewMoney(amount decimal.Decimal, currency domain.CurrencyCode) Money {
	return Money{
		Amount:   amount.StringFixed(2),
		Currency: currency.String(),
	}
}
