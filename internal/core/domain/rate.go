package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the latest known rate for one target currency, anchored to
// KRW: 1 KRW = Rate units of TargetCurrency. The store keeps at most one row
// per target currency; the periodic refresher overwrites it in place, so the
// store is a latest-wins cache, not a historical ledger.
type ExchangeRate struct {
	BaseCurrency   CurrencyCode    `json:"baseCurrency"`
	TargetCurrency CurrencyCode    `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
