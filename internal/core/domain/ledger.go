package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes income from expense ledger entries.
type EntryType string

const (
	EntryExpense EntryType = "EXPENSE"
	EntryIncome  EntryType = "INCOME"
)

// IsValid reports whether the entry type belongs to the closed set.
func (t EntryType) IsValid() bool {
	return t == EntryExpense || t == EntryIncome
}

// PaymentMethod records how an expense was paid. Required for expenses,
// must be absent for income.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// IsValid reports whether the payment method belongs to the closed set.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard
}

// LedgerEntry is a single recorded income or expense transaction.
//
// AmountConverted and ConvertedCurrencyCode hold a conversion frozen at the
// time the entry was created (or last had its amount/currency edited): a
// foreign original is frozen as KRW, a KRW original is frozen as the user's
// exchange-country currency. They are deliberately never recomputed when
// rates move; they preserve what the entry was worth when recorded.
type LedgerEntry struct {
	EntryID               string           `json:"entryID"`
	UserID                string           `json:"userID"`
	EntryType             EntryType        `json:"entryType"`
	Date                  time.Time        `json:"date"`
	PaymentMethod         *PaymentMethod   `json:"paymentMethod,omitempty"`
	Category              Category         `json:"category"`
	Amount                decimal.Decimal  `json:"amount"`
	CurrencyCode          CurrencyCode     `json:"currencyCode"`
	AmountConverted       *decimal.Decimal `json:"amountConverted,omitempty"`
	ConvertedCurrencyCode *CurrencyCode    `json:"convertedCurrencyCode,omitempty"`
	AuditFields
}

// MonthKey returns the entry date truncated to the first day of its month,
// the grouping key for monthly views.
func (e LedgerEntry) MonthKey() time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, e.Date.Location())
}

// DayKey returns the entry date truncated to midnight.
func (e LedgerEntry) DayKey() time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, e.Date.Location())
}
