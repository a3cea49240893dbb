package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAggregate is the dual-currency total for one spending category.
//
// Frozen figures use each entry's stored conversion where its currency
// matches, falling back to a fresh conversion; Current figures re-convert
// every entry at the latest rate. Entries whose currency has no rate on
// record are simply absent from the affected side: totals shrink, they
// never fail.
type CategoryAggregate struct {
	Category        Category        `json:"category"`
	ForeignCurrency CurrencyCode    `json:"foreignCurrency"`
	FrozenKRW       decimal.Decimal `json:"frozenKrw"`
	FrozenForeign   decimal.Decimal `json:"frozenForeign"`
	CurrentKRW      decimal.Decimal `json:"currentKrw"`
	CurrentForeign  decimal.Decimal `json:"currentForeign"`
}

// LivingExpenseSummary aggregates a user's living-category expenses.
// Averages divide the current-rate totals by the exchange period's month
// count; a missing or unparseable period counts as one month.
type LivingExpenseSummary struct {
	ForeignCurrency   CurrencyCode        `json:"foreignCurrency"`
	TotalKRW          decimal.Decimal     `json:"totalKrw"`
	TotalForeign      decimal.Decimal     `json:"totalForeign"`
	AvgMonthlyKRW     decimal.Decimal     `json:"avgMonthlyKrw"`
	AvgMonthlyForeign decimal.Decimal     `json:"avgMonthlyForeign"`
	Months            int                 `json:"months"`
	Categories        []CategoryAggregate `json:"categories"`
}

// MonthDashboard is one calendar month's living-category roll-up: the
// current-rate KRW total plus the per-category dual-currency figures.
type MonthDashboard struct {
	Month            time.Time           `json:"month"`
	ForeignCurrency  CurrencyCode        `json:"foreignCurrency"`
	LivingExpenseKRW decimal.Decimal     `json:"livingExpenseKrw"`
	Categories       []CategoryAggregate `json:"categories"`
}

// MonthlyTotals is the income/expense roll-up of one calendar month in both
// KRW and the user's exchange-country currency.
type MonthlyTotals struct {
	Month           time.Time       `json:"month"`
	ForeignCurrency CurrencyCode    `json:"foreignCurrency"`
	IncomeKRW       decimal.Decimal `json:"incomeKrw"`
	IncomeForeign   decimal.Decimal `json:"incomeForeign"`
	ExpenseKRW      decimal.Decimal `json:"expenseKrw"`
	ExpenseForeign  decimal.Decimal `json:"expenseForeign"`
}

// DayGroup is the day-level bucket of the chronological ledger view.
type DayGroup struct {
	Date    time.Time     `json:"date"`
	Entries []LedgerEntry `json:"entries"`
}

// MonthGroup is the month-level bucket of the chronological ledger view.
// Days are ordered newest first, as are the months themselves.
type MonthGroup struct {
	Month time.Time  `json:"month"`
	Days  []DayGroup `json:"days"`
}

// CategoryGroup buckets one month's entries by category in fixed order.
type CategoryGroup struct {
	Category Category      `json:"category"`
	Entries  []LedgerEntry `json:"entries"`
}

// MonthCategoryGroup is the month-level bucket of the category ledger view.
type MonthCategoryGroup struct {
	Month      time.Time       `json:"month"`
	Categories []CategoryGroup `json:"categories"`
}

// BudgetProjection is the combined projected cost of the whole exchange:
// one-time dispatch costs plus the monthly living plan scaled by the
// exchange duration.
type BudgetProjection struct {
	DispatchTotalKRW decimal.Decimal `json:"dispatchTotalKrw"`
	MonthlyLivingKRW decimal.Decimal `json:"monthlyLivingKrw"`
	Months           int             `json:"months"`
	ProjectedKRW     decimal.Decimal `json:"projectedKrw"`
}
