package services

import (
	"context"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/dongle-dev/dongle_backend/internal/dto"
)

// LedgerSvcFacade records ledger entries and aggregates them.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, userID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// ListByDate groups all of the user's entries by month then day, newest
	// first at both levels.
	ListByDate(ctx context.Context, userID string) ([]domain.MonthGroup, error)
	// ListByCategory groups all of the user's entries by month then category
	// in the fixed category order.
	ListByCategory(ctx context.Context, userID string) ([]domain.MonthCategoryGroup, error)

	// ThisMonthSummary totals the given month's income and expenses in KRW
	// and the user's exchange-country currency, best effort per line item.
	ThisMonthSummary(ctx context.Context, userID string, today time.Time) (*domain.MonthlyTotals, error)
	// MonthDashboard aggregates the given month's living-category expenses
	// per category at both the frozen and the current rate.
	MonthDashboard(ctx context.Context, userID string, today time.Time) (*domain.MonthDashboard, error)
	// LivingExpenseSummary aggregates all historical expense entries in the
	// living categories, with per-category dual-currency totals at both the
	// frozen and the current rate, and per-month averages over the exchange
	// period.
	LivingExpenseSummary(ctx context.Context, userID string) (*domain.LivingExpenseSummary, error)
}
