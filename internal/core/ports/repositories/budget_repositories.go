package repositories

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// BudgetReader defines read operations for dispatch and living budgets.
type BudgetReader interface {
	// FindDispatchBudgetByUserID returns the user's dispatch budget with its
	// items, apperrors.ErrNotFound if the user has none.
	FindDispatchBudgetByUserID(ctx context.Context, userID string) (*domain.DispatchBudget, error)
	// FindLivingBudgetByUserID returns the user's living budget with its
	// items, apperrors.ErrNotFound if the user has none.
	FindLivingBudgetByUserID(ctx context.Context, userID string) (*domain.LivingBudget, error)
}

// BudgetWriter defines write operations for budgets. Saves replace the
// budget's item set atomically.
type BudgetWriter interface {
	SaveDispatchBudget(ctx context.Context, budget domain.DispatchBudget) error
	SaveLivingBudget(ctx context.Context, budget domain.LivingBudget) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
