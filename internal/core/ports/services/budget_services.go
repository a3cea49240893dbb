package services

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/dongle-dev/dongle_backend/internal/dto"
)

// BudgetSvcFacade manages the dispatch (one-time) and living (monthly) budgets.
type BudgetSvcFacade interface {
	// SaveDispatchBudget replaces the user's dispatch budget wholesale. The
	// request must carry exactly the four required item types; conversions to
	// KRW are recomputed from the current rate table on every save.
	SaveDispatchBudget(ctx context.Context, userID string, req dto.SaveDispatchBudgetRequest) (*domain.DispatchBudget, error)
	GetDispatchBudget(ctx context.Context, userID string) (*domain.DispatchBudget, error)

	// SaveLivingBudget replaces the user's monthly living budget wholesale.
	// All amounts are KRW.
	SaveLivingBudget(ctx context.Context, userID string, req dto.SaveLivingBudgetRequest) (*domain.LivingBudget, error)
	GetLivingBudget(ctx context.Context, userID string) (*domain.LivingBudget, error)

	// Projection combines both budgets into the total planned cost of the
	// exchange period: dispatch total plus living total times the period's
	// month count.
	Projection(ctx context.Context, userID string) (*domain.BudgetProjection, error)
}
