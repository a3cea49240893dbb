package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBudgetRepository implements the budget repository interfaces using
// pgxpool. Budget saves replace the item set inside a transaction so readers
// never observe a half-replaced budget.
type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new PgxBudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

// SaveDispatchBudget upserts the budget row and replaces its items.
func (r *PgxBudgetRepository) SaveDispatchBudget(ctx context.Context, budget domain.DispatchBudget) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	budgetQuery := `
		INSERT INTO dispatch_budgets (budget_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, budgetQuery, budget.BudgetID, budget.UserID, budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert dispatch budget for user %s: %w", budget.UserID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM dispatch_budget_items WHERE budget_id = $1;`, budget.BudgetID)
	if err != nil {
		return fmt.Errorf("failed to clear dispatch budget items: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO dispatch_budget_items (
			item_id, budget_id, item_type, amount, currency_code, exchange_amount,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, item := range budget.Items {
		batch.Queue(itemQuery,
			item.ItemID, budget.BudgetID, item.Type, item.Amount, item.CurrencyCode, item.ExchangeAmount,
			item.CreatedAt, item.UpdatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert dispatch budget items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dispatch budget for user %s: %w", budget.UserID, err)
	}
	return nil
}

// FindDispatchBudgetByUserID retrieves the user's dispatch budget and items.
func (r *PgxBudgetRepository) FindDispatchBudgetByUserID(ctx context.Context, userID string) (*domain.DispatchBudget, error) {
	budget := &domain.DispatchBudget{}
	err := r.pool.QueryRow(ctx, `
		SELECT budget_id, user_id, created_at, updated_at
		FROM dispatch_budgets
		WHERE user_id = $1;
	`, userID).Scan(&budget.BudgetID, &budget.UserID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding dispatch budget for user %s: %w", userID, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, item_type, amount, currency_code, exchange_amount, created_at, updated_at
		FROM dispatch_budget_items
		WHERE budget_id = $1
		ORDER BY item_type;
	`, budget.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("error listing dispatch budget items: %w", err)
	}
	defer rows.Close()

	budget.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DispatchItem, error) {
		var item domain.DispatchItem
		err := row.Scan(&item.ItemID, &item.Type, &item.Amount, &item.CurrencyCode, &item.ExchangeAmount,
			&item.CreatedAt, &item.UpdatedAt)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning dispatch budget items: %w", err)
	}
	return budget, nil
}

// SaveLivingBudget upserts the budget row and replaces its items.
func (r *PgxBudgetRepository) SaveLivingBudget(ctx context.Context, budget domain.LivingBudget) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	budgetQuery := `
		INSERT INTO living_budgets (budget_id, user_id, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET total_amount = EXCLUDED.total_amount, updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, budgetQuery, budget.BudgetID, budget.UserID, budget.TotalAmount, budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert living budget for user %s: %w", budget.UserID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM living_budget_items WHERE budget_id = $1;`, budget.BudgetID)
	if err != nil {
		return fmt.Errorf("failed to clear living budget items: %w", err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO living_budget_items (
			item_id, budget_id, item_type, custom_name, amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range budget.Items {
		batch.Queue(itemQuery,
			item.ItemID, budget.BudgetID, item.Type, item.CustomName, item.Amount,
			item.CreatedAt, item.UpdatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert living budget items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit living budget for user %s: %w", budget.UserID, err)
	}
	return nil
}

// FindLivingBudgetByUserID retrieves the user's living budget and items.
func (r *PgxBudgetRepository) FindLivingBudgetByUserID(ctx context.Context, userID string) (*domain.LivingBudget, error) {
	budget := &domain.LivingBudget{}
	err := r.pool.QueryRow(ctx, `
		SELECT budget_id, user_id, total_amount, created_at, updated_at
		FROM living_budgets
		WHERE user_id = $1;
	`, userID).Scan(&budget.BudgetID, &budget.UserID, &budget.TotalAmount, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding living budget for user %s: %w", userID, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, item_type, custom_name, amount, created_at, updated_at
		FROM living_budget_items
		WHERE budget_id = $1
		ORDER BY created_at, item_id;
	`, budget.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("error listing living budget items: %w", err)
	}
	defer rows.Close()

	budget.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LivingItem, error) {
		var item domain.LivingItem
		err := row.Scan(&item.ItemID, &item.Type, &item.CustomName, &item.Amount,
			&item.CreatedAt, &item.UpdatedAt)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning living budget items: %w", err)
	}
	return budget, nil
}
