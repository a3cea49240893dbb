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

// PgxRateRepository implements the rate repository interfaces using pgxpool.
// The exchange_rates table holds one row per target currency; upserts
// overwrite in place so it always reflects the latest refresh.
type PgxRateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{pool: pool}
}

// UpsertRate inserts or overwrites the rate row for a target currency.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (target_currency, base_currency, rate, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at;
	`
	_, err := r.pool.Exec(ctx, query,
		rate.TargetCurrency, rate.BaseCurrency, rate.Rate, rate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate for %s: %w", rate.TargetCurrency, err)
	}
	return nil
}

// GetRate retrieves the stored rate row for one target currency.
func (r *PgxRateRepository) GetRate(ctx context.Context, currency domain.CurrencyCode) (*domain.ExchangeRate, error) {
	query := `
		SELECT target_currency, base_currency, rate, updated_at
		FROM exchange_rates
		WHERE target_currency = $1;
	`
	rate := &domain.ExchangeRate{}
	err := r.pool.QueryRow(ctx, query, currency).Scan(
		&rate.TargetCurrency, &rate.BaseCurrency, &rate.Rate, &rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate for %s: %w", currency, err)
	}
	return rate, nil
}

// ListRates retrieves all stored rate rows.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT target_currency, base_currency, rate, updated_at
		FROM exchange_rates
		ORDER BY target_currency;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		var rate domain.ExchangeRate
		err := row.Scan(&rate.TargetCurrency, &rate.BaseCurrency, &rate.Rate, &rate.UpdatedAt)
		return rate, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning exchange rates: %w", err)
	}
	return rates, nil
}
