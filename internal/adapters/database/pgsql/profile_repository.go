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

// PgxProfileRepository reads user and exchange-profile records owned by the
// account side of the database. The tracker only ever reads them.
type PgxProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PgxProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileReader {
	return &PgxProfileRepository{pool: pool}
}

// FindUserByID retrieves one user record.
func (r *PgxProfileRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, nickname, gender, COALESCE(univ_name, '')
		FROM users
		WHERE user_id = $1;
	`
	user := &domain.User{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.UserID, &user.Nickname, &user.Gender, &user.UnivName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user %s: %w", userID, err)
	}
	return user, nil
}

// FindExchangeProfileByUserID retrieves the user's exchange profile.
func (r *PgxProfileRepository) FindExchangeProfileByUserID(ctx context.Context, userID string) (*domain.ExchangeProfile, error) {
	query := `
		SELECT user_id, exchange_univ_name, exchange_country, exchange_type,
			exchange_semester, exchange_period, created_at, updated_at
		FROM exchange_profiles
		WHERE user_id = $1;
	`
	profile := &domain.ExchangeProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.ExchangeUnivName, &profile.ExchangeCountry, &profile.ExchangeType,
		&profile.ExchangeSemester, &profile.ExchangePeriod, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange profile for user %s: %w", userID, err)
	}
	return profile, nil
}
