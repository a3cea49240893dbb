package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSnapshotRepository implements the snapshot and detail-profile repository
// interfaces using pgxpool. Snapshots are append-only; there is no update or
// delete path on summary_snapshots.
type PgxSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new PgxSnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{pool: pool}
}

const snapshotColumns = `
	s.snapshot_id, s.user_id, s.nickname, s.gender_label, s.country, s.university,
	s.exchange_type_label, s.exchange_semester, s.exchange_period,
	s.living_expense_foreign_amount, s.living_expense_foreign_currency,
	s.living_expense_krw_amount, s.base_dispatch_foreign_amount,
	s.base_dispatch_krw_amount, s.created_at
`

const snapshotCounters = `
	(SELECT COUNT(*) FROM feed_favorites f WHERE f.snapshot_id = s.snapshot_id) AS like_count,
	(SELECT COUNT(*) FROM feed_scraps sc WHERE sc.snapshot_id = s.snapshot_id) AS scrap_count
`

func scanSnapshot(row pgx.Row, snapshot *domain.Snapshot) error {
	return row.Scan(
		&snapshot.SnapshotID, &snapshot.UserID, &snapshot.Nickname, &snapshot.GenderLabel,
		&snapshot.Country, &snapshot.University,
		&snapshot.ExchangeTypeLabel, &snapshot.ExchangeSemester, &snapshot.ExchangePeriod,
		&snapshot.LivingExpenseForeignAmount, &snapshot.LivingExpenseForeignCurrency,
		&snapshot.LivingExpenseKRWAmount, &snapshot.BaseDispatchForeignAmount,
		&snapshot.BaseDispatchKRWAmount, &snapshot.CreatedAt,
	)
}

func scanFeedSnapshot(row pgx.CollectableRow) (domain.FeedSnapshot, error) {
	var snapshot domain.FeedSnapshot
	err := row.Scan(
		&snapshot.SnapshotID, &snapshot.UserID, &snapshot.Nickname, &snapshot.GenderLabel,
		&snapshot.Country, &snapshot.University,
		&snapshot.ExchangeTypeLabel, &snapshot.ExchangeSemester, &snapshot.ExchangePeriod,
		&snapshot.LivingExpenseForeignAmount, &snapshot.LivingExpenseForeignCurrency,
		&snapshot.LivingExpenseKRWAmount, &snapshot.BaseDispatchForeignAmount,
		&snapshot.BaseDispatchKRWAmount, &snapshot.CreatedAt,
		&snapshot.LikeCount, &snapshot.ScrapCount,
	)
	return snapshot, err
}

// SaveDetailProfileAndSnapshot writes the questionnaire and appends the
// snapshot in one transaction, returning the new snapshot id.
func (r *PgxSnapshotRepository) SaveDetailProfileAndSnapshot(ctx context.Context, profile domain.DetailProfile, snapshot domain.Snapshot) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	profileQuery := `
		INSERT INTO detail_profiles (
			user_id, monthly_spend_in_korea, meal_frequency, dineout_per_week,
			coffee_per_week, smoking_per_day, drinking_per_week, shopping_per_month,
			culture_per_month, residence_type, commute, summary_note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_spend_in_korea = EXCLUDED.monthly_spend_in_korea,
			meal_frequency = EXCLUDED.meal_frequency,
			dineout_per_week = EXCLUDED.dineout_per_week,
			coffee_per_week = EXCLUDED.coffee_per_week,
			smoking_per_day = EXCLUDED.smoking_per_day,
			drinking_per_week = EXCLUDED.drinking_per_week,
			shopping_per_month = EXCLUDED.shopping_per_month,
			culture_per_month = EXCLUDED.culture_per_month,
			residence_type = EXCLUDED.residence_type,
			commute = EXCLUDED.commute,
			summary_note = EXCLUDED.summary_note,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, profileQuery,
		profile.UserID, profile.MonthlySpendInKorea, profile.MealFrequency, profile.DineoutPerWeek,
		profile.CoffeePerWeek, profile.SmokingPerDay, profile.DrinkingPerWeek, profile.ShoppingPerMonth,
		profile.CulturePerMonth, profile.ResidenceType, profile.Commute, profile.SummaryNote,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert detail profile for user %s: %w", profile.UserID, err)
	}

	snapshotQuery := `
		INSERT INTO summary_snapshots (
			user_id, nickname, gender_label, country, university,
			exchange_type_label, exchange_semester, exchange_period,
			living_expense_foreign_amount, living_expense_foreign_currency,
			living_expense_krw_amount, base_dispatch_foreign_amount,
			base_dispatch_krw_amount, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING snapshot_id;
	`
	var snapshotID int64
	err = tx.QueryRow(ctx, snapshotQuery,
		snapshot.UserID, snapshot.Nickname, snapshot.GenderLabel, snapshot.Country, snapshot.University,
		snapshot.ExchangeTypeLabel, snapshot.ExchangeSemester, snapshot.ExchangePeriod,
		snapshot.LivingExpenseForeignAmount, snapshot.LivingExpenseForeignCurrency,
		snapshot.LivingExpenseKRWAmount, snapshot.BaseDispatchForeignAmount,
		snapshot.BaseDispatchKRWAmount, snapshot.CreatedAt,
	).Scan(&snapshotID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot for user %s: %w", snapshot.UserID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit detail profile and snapshot: %w", err)
	}
	return snapshotID, nil
}

// FindDetailProfileByUserID retrieves the user's questionnaire.
func (r *PgxSnapshotRepository) FindDetailProfileByUserID(ctx context.Context, userID string) (*domain.DetailProfile, error) {
	query := `
		SELECT user_id, monthly_spend_in_korea, meal_frequency, dineout_per_week,
			coffee_per_week, smoking_per_day, drinking_per_week, shopping_per_month,
			culture_per_month, residence_type, commute, summary_note,
			created_at, updated_at
		FROM detail_profiles
		WHERE user_id = $1;
	`
	profile := &domain.DetailProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.MonthlySpendInKorea, &profile.MealFrequency, &profile.DineoutPerWeek,
		&profile.CoffeePerWeek, &profile.SmokingPerDay, &profile.DrinkingPerWeek, &profile.ShoppingPerMonth,
		&profile.CulturePerMonth, &profile.ResidenceType, &profile.Commute, &profile.SummaryNote,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding detail profile for user %s: %w", userID, err)
	}
	return profile, nil
}

// FindSnapshotByID retrieves one snapshot with its social counters.
func (r *PgxSnapshotRepository) FindSnapshotByID(ctx context.Context, snapshotID int64) (*domain.FeedSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `, ` + snapshotCounters + `
		FROM summary_snapshots s
		WHERE s.snapshot_id = $1;`

	rows, err := r.pool.Query(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("error finding snapshot %d: %w", snapshotID, err)
	}
	defer rows.Close()

	snapshot, err := pgx.CollectOneRow(rows, scanFeedSnapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning snapshot %d: %w", snapshotID, err)
	}
	return &snapshot, nil
}

// ListLatestSnapshots returns each user's most recent snapshot matching the
// filter, with social counters.
func (r *PgxSnapshotRepository) ListLatestSnapshots(ctx context.Context, filter portsrepo.FeedFilter) ([]domain.FeedSnapshot, error) {
	conditions := []string{
		"s.snapshot_id IN (SELECT MAX(snapshot_id) FROM summary_snapshots GROUP BY user_id)",
	}
	args := []any{}

	if filter.Country != "" {
		args = append(args, filter.Country)
		conditions = append(conditions, fmt.Sprintf("s.country = $%d", len(args)))
	}
	if filter.University != "" {
		args = append(args, filter.University)
		conditions = append(conditions, fmt.Sprintf("s.university = $%d", len(args)))
	}
	if filter.ExchangeType != "" {
		args = append(args, filter.ExchangeType)
		conditions = append(conditions, fmt.Sprintf("s.exchange_type_label = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(s.country ILIKE $%d OR s.university ILIKE $%d)", len(args), len(args)))
	}

	orderBy := "s.snapshot_id DESC"
	if filter.Sort == portsrepo.FeedSortPopular {
		orderBy = "scrap_count DESC, s.snapshot_id DESC"
	}

	query := `SELECT ` + snapshotColumns + `, ` + snapshotCounters + `
		FROM summary_snapshots s
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY ` + orderBy + `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing feed snapshots: %w", err)
	}
	defer rows.Close()

	snapshots, err := pgx.CollectRows(rows, scanFeedSnapshot)
	if err != nil {
		return nil, fmt.Errorf("error scanning feed snapshots: %w", err)
	}
	return snapshots, nil
}

// ListSnapshotsByUserID returns a user's snapshot history, newest first.
func (r *PgxSnapshotRepository) ListSnapshotsByUserID(ctx context.Context, userID string) ([]domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM summary_snapshots s
		WHERE s.user_id = $1
		ORDER BY s.snapshot_id DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing snapshots for user %s: %w", userID, err)
	}
	defer rows.Close()

	snapshots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Snapshot, error) {
		var snapshot domain.Snapshot
		err := scanSnapshot(row, &snapshot)
		return snapshot, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning snapshots: %w", err)
	}
	return snapshots, nil
}
