package pgsql

import (
	"context"
	"fmt"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxFeedRepository implements the feed interaction repository using pgxpool.
// Inserts ride on the (user_id, snapshot_id) primary keys: a conflicting
// insert affects zero rows and is reported as apperrors.ErrDuplicate, which
// keeps concurrent double-taps race-free.
type PgxFeedRepository struct {
	pool *pgxpool.Pool
}

// NewFeedRepository creates a new PgxFeedRepository.
func NewFeedRepository(pool *pgxpool.Pool) portsrepo.FeedInteractionRepository {
	return &PgxFeedRepository{pool: pool}
}

// SaveFavorite inserts a favorite row.
func (r *PgxFeedRepository) SaveFavorite(ctx context.Context, favorite domain.Favorite) error {
	query := `
		INSERT INTO feed_favorites (user_id, snapshot_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, snapshot_id) DO NOTHING;
	`
	tag, err := r.pool.Exec(ctx, query, favorite.UserID, favorite.SnapshotID, favorite.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// DeleteFavorite removes a favorite row.
func (r *PgxFeedRepository) DeleteFavorite(ctx context.Context, userID string, snapshotID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM feed_favorites WHERE user_id = $1 AND snapshot_id = $2;
	`, userID, snapshotID)
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveScrap inserts a scrap row.
func (r *PgxFeedRepository) SaveScrap(ctx context.Context, scrap domain.Scrap) error {
	query := `
		INSERT INTO feed_scraps (user_id, snapshot_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, snapshot_id) DO NOTHING;
	`
	tag, err := r.pool.Exec(ctx, query, scrap.UserID, scrap.SnapshotID, scrap.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting scrap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// DeleteScrap removes a scrap row.
func (r *PgxFeedRepository) DeleteScrap(ctx context.Context, userID string, snapshotID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM feed_scraps WHERE user_id = $1 AND snapshot_id = $2;
	`, userID, snapshotID)
	if err != nil {
		return fmt.Errorf("error deleting scrap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasFavorite reports whether the user already liked the snapshot.
func (r *PgxFeedRepository) HasFavorite(ctx context.Context, userID string, snapshotID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM feed_favorites WHERE user_id = $1 AND snapshot_id = $2);
	`, userID, snapshotID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return exists, nil
}

// HasScrap reports whether the user already scrapped the snapshot.
func (r *PgxFeedRepository) HasScrap(ctx context.Context, userID string, snapshotID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM feed_scraps WHERE user_id = $1 AND snapshot_id = $2);
	`, userID, snapshotID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking scrap: %w", err)
	}
	return exists, nil
}

// ListScrappedSnapshots returns the snapshots the user scrapped, newest
// scrap first, with social counters.
func (r *PgxFeedRepository) ListScrappedSnapshots(ctx context.Context, userID string) ([]domain.FeedSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `, ` + snapshotCounters + `
		FROM summary_snapshots s
		JOIN feed_scraps my ON my.snapshot_id = s.snapshot_id
		WHERE my.user_id = $1
		ORDER BY my.created_at DESC, s.snapshot_id DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing scrapped snapshots for user %s: %w", userID, err)
	}
	defer rows.Close()

	snapshots, err := pgx.CollectRows(rows, scanFeedSnapshot)
	if err != nil {
		return nil, fmt.Errorf("error scanning scrapped snapshots: %w", err)
	}
	return snapshots, nil
}

// CountInteractionsByUserID returns how many favorites and scraps the user
// has made.
func (r *PgxFeedRepository) CountInteractionsByUserID(ctx context.Context, userID string) (portsrepo.InteractionCounts, error) {
	var counts portsrepo.InteractionCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM feed_favorites WHERE user_id = $1),
			(SELECT COUNT(*) FROM feed_scraps WHERE user_id = $1);
	`, userID).Scan(&counts.FavoriteCount, &counts.ScrapCount)
	if err != nil {
		return portsrepo.InteractionCounts{}, fmt.Errorf("error counting interactions for user %s: %w", userID, err)
	}
	return counts, nil
}
