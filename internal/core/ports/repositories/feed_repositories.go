package repositories

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// InteractionCounts carries a user's own favorite/scrap totals.
type InteractionCounts struct {
	FavoriteCount int
	ScrapCount    int
}

// FeedInteractionRepository manages favorite and scrap join rows. Creation
// must tolerate races on the (user, snapshot) uniqueness constraint:
// implementations return apperrors.ErrDuplicate when the row already exists
// rather than failing with a driver error.
type FeedInteractionRepository interface {
	SaveFavorite(ctx context.Context, favorite domain.Favorite) error
	DeleteFavorite(ctx context.Context, userID string, snapshotID int64) error
	SaveScrap(ctx context.Context, scrap domain.Scrap) error
	DeleteScrap(ctx context.Context, userID string, snapshotID int64) error
	// HasFavorite / HasScrap report whether the user already interacted with
	// the snapshot.
	HasFavorite(ctx context.Context, userID string, snapshotID int64) (bool, error)
	HasScrap(ctx context.Context, userID string, snapshotID int64) (bool, error)
	// ListScrappedSnapshots returns the snapshots a user scrapped, newest
	// scrap first, with social counters.
	ListScrappedSnapshots(ctx context.Context, userID string) ([]domain.FeedSnapshot, error)
	// CountInteractionsByUserID returns how many favorites and scraps the
	// user has made.
	CountInteractionsByUserID(ctx context.Context, userID string) (InteractionCounts, error)
}
