package services

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
)

// FeedSvcFacade serves the shared snapshot feed and its interactions.
type FeedSvcFacade interface {
	// ListFeed returns each user's most recent snapshot, filtered and sorted
	// per the request.
	ListFeed(ctx context.Context, viewerID string, filter repositories.FeedFilter) ([]domain.FeedSnapshot, error)
	// GetFeedDetail returns one snapshot with its counters, the owner's cost
	// breakdowns recomputed at today's rates, and the viewer's interaction
	// flags. An empty viewerID leaves the flags false.
	GetFeedDetail(ctx context.Context, viewerID string, snapshotID int64) (*domain.FeedDetail, error)

	// Favorite and Scrap are idempotent; repeating one is not an error.
	Favorite(ctx context.Context, userID string, snapshotID int64) error
	Unfavorite(ctx context.Context, userID string, snapshotID int64) error
	Scrap(ctx context.Context, userID string, snapshotID int64) error
	Unscrap(ctx context.Context, userID string, snapshotID int64) error

	ListMyScraps(ctx context.Context, userID string) ([]domain.FeedSnapshot, error)
	MyStats(ctx context.Context, userID string) (*repositories.InteractionCounts, error)
}
