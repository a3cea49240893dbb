package repositories

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// FeedSort selects the ordering of feed listings.
type FeedSort string

const (
	FeedSortLatest  FeedSort = "latest"
	FeedSortPopular FeedSort = "popular"
)

// FeedFilter narrows feed listings. Empty fields are ignored; Search matches
// country or university, case-insensitively.
type FeedFilter struct {
	Search       string
	Country      string
	University   string
	ExchangeType string
	Sort         FeedSort
}

// SnapshotReader defines read operations for summary snapshots.
type SnapshotReader interface {
	// FindSnapshotByID returns one snapshot with its social counters,
	// apperrors.ErrNotFound if absent.
	FindSnapshotByID(ctx context.Context, snapshotID int64) (*domain.FeedSnapshot, error)
	// ListLatestSnapshots returns each user's most recent snapshot (highest
	// id per user) matching the filter, with like/scrap counts.
	ListLatestSnapshots(ctx context.Context, filter FeedFilter) ([]domain.FeedSnapshot, error)
	// ListSnapshotsByUserID returns a user's snapshot history, newest first.
	ListSnapshotsByUserID(ctx context.Context, userID string) ([]domain.Snapshot, error)
}

// SnapshotWriter defines write operations for snapshots and the detail
// profile that triggers them.
type SnapshotWriter interface {
	// SaveDetailProfileAndSnapshot writes the detail profile (insert or
	// update) and appends the snapshot in one transaction, so a half-created
	// snapshot is never visible. Returns the new snapshot id.
	SaveDetailProfileAndSnapshot(ctx context.Context, profile domain.DetailProfile, snapshot domain.Snapshot) (int64, error)
}

// DetailProfileReader defines read operations for detail profiles.
type DetailProfileReader interface {
	// FindDetailProfileByUserID returns the user's detail profile,
	// apperrors.ErrNotFound if they have not filled one in.
	FindDetailProfileByUserID(ctx context.Context, userID string) (*domain.DetailProfile, error)
}

// SnapshotRepositoryFacade combines all snapshot repository interfaces.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
	DetailProfileReader
}
