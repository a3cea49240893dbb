package services

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/dongle-dev/dongle_backend/internal/dto"
)

// SnapshotSvcFacade manages the lifestyle questionnaire and the immutable
// cost snapshots published from it.
type SnapshotSvcFacade interface {
	GetDetailProfile(ctx context.Context, userID string) (*domain.DetailProfile, error)
	// SaveDetailProfile upserts the questionnaire and, in the same
	// transaction, publishes a new snapshot capturing the user's current
	// totals and profile labels. Earlier snapshots are never touched.
	SaveDetailProfile(ctx context.Context, userID string, req dto.SaveDetailProfileRequest) (*domain.Snapshot, error)
	ListMySnapshots(ctx context.Context, userID string) ([]domain.Snapshot, error)
}
