package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
)

// FeedService serves the shared snapshot feed and its favorite/scrap
// interactions. Detail views lean on the ledger and budget services to
// recompute the snapshot owner's figures at today's rates.
type FeedService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotReader
	feedRepo     portsrepo.FeedInteractionRepository
	ledgerSvc    portssvc.LedgerSvcFacade
	budgetSvc    portssvc.BudgetSvcFacade
	converter    portssvc.ConverterSvc
}

// NewFeedService creates a new FeedService.
func NewFeedService(
	snapshotRepo portsrepo.SnapshotReader,
	feedRepo portsrepo.FeedInteractionRepository,
	ledgerSvc portssvc.LedgerSvcFacade,
	budgetSvc portssvc.BudgetSvcFacade,
	converter portssvc.ConverterSvc,
) *FeedService {
	return &FeedService{
		snapshotRepo: snapshotRepo,
		feedRepo:     feedRepo,
		ledgerSvc:    ledgerSvc,
		budgetSvc:    budgetSvc,
		converter:    converter,
	}
}

// ListFeed returns each user's most recent snapshot matching the filter.
// The sort defaults to latest when unset.
func (s *FeedService) ListFeed(ctx context.Context, viewerID string, filter portsrepo.FeedFilter) ([]domain.FeedSnapshot, error) {
	switch filter.Sort {
	case "", portsrepo.FeedSortLatest:
		filter.Sort = portsrepo.FeedSortLatest
	case portsrepo.FeedSortPopular:
	default:
		return nil, fmt.Errorf("%w: unknown sort '%s'", apperrors.ErrValidation, filter.Sort)
	}

	snapshots, err := s.snapshotRepo.ListLatestSnapshots(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return snapshots, nil
}

// GetFeedDetail returns one snapshot with its counters, the owner's living
// and dispatch costs broken down per line at today's rates, and the viewer's
// own liked/scrapped flags.
func (s *FeedService) GetFeedDetail(ctx context.Context, viewerID string, snapshotID int64) (*domain.FeedDetail, error) {
	snapshot, err := s.snapshotRepo.FindSnapshotByID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	detail := &domain.FeedDetail{FeedSnapshot: *snapshot}
	detail.LivingExpense = s.livingBreakdown(ctx, snapshot)
	detail.BaseDispatch = s.dispatchBreakdown(ctx, snapshot)

	if viewerID != "" {
		liked, err := s.feedRepo.HasFavorite(ctx, viewerID, snapshotID)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		scrapped, err := s.feedRepo.HasScrap(ctx, viewerID, snapshotID)
		if err != nil {
			return nil, fmt.Errorf("failed to check scrap: %w", err)
		}
		detail.Liked = liked
		detail.Scrapped = scrapped
	}
	return detail, nil
}

// livingBreakdown recomputes the owner's living-category lines at the
// current rates. The block totals stay the snapshot's stored figures so the
// historical record is what the header shows.
func (s *FeedService) livingBreakdown(ctx context.Context, snapshot *domain.FeedSnapshot) domain.FeedCostBreakdown {
	breakdown := domain.FeedCostBreakdown{
		ForeignCurrency: snapshot.LivingExpenseForeignCurrency,
		ForeignAmount:   snapshot.LivingExpenseForeignAmount,
		KRWAmount:       snapshot.LivingExpenseKRWAmount,
	}
	summary, err := s.ledgerSvc.LivingExpenseSummary(ctx, snapshot.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate living expenses for feed detail", "snapshotID", snapshot.SnapshotID)
		return breakdown
	}
	breakdown.Lines = make([]domain.FeedCostLine, len(summary.Categories))
	for i, agg := range summary.Categories {
		breakdown.Lines[i] = domain.FeedCostLine{
			Code:           string(agg.Category),
			Label:          agg.Category.Label(),
			ForeignAmount:  agg.FrozenForeign,
			KRWAmount:      agg.FrozenKRW,
			CurrentRateKRW: agg.CurrentKRW,
		}
	}
	return breakdown
}

// dispatchBreakdown lists the owner's dispatch items with their stored KRW
// conversions and a fresh conversion at today's rate. A currency without a
// rate keeps the stored figure.
func (s *FeedService) dispatchBreakdown(ctx context.Context, snapshot *domain.FeedSnapshot) domain.FeedCostBreakdown {
	breakdown := domain.FeedCostBreakdown{
		ForeignCurrency: snapshot.LivingExpenseForeignCurrency,
		ForeignAmount:   snapshot.BaseDispatchForeignAmount,
		KRWAmount:       snapshot.BaseDispatchKRWAmount,
	}
	budget, err := s.budgetSvc.GetDispatchBudget(ctx, snapshot.UserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to load dispatch budget for feed detail", "snapshotID", snapshot.SnapshotID)
		}
		return breakdown
	}
	breakdown.Lines = make([]domain.FeedCostLine, len(budget.Items))
	for i, item := range budget.Items {
		current, err := s.converter.ToKRW(ctx, item.Amount, item.CurrencyCode)
		if err != nil {
			current = item.ExchangeAmount
		}
		breakdown.Lines[i] = domain.FeedCostLine{
			Code:           string(item.Type),
			Label:          item.Type.Label(),
			ForeignAmount:  item.Amount,
			KRWAmount:      item.ExchangeAmount,
			CurrentRateKRW: current,
		}
	}
	return breakdown
}

// Favorite likes a snapshot. Liking one that is already liked is a no-op.
func (s *FeedService) Favorite(ctx context.Context, userID string, snapshotID int64) error {
	if _, err := s.snapshotRepo.FindSnapshotByID(ctx, snapshotID); err != nil {
		return err
	}
	err := s.feedRepo.SaveFavorite(ctx, domain.Favorite{
		UserID:     userID,
		SnapshotID: snapshotID,
		CreatedAt:  time.Now(),
	})
	if err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Unfavorite removes a like. Removing an absent like is a no-op.
func (s *FeedService) Unfavorite(ctx context.Context, userID string, snapshotID int64) error {
	err := s.feedRepo.DeleteFavorite(ctx, userID, snapshotID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// Scrap bookmarks a snapshot. Scrapping one that is already scrapped is a
// no-op.
func (s *FeedService) Scrap(ctx context.Context, userID string, snapshotID int64) error {
	if _, err := s.snapshotRepo.FindSnapshotByID(ctx, snapshotID); err != nil {
		return err
	}
	err := s.feedRepo.SaveScrap(ctx, domain.Scrap{
		UserID:     userID,
		SnapshotID: snapshotID,
		CreatedAt:  time.Now(),
	})
	if err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to save scrap: %w", err)
	}
	return nil
}

// Unscrap removes a bookmark. Removing an absent bookmark is a no-op.
func (s *FeedService) Unscrap(ctx context.Context, userID string, snapshotID int64) error {
	err := s.feedRepo.DeleteScrap(ctx, userID, snapshotID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete scrap: %w", err)
	}
	return nil
}

// ListMyScraps returns the snapshots the user bookmarked, newest scrap first.
func (s *FeedService) ListMyScraps(ctx context.Context, userID string) ([]domain.FeedSnapshot, error) {
	snapshots, err := s.feedRepo.ListScrappedSnapshots(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrapped snapshots: %w", err)
	}
	return snapshots, nil
}

// MyStats returns the user's own interaction totals.
func (s *FeedService) MyStats(ctx context.Context, userID string) (*portsrepo.InteractionCounts, error) {
	counts, err := s.feedRepo.CountInteractionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	return &counts, nil
}
