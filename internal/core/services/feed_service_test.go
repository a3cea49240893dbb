package services_test

import (
	"context"
	"testing"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FeedServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo *MockSnapshotRepository
	mockFeedRepo     *MockFeedRepository
	mockLedgerRepo   *MockLedgerRepository
	mockBudgetRepo   *MockBudgetRepository
	mockProfileRepo  *MockProfileReader
	mockRateRepo     *MockRateRepository
	service          portssvc.FeedSvcFacade
	userID           string
}

func (suite *FeedServiceTestSuite) SetupTest() {
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.mockFeedRepo = new(MockFeedRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockProfileRepo = new(MockProfileReader)
	suite.mockRateRepo = new(MockRateRepository)
	converter := services.NewConverterService(suite.mockRateRepo)
	ledger := services.NewLedgerService(suite.mockLedgerRepo, suite.mockProfileRepo, converter)
	budget := services.NewBudgetService(suite.mockBudgetRepo, suite.mockProfileRepo, converter)
	suite.service = services.NewFeedService(suite.mockSnapshotRepo, suite.mockFeedRepo, ledger, budget, converter)
	suite.userID = uuid.NewString()
}

func (suite *FeedServiceTestSuite) TestListFeed_DefaultsToLatestSort() {
	ctx := context.Background()
	suite.mockSnapshotRepo.On("ListLatestSnapshots", ctx, mock.MatchedBy(func(f portsrepo.FeedFilter) bool {
		return f.Sort == portsrepo.FeedSortLatest
	})).Return([]domain.FeedSnapshot{}, nil).Once()

	_, err := suite.service.ListFeed(ctx, suite.userID, portsrepo.FeedFilter{})

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *FeedServiceTestSuite) TestListFeed_RejectsUnknownSort() {
	ctx := context.Background()

	_, err := suite.service.ListFeed(ctx, suite.userID, portsrepo.FeedFilter{Sort: "trending"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "ListLatestSnapshots")
}

func (suite *FeedServiceTestSuite) TestGetFeedDetail_ViewerFlagsAndStoredTotals() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	suite.mockSnapshotRepo.On("FindSnapshotByID", ctx, int64(9)).Return(&domain.FeedSnapshot{
		Snapshot: domain.Snapshot{
			SnapshotID:                   9,
			UserID:                       ownerID,
			LivingExpenseForeignCurrency: domain.CurrencyUSD,
			LivingExpenseKRWAmount:       decimal.RequireFromString("1000000"),
		},
		ScrapCount: 5,
	}, nil).Once()
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", ctx, ownerID).Return(nil, apperrors.ErrNotFound)
	suite.mockLedgerRepo.On("ListEntries", ctx, ownerID, mock.Anything).Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFeedRepo.On("HasFavorite", ctx, suite.userID, int64(9)).Return(true, nil).Once()
	suite.mockFeedRepo.On("HasScrap", ctx, suite.userID, int64(9)).Return(false, nil).Once()

	detail, err := suite.service.GetFeedDetail(ctx, suite.userID, 9)

	suite.Require().NoError(err)
	suite.True(detail.Liked)
	suite.False(detail.Scrapped)
	suite.Equal(5, detail.ScrapCount)
	suite.Equal("1000000.00", detail.LivingExpense.KRWAmount.StringFixed(2))
	suite.Len(detail.LivingExpense.Lines, len(domain.LivingCategories))
	suite.Empty(detail.BaseDispatch.Lines)
}

func (suite *FeedServiceTestSuite) TestFavorite_DuplicateIsNoOp() {
	ctx := context.Background()
	suite.mockSnapshotRepo.On("FindSnapshotByID", ctx, int64(7)).Return(&domain.FeedSnapshot{
		Snapshot: domain.Snapshot{SnapshotID: 7},
	}, nil).Once()
	suite.mockFeedRepo.On("SaveFavorite", ctx, mock.AnythingOfType("domain.Favorite")).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.Favorite(ctx, suite.userID, 7)

	suite.Require().NoError(err)
	suite.mockFeedRepo.AssertExpectations(suite.T())
}

func (suite *FeedServiceTestSuite) TestFavorite_UnknownSnapshot() {
	ctx := context.Background()
	suite.mockSnapshotRepo.On("FindSnapshotByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Favorite(ctx, suite.userID, 404)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockFeedRepo.AssertNotCalled(suite.T(), "SaveFavorite")
}

func (suite *FeedServiceTestSuite) TestUnfavorite_AbsentRowIsNoOp() {
	ctx := context.Background()
	suite.mockFeedRepo.On("DeleteFavorite", ctx, suite.userID, int64(7)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.Unfavorite(ctx, suite.userID, 7)

	suite.Require().NoError(err)
}

func (suite *FeedServiceTestSuite) TestScrap_DuplicateIsNoOp() {
	ctx := context.Background()
	suite.mockSnapshotRepo.On("FindSnapshotByID", ctx, int64(7)).Return(&domain.FeedSnapshot{
		Snapshot: domain.Snapshot{SnapshotID: 7},
	}, nil).Once()
	suite.mockFeedRepo.On("SaveScrap", ctx, mock.AnythingOfType("domain.Scrap")).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.Scrap(ctx, suite.userID, 7)

	suite.Require().NoError(err)
}

func (suite *FeedServiceTestSuite) TestListMyScraps() {
	ctx := context.Background()
	suite.mockFeedRepo.On("ListScrappedSnapshots", ctx, suite.userID).Return([]domain.FeedSnapshot{
		{Snapshot: domain.Snapshot{SnapshotID: 12}, ScrapCount: 3},
	}, nil).Once()

	snapshots, err := suite.service.ListMyScraps(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(snapshots, 1)
	suite.Equal(int64(12), snapshots[0].SnapshotID)
}

func (suite *FeedServiceTestSuite) TestMyStats() {
	ctx := context.Background()
	suite.mockFeedRepo.On("CountInteractionsByUserID", ctx, suite.userID).Return(portsrepo.InteractionCounts{
		FavoriteCount: 4,
		ScrapCount:    2,
	}, nil).Once()

	counts, err := suite.service.MyStats(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(4, counts.FavoriteCount)
	suite.Equal(2, counts.ScrapCount)
}

func TestFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeedServiceTestSuite))
}
