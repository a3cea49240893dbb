package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/core/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SnapshotServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo *MockSnapshotRepository
	mockLedgerRepo   *MockLedgerRepository
	mockBudgetRepo   *MockBudgetRepository
	mockProfileRepo  *MockProfileReader
	mockRateRepo     *MockRateRepository
	service          portssvc.SnapshotSvcFacade
	userID           string
}

func (suite *SnapshotServiceTestSuite) SetupTest() {
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockProfileRepo = new(MockProfileReader)
	suite.mockRateRepo = new(MockRateRepository)

	converter := services.NewConverterService(suite.mockRateRepo)
	ledgerSvc := services.NewLedgerService(suite.mockLedgerRepo, suite.mockProfileRepo, converter)
	budgetSvc := services.NewBudgetService(suite.mockBudgetRepo, suite.mockProfileRepo, converter)
	suite.service = services.NewSnapshotService(suite.mockSnapshotRepo, suite.mockProfileRepo, ledgerSvc, budgetSvc, converter)
	suite.userID = uuid.NewString()
}

func questionnaire() dto.SaveDetailProfileRequest {
	freq := "3"
	return dto.SaveDetailProfileRequest{
		MonthlySpendInKorea: decimal.NewFromInt(800000),
		MealFrequency:       &freq,
		DineoutPerWeek:      2,
		CoffeePerWeek:       5,
		ResidenceType:       "기숙사",
		Commute:             true,
		SummaryNote:         "한 학기 살아본 후기",
	}
}

func (suite *SnapshotServiceTestSuite) TestSaveDetailProfile_PublishesDenormalizedSnapshot() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindUserByID", ctx, suite.userID).Return(&domain.User{
		UserID:   suite.userID,
		Nickname: "동글이",
		Gender:   domain.GenderFemale,
	}, nil)
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(&domain.ExchangeProfile{
		UserID:           suite.userID,
		ExchangeUnivName: "UC Berkeley",
		ExchangeCountry:  "미국",
		ExchangeType:     domain.ExchangeTypeExchange,
		ExchangeSemester: "2026-1",
		ExchangePeriod:   "6개월",
	}, nil)
	suite.mockRateRepo.On("GetRate", mock.Anything, domain.CurrencyUSD).Return(&domain.ExchangeRate{
		BaseCurrency:   domain.CurrencyKRW,
		TargetCurrency: domain.CurrencyUSD,
		Rate:           decimal.RequireFromString("0.00075"),
		UpdatedAt:      time.Now(),
	}, nil)

	method := domain.PaymentCard
	suite.mockLedgerRepo.On("ListEntries", mock.Anything, suite.userID, mock.Anything).Return([]domain.LedgerEntry{
		{
			EntryType:     domain.EntryExpense,
			Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: &method,
			Category:      domain.CategoryFood,
			Amount:        decimal.NewFromInt(60),
			CurrencyCode:  domain.CurrencyUSD,
		},
	}, nil)
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", mock.Anything, suite.userID).Return(&domain.DispatchBudget{
		UserID: suite.userID,
		Items: []domain.DispatchItem{
			{Type: domain.DispatchFlight, ExchangeAmount: decimal.NewFromInt(1000000)},
		},
	}, nil)
	suite.mockSnapshotRepo.On("FindDetailProfileByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("SaveDetailProfileAndSnapshot", ctx, mock.AnythingOfType("domain.DetailProfile"), mock.AnythingOfType("domain.Snapshot")).Return(int64(41), nil).Once()

	snapshot, err := suite.service.SaveDetailProfile(ctx, suite.userID, questionnaire())

	suite.Require().NoError(err)
	suite.Equal(int64(41), snapshot.SnapshotID)
	suite.Equal("동글이", snapshot.Nickname)
	suite.Equal("여", snapshot.GenderLabel)
	suite.Equal("교환학생", snapshot.ExchangeTypeLabel)
	suite.Equal("미국", snapshot.Country)
	suite.Equal(domain.CurrencyUSD, snapshot.LivingExpenseForeignCurrency)
	// 60 USD is 80000 KRW at the stubbed rate, split over 6 months.
	suite.Equal("13333.33", snapshot.LivingExpenseKRWAmount.StringFixed(2))
	suite.Equal("10.00", snapshot.LivingExpenseForeignAmount.StringFixed(2))
	suite.Equal("1000000.00", snapshot.BaseDispatchKRWAmount.StringFixed(2))
	suite.Equal("750.00", snapshot.BaseDispatchForeignAmount.StringFixed(2))
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestSaveDetailProfile_NoExchangeProfileFallsBackToKRW() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindUserByID", ctx, suite.userID).Return(&domain.User{
		UserID:   suite.userID,
		Nickname: "동글이",
		Gender:   domain.GenderMale,
	}, nil)
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockLedgerRepo.On("ListEntries", mock.Anything, suite.userID, mock.Anything).Return([]domain.LedgerEntry{}, nil)
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockSnapshotRepo.On("FindDetailProfileByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("SaveDetailProfileAndSnapshot", ctx, mock.AnythingOfType("domain.DetailProfile"), mock.AnythingOfType("domain.Snapshot")).Return(int64(1), nil).Once()

	snapshot, err := suite.service.SaveDetailProfile(ctx, suite.userID, questionnaire())

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyKRW, snapshot.LivingExpenseForeignCurrency)
	suite.Empty(snapshot.Country)
	suite.Equal("0.00", snapshot.BaseDispatchKRWAmount.StringFixed(2))
}

func (suite *SnapshotServiceTestSuite) TestSaveDetailProfile_KeepsProfileCreatedAt() {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	suite.mockProfileRepo.On("FindUserByID", ctx, suite.userID).Return(&domain.User{UserID: suite.userID}, nil)
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockLedgerRepo.On("ListEntries", mock.Anything, suite.userID, mock.Anything).Return([]domain.LedgerEntry{}, nil)
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockSnapshotRepo.On("FindDetailProfileByUserID", ctx, suite.userID).Return(&domain.DetailProfile{
		UserID:      suite.userID,
		AuditFields: domain.AuditFields{CreatedAt: created},
	}, nil).Once()
	suite.mockSnapshotRepo.On("SaveDetailProfileAndSnapshot", ctx, mock.MatchedBy(func(p domain.DetailProfile) bool {
		return p.CreatedAt.Equal(created)
	}), mock.AnythingOfType("domain.Snapshot")).Return(int64(2), nil).Once()

	_, err := suite.service.SaveDetailProfile(ctx, suite.userID, questionnaire())

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestSaveDetailProfile_RejectsNegativeSpend() {
	ctx := context.Background()

	_, err := suite.service.SaveDetailProfile(ctx, suite.userID, dto.SaveDetailProfileRequest{
		MonthlySpendInKorea: decimal.NewFromInt(-1),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "SaveDetailProfileAndSnapshot")
}

func (suite *SnapshotServiceTestSuite) TestSaveDetailProfile_AcceptsZeroSpend() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindUserByID", ctx, suite.userID).Return(&domain.User{UserID: suite.userID}, nil)
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockLedgerRepo.On("ListEntries", mock.Anything, suite.userID, mock.Anything).Return([]domain.LedgerEntry{}, nil)
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockSnapshotRepo.On("FindDetailProfileByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("SaveDetailProfileAndSnapshot", ctx, mock.MatchedBy(func(p domain.DetailProfile) bool {
		return p.MonthlySpendInKorea.IsZero() && p.MealFrequency == nil
	}), mock.AnythingOfType("domain.Snapshot")).Return(int64(3), nil).Once()

	snapshot, err := suite.service.SaveDetailProfile(ctx, suite.userID, dto.SaveDetailProfileRequest{
		MonthlySpendInKorea: decimal.Zero,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(3), snapshot.SnapshotID)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestSnapshotFiguresSurviveLaterLedgerEdits() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindUserByID", ctx, suite.userID).Return(&domain.User{
		UserID:   suite.userID,
		Nickname: "동글이",
		Gender:   domain.GenderFemale,
	}, nil)
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(&domain.ExchangeProfile{
		UserID:          suite.userID,
		ExchangeCountry: "미국",
		ExchangePeriod:  "6개월",
	}, nil)
	suite.mockRateRepo.On("GetRate", mock.Anything, domain.CurrencyUSD).Return(&domain.ExchangeRate{
		BaseCurrency:   domain.CurrencyKRW,
		TargetCurrency: domain.CurrencyUSD,
		Rate:           decimal.RequireFromString("0.00075"),
		UpdatedAt:      time.Now(),
	}, nil)

	method := domain.PaymentCard
	suite.mockLedgerRepo.On("ListEntries", mock.Anything, suite.userID, mock.Anything).Return([]domain.LedgerEntry{
		{
			EntryType:     domain.EntryExpense,
			Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: &method,
			Category:      domain.CategoryFood,
			Amount:        decimal.NewFromInt(60),
			CurrencyCode:  domain.CurrencyUSD,
		},
	}, nil)
	suite.mockBudgetRepo.On("FindDispatchBudgetByUserID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.mockSnapshotRepo.On("FindDetailProfileByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	var stored domain.Snapshot
	suite.mockSnapshotRepo.On("SaveDetailProfileAndSnapshot", ctx, mock.AnythingOfType("domain.DetailProfile"), mock.AnythingOfType("domain.Snapshot")).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).(domain.Snapshot)
		}).Return(int64(7), nil).Once()

	published, err := suite.service.SaveDetailProfile(ctx, suite.userID, questionnaire())
	suite.Require().NoError(err)
	suite.Equal("13333.33", published.LivingExpenseKRWAmount.StringFixed(2))

	// Ledger activity after publishing must not leak into the stored row:
	// reads come back from the repository as written, without touching the
	// ledger again.
	stored.SnapshotID = 7
	suite.mockSnapshotRepo.On("ListSnapshotsByUserID", ctx, suite.userID).Return([]domain.Snapshot{stored}, nil).Once()

	snapshots, err := suite.service.ListMySnapshots(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(snapshots, 1)
	suite.Equal("13333.33", snapshots[0].LivingExpenseKRWAmount.StringFixed(2))
	suite.Equal("10.00", snapshots[0].LivingExpenseForeignAmount.StringFixed(2))
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "ListEntries", 1)
}

func (suite *SnapshotServiceTestSuite) TestListMySnapshots() {
	ctx := context.Background()
	suite.mockSnapshotRepo.On("ListSnapshotsByUserID", ctx, suite.userID).Return([]domain.Snapshot{
		{SnapshotID: 9}, {SnapshotID: 4},
	}, nil).Once()

	snapshots, err := suite.service.ListMySnapshots(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(snapshots, 2)
	suite.Equal(int64(9), snapshots[0].SnapshotID)
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}
