package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/core/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockProfileRepo *MockProfileReader
	mockRateRepo    *MockRateRepository
	service         portssvc.LedgerSvcFacade
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockProfileRepo = new(MockProfileReader)
	suite.mockRateRepo = new(MockRateRepository)
	converter := services.NewConverterService(suite.mockRateRepo)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockProfileRepo, converter)
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) stubProfile(country, period string) {
	suite.mockProfileRepo.On("FindExchangeProfileByUserID", mock.Anything, suite.userID).Return(&domain.ExchangeProfile{
		UserID:          suite.userID,
		ExchangeCountry: country,
		ExchangePeriod:  period,
	}, nil)
}

func (suite *LedgerServiceTestSuite) stubRate(currency domain.CurrencyCode, rate string) {
	suite.mockRateRepo.On("GetRate", mock.Anything, currency).Return(&domain.ExchangeRate{
		BaseCurrency:   domain.CurrencyKRW,
		TargetCurrency: currency,
		Rate:           decimal.RequireFromString(rate),
		UpdatedAt:      time.Now(),
	}, nil)
}

func cardPtr() *string {
	card := "CARD"
	return &card
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_FreezesForeignToKRW() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")
	suite.stubRate(domain.CurrencyUSD, "0.00075")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, dto.CreateLedgerEntryRequest{
		EntryType:     "EXPENSE",
		Date:          "2026-03-02",
		PaymentMethod: cardPtr(),
		Category:      "FOOD",
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "USD",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.AmountConverted)
	suite.Equal("133333.33", entry.AmountConverted.StringFixed(2))
	suite.Equal(domain.CurrencyKRW, *entry.ConvertedCurrencyCode)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_FreezesKRWToExchangeCurrency() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")
	suite.stubRate(domain.CurrencyUSD, "0.00075")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, dto.CreateLedgerEntryRequest{
		EntryType:    "INCOME",
		Date:         "2026-03-02",
		Category:     "ALLOWANCE",
		Amount:       decimal.NewFromInt(10000),
		CurrencyCode: "KRW",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.AmountConverted)
	suite.Equal("7.50", entry.AmountConverted.StringFixed(2))
	suite.Equal(domain.CurrencyUSD, *entry.ConvertedCurrencyCode)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_MissingRateStoresWithoutConversion() {
	ctx := context.Background()
	suite.stubProfile("대만", "6개월")
	suite.mockRateRepo.On("GetRate", mock.Anything, domain.CurrencyTWD).Return(nil, apperrors.ErrNotFound)
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, dto.CreateLedgerEntryRequest{
		EntryType:     "EXPENSE",
		Date:          "2026-03-02",
		PaymentMethod: cardPtr(),
		Category:      "FOOD",
		Amount:        decimal.NewFromInt(500),
		CurrencyCode:  "TWD",
	})

	suite.Require().NoError(err)
	suite.Nil(entry.AmountConverted)
	suite.Nil(entry.ConvertedCurrencyCode)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_IncomeWithPaymentMethodFails() {
	ctx := context.Background()

	_, err := suite.service.CreateEntry(ctx, suite.userID, dto.CreateLedgerEntryRequest{
		EntryType:     "INCOME",
		Date:          "2026-03-02",
		PaymentMethod: cardPtr(),
		Category:      "ALLOWANCE",
		Amount:        decimal.NewFromInt(10000),
		CurrencyCode:  "KRW",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ExpenseWithoutPaymentMethodFails() {
	ctx := context.Background()

	_, err := suite.service.CreateEntry(ctx, suite.userID, dto.CreateLedgerEntryRequest{
		EntryType:    "EXPENSE",
		Date:         "2026-03-02",
		Category:     "FOOD",
		Amount:       decimal.NewFromInt(10000),
		CurrencyCode: "KRW",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_AmountChangeRefreezes() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")
	suite.stubRate(domain.CurrencyUSD, "0.00075")

	frozen := decimal.RequireFromString("133333.33")
	krw := domain.CurrencyKRW
	method := domain.PaymentCard
	existing := &domain.LedgerEntry{
		EntryID:               "entry-1",
		UserID:                suite.userID,
		EntryType:             domain.EntryExpense,
		Date:                  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PaymentMethod:         &method,
		Category:              domain.CategoryFood,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          domain.CurrencyUSD,
		AmountConverted:       &frozen,
		ConvertedCurrencyCode: &krw,
	}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(existing, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	newAmount := decimal.NewFromInt(200)
	updated, err := suite.service.UpdateEntry(ctx, suite.userID, "entry-1", dto.UpdateLedgerEntryRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.AmountConverted)
	suite.Equal("266666.67", updated.AmountConverted.StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_CategoryChangeKeepsFrozenConversion() {
	ctx := context.Background()
	frozen := decimal.RequireFromString("133333.33")
	krw := domain.CurrencyKRW
	method := domain.PaymentCard
	existing := &domain.LedgerEntry{
		EntryID:               "entry-1",
		UserID:                suite.userID,
		EntryType:             domain.EntryExpense,
		Date:                  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PaymentMethod:         &method,
		Category:              domain.CategoryFood,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          domain.CurrencyUSD,
		AmountConverted:       &frozen,
		ConvertedCurrencyCode: &krw,
	}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(existing, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	newCategory := "TRAVEL"
	updated, err := suite.service.UpdateEntry(ctx, suite.userID, "entry-1", dto.UpdateLedgerEntryRequest{
		Category: &newCategory,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.AmountConverted)
	suite.Equal("133333.33", updated.AmountConverted.StringFixed(2))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "GetRate")
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_OtherUsersEntryForbidden() {
	ctx := context.Background()
	existing := &domain.LedgerEntry{
		EntryID: "entry-1",
		UserID:  uuid.NewString(),
	}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(existing, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, "entry-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DeleteEntry")
}

func (suite *LedgerServiceTestSuite) entryOn(date string, category domain.Category) domain.LedgerEntry {
	day, err := time.Parse("2006-01-02", date)
	suite.Require().NoError(err)
	method := domain.PaymentCard
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		UserID:        suite.userID,
		EntryType:     domain.EntryExpense,
		Date:          day,
		PaymentMethod: &method,
		Category:      category,
		Amount:        decimal.NewFromInt(1000),
		CurrencyCode:  domain.CurrencyKRW,
	}
}

func (suite *LedgerServiceTestSuite) TestListByDate_GroupsByMonthThenDay() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		suite.entryOn("2026-04-10", domain.CategoryFood),
		suite.entryOn("2026-04-10", domain.CategoryTransport),
		suite.entryOn("2026-04-02", domain.CategoryFood),
		suite.entryOn("2026-03-28", domain.CategoryTravel),
	}
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.userID, mock.Anything).Return(entries, nil).Once()

	months, err := suite.service.ListByDate(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(months, 2)
	suite.Equal(time.Month(4), months[0].Month.Month())
	suite.Require().Len(months[0].Days, 2)
	suite.Len(months[0].Days[0].Entries, 2)
	suite.Len(months[0].Days[1].Entries, 1)
	suite.Equal(time.Month(3), months[1].Month.Month())
}

func (suite *LedgerServiceTestSuite) TestListByCategory_FixedCategoryOrder() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		suite.entryOn("2026-04-10", domain.CategoryOther),
		suite.entryOn("2026-04-08", domain.CategoryFood),
		suite.entryOn("2026-04-05", domain.CategoryOther),
	}
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.userID, mock.Anything).Return(entries, nil).Once()

	months, err := suite.service.ListByCategory(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(months, 1)
	suite.Require().Len(months[0].Categories, 2)
	suite.Equal(domain.CategoryFood, months[0].Categories[0].Category)
	suite.Equal(domain.CategoryOther, months[0].Categories[1].Category)
	suite.Len(months[0].Categories[1].Entries, 2)
}

func (suite *LedgerServiceTestSuite) TestThisMonthSummary_UsesFrozenConversions() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")

	frozenExpense := decimal.RequireFromString("133333.33")
	krw := domain.CurrencyKRW
	frozenIncome := decimal.RequireFromString("7.50")
	usd := domain.CurrencyUSD
	method := domain.PaymentCard
	entries := []domain.LedgerEntry{
		{
			EntryType:             domain.EntryExpense,
			Date:                  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod:         &method,
			Category:              domain.CategoryFood,
			Amount:                decimal.NewFromInt(100),
			CurrencyCode:          domain.CurrencyUSD,
			AmountConverted:       &frozenExpense,
			ConvertedCurrencyCode: &krw,
		},
		{
			EntryType:             domain.EntryIncome,
			Date:                  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			Category:              domain.CategoryAllowance,
			Amount:                decimal.NewFromInt(10000),
			CurrencyCode:          domain.CurrencyKRW,
			AmountConverted:       &frozenIncome,
			ConvertedCurrencyCode: &usd,
		},
	}
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.userID, mock.Anything).Return(entries, nil).Once()

	totals, err := suite.service.ThisMonthSummary(ctx, suite.userID, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyUSD, totals.ForeignCurrency)
	suite.Equal("133333.33", totals.ExpenseKRW.StringFixed(2))
	suite.Equal("100.00", totals.ExpenseForeign.StringFixed(2))
	suite.Equal("10000.00", totals.IncomeKRW.StringFixed(2))
	suite.Equal("7.50", totals.IncomeForeign.StringFixed(2))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "GetRate")
}

func (suite *LedgerServiceTestSuite) TestLivingExpenseSummary_SkipsUnavailableAndAverages() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")
	suite.stubRate(domain.CurrencyUSD, "0.00075")
	suite.mockRateRepo.On("GetRate", mock.Anything, domain.CurrencyTWD).Return(nil, apperrors.ErrNotFound)

	method := domain.PaymentCard
	entries := []domain.LedgerEntry{
		{
			EntryType:     domain.EntryExpense,
			Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: &method,
			Category:      domain.CategoryFood,
			Amount:        decimal.NewFromInt(60),
			CurrencyCode:  domain.CurrencyUSD,
		},
		{
			EntryType:     domain.EntryExpense,
			Date:          time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			PaymentMethod: &method,
			Category:      domain.CategoryFood,
			Amount:        decimal.NewFromInt(500),
			CurrencyCode:  domain.CurrencyTWD,
		},
	}
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.userID, mock.Anything).Return(entries, nil).Once()

	summary, err := suite.service.LivingExpenseSummary(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(6, summary.Months)
	suite.Equal("80000.00", summary.TotalKRW.StringFixed(2))
	suite.Equal("60.00", summary.TotalForeign.StringFixed(2))
	suite.Equal("13333.33", summary.AvgMonthlyKRW.StringFixed(2))
	suite.Equal("10.00", summary.AvgMonthlyForeign.StringFixed(2))
	suite.Require().Len(summary.Categories, len(domain.LivingCategories))
	suite.Equal("80000.00", summary.Categories[0].CurrentKRW.StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestMonthDashboard_LimitsToCalendarMonth() {
	ctx := context.Background()
	suite.stubProfile("미국", "6개월")
	suite.stubRate(domain.CurrencyUSD, "0.00075")

	method := domain.PaymentCard
	entries := []domain.LedgerEntry{
		{
			EntryType:     domain.EntryExpense,
			Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: &method,
			Category:      domain.CategoryFood,
			Amount:        decimal.NewFromInt(60),
			CurrencyCode:  domain.CurrencyUSD,
		},
	}
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.userID, mock.MatchedBy(func(filter portsrepo.LedgerEntryFilter) bool {
		if filter.DateFrom == nil || filter.DateTo == nil {
			return false
		}
		return filter.DateFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			filter.DateTo.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	})).Return(entries, nil).Once()

	dashboard, err := suite.service.MonthDashboard(ctx, suite.userID, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(time.Month(3), dashboard.Month.Month())
	suite.Equal(domain.CurrencyUSD, dashboard.ForeignCurrency)
	suite.Equal("80000.00", dashboard.LivingExpenseKRW.StringFixed(2))
	suite.Require().Len(dashboard.Categories, len(domain.LivingCategories))
	suite.Equal("80000.00", dashboard.Categories[0].CurrentKRW.StringFixed(2))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
