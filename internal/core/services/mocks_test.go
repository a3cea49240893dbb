package services_test

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateRepository ---

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) GetRate(ctx context.Context, currency domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, userID string, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindDispatchBudgetByUserID(ctx context.Context, userID string) (*domain.DispatchBudget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchBudget), args.Error(1)
}

func (m *MockBudgetRepository) FindLivingBudgetByUserID(ctx context.Context, userID string) (*domain.LivingBudget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LivingBudget), args.Error(1)
}

func (m *MockBudgetRepository) SaveDispatchBudget(ctx context.Context, budget domain.DispatchBudget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) SaveLivingBudget(ctx context.Context, budget domain.LivingBudget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// --- Mock SnapshotRepository ---

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) FindSnapshotByID(ctx context.Context, snapshotID int64) (*domain.FeedSnapshot, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListLatestSnapshots(ctx context.Context, filter portsrepo.FeedFilter) ([]domain.FeedSnapshot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshotsByUserID(ctx context.Context, userID string) ([]domain.Snapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) SaveDetailProfileAndSnapshot(ctx context.Context, profile domain.DetailProfile, snapshot domain.Snapshot) (int64, error) {
	args := m.Called(ctx, profile, snapshot)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSnapshotRepository) FindDetailProfileByUserID(ctx context.Context, userID string) (*domain.DetailProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailProfile), args.Error(1)
}

// --- Mock FeedInteractionRepository ---

type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) SaveFavorite(ctx context.Context, favorite domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFeedRepository) DeleteFavorite(ctx context.Context, userID string, snapshotID int64) error {
	args := m.Called(ctx, userID, snapshotID)
	return args.Error(0)
}

func (m *MockFeedRepository) SaveScrap(ctx context.Context, scrap domain.Scrap) error {
	args := m.Called(ctx, scrap)
	return args.Error(0)
}

func (m *MockFeedRepository) DeleteScrap(ctx context.Context, userID string, snapshotID int64) error {
	args := m.Called(ctx, userID, snapshotID)
	return args.Error(0)
}

func (m *MockFeedRepository) HasFavorite(ctx context.Context, userID string, snapshotID int64) (bool, error) {
	args := m.Called(ctx, userID, snapshotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedRepository) HasScrap(ctx context.Context, userID string, snapshotID int64) (bool, error) {
	args := m.Called(ctx, userID, snapshotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedRepository) ListScrappedSnapshots(ctx context.Context, userID string) ([]domain.FeedSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedSnapshot), args.Error(1)
}

func (m *MockFeedRepository) CountInteractionsByUserID(ctx context.Context, userID string) (portsrepo.InteractionCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(portsrepo.InteractionCounts), args.Error(1)
}

// --- Mock ProfileReader ---

type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileReader) FindExchangeProfileByUserID(ctx context.Context, userID string) (*domain.ExchangeProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeProfile), args.Error(1)
}
