package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SnapshotService manages the lifestyle questionnaire and publishes immutable
// summary snapshots from it.
type SnapshotService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	profileRepo  portsrepo.ProfileReader
	ledgerSvc    portssvc.LedgerSvcFacade
	budgetSvc    portssvc.BudgetSvcFacade
	converter    portssvc.ConverterSvc
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	snapshotRepo portsrepo.SnapshotRepositoryFacade,
	profileRepo portsrepo.ProfileReader,
	ledgerSvc portssvc.LedgerSvcFacade,
	budgetSvc portssvc.BudgetSvcFacade,
	converter portssvc.ConverterSvc,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		profileRepo:  profileRepo,
		ledgerSvc:    ledgerSvc,
		budgetSvc:    budgetSvc,
		converter:    converter,
	}
}

// GetDetailProfile returns the user's questionnaire.
func (s *SnapshotService) GetDetailProfile(ctx context.Context, userID string) (*domain.DetailProfile, error) {
	profile, err := s.snapshotRepo.FindDetailProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveDetailProfile upserts the questionnaire and publishes a fresh snapshot
// of the user's current totals in the same transaction. Existing snapshots
// are never modified; each save appends a new one.
func (s *SnapshotService) SaveDetailProfile(ctx context.Context, userID string, req dto.SaveDetailProfileRequest) (*domain.Snapshot, error) {
	if req.MonthlySpendInKorea.IsNegative() {
		return nil, fmt.Errorf("%w: monthly spend in Korea must not be negative", apperrors.ErrValidation)
	}

	user, err := s.profileRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Users without an exchange profile can still publish; the snapshot just
	// carries empty exchange fields and KRW as the foreign currency.
	var exchangeProfile domain.ExchangeProfile
	if p, err := s.profileRepo.FindExchangeProfileByUserID(ctx, userID); err == nil {
		exchangeProfile = *p
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load exchange profile: %w", err)
	}
	foreign := domain.CurrencyForCountry(exchangeProfile.ExchangeCountry)

	livingSummary, err := s.ledgerSvc.LivingExpenseSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate living expenses: %w", err)
	}

	dispatchKRW := decimal.Zero
	if budget, err := s.budgetSvc.GetDispatchBudget(ctx, userID); err == nil {
		dispatchKRW = budget.TotalKRW()
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load dispatch budget: %w", err)
	}
	dispatchForeign, err := s.converter.FromKRW(ctx, dispatchKRW, foreign)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			return nil, err
		}
		s.LogDebug(ctx, "publishing snapshot without foreign dispatch figure",
			slog.String("currency", foreign.String()))
		dispatchForeign = decimal.Zero
	}

	now := time.Now()
	profile := domain.DetailProfile{
		UserID:              userID,
		MonthlySpendInKorea: req.MonthlySpendInKorea,
		DineoutPerWeek:      req.DineoutPerWeek,
		CoffeePerWeek:       req.CoffeePerWeek,
		SmokingPerDay:       req.SmokingPerDay,
		DrinkingPerWeek:     req.DrinkingPerWeek,
		ShoppingPerMonth:    req.ShoppingPerMonth,
		CulturePerMonth:     req.CulturePerMonth,
		ResidenceType:       req.ResidenceType,
		Commute:             req.Commute,
		SummaryNote:         req.SummaryNote,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.MealFrequency != nil {
		freq := domain.MealFrequency(*req.MealFrequency)
		if !freq.IsValid() {
			return nil, fmt.Errorf("%w: invalid meal frequency '%s'", apperrors.ErrValidation, *req.MealFrequency)
		}
		profile.MealFrequency = &freq
	}
	if existing, err := s.snapshotRepo.FindDetailProfileByUserID(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load detail profile: %w", err)
	}

	snapshot := domain.Snapshot{
		UserID:            userID,
		Nickname:          user.Nickname,
		GenderLabel:       user.Gender.Label(),
		Country:           exchangeProfile.ExchangeCountry,
		University:        exchangeProfile.ExchangeUnivName,
		ExchangeTypeLabel: exchangeProfile.ExchangeType.Label(),
		ExchangeSemester:  exchangeProfile.ExchangeSemester,
		ExchangePeriod:    exchangeProfile.ExchangePeriod,

		LivingExpenseForeignAmount:   livingSummary.AvgMonthlyForeign,
		LivingExpenseForeignCurrency: foreign,
		LivingExpenseKRWAmount:       livingSummary.AvgMonthlyKRW,
		BaseDispatchForeignAmount:    dispatchForeign,
		BaseDispatchKRWAmount:        dispatchKRW,

		CreatedAt: now,
	}

	snapshotID, err := s.snapshotRepo.SaveDetailProfileAndSnapshot(ctx, profile, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to save detail profile and snapshot: %w", err)
	}
	snapshot.SnapshotID = snapshotID
	return &snapshot, nil
}

// ListMySnapshots returns the user's snapshot history, newest first.
func (s *SnapshotService) ListMySnapshots(ctx context.Context, userID string) ([]domain.Snapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshotsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
