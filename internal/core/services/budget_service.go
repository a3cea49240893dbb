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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService provides business logic for dispatch and living budgets.
type BudgetService struct {
	BaseService
	budgetRepo  portsrepo.BudgetRepositoryFacade
	profileRepo portsrepo.ProfileReader
	converter   portssvc.ConverterSvc
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, profileRepo portsrepo.ProfileReader, converter portssvc.ConverterSvc) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		profileRepo: profileRepo,
		converter:   converter,
	}
}

// validateDispatchItems checks the submission against the required item-type
// set and reports exactly which types are missing or unexpected.
func validateDispatchItems(items []dto.DispatchItemRequest) error {
	seen := make(map[domain.DispatchItemType]bool, len(items))
	for _, item := range items {
		itemType := domain.DispatchItemType(item.Type)
		if !itemType.IsValid() {
			return fmt.Errorf("%w: unknown dispatch item type '%s'", apperrors.ErrValidation, item.Type)
		}
		if seen[itemType] {
			return fmt.Errorf("%w: duplicate dispatch item type '%s'", apperrors.ErrValidation, item.Type)
		}
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: amount for '%s' must not be negative", apperrors.ErrValidation, item.Type)
		}
		seen[itemType] = true
	}
	var missing []string
	for _, required := range domain.RequiredDispatchItemTypes {
		if !seen[required] {
			missing = append(missing, string(required))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing dispatch item types %v", apperrors.ErrValidation, missing)
	}
	return nil
}

// SaveDispatchBudget replaces the user's dispatch budget wholesale. Every
// item's KRW conversion is recomputed from the current rate table; an item
// whose currency has no rate on record is stored with a zero conversion so a
// stale feed never blocks the save.
func (s *BudgetService) SaveDispatchBudget(ctx context.Context, userID string, req dto.SaveDispatchBudgetRequest) (*domain.DispatchBudget, error) {
	if err := validateDispatchItems(req.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	budget := domain.DispatchBudget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if existing, err := s.budgetRepo.FindDispatchBudgetByUserID(ctx, userID); err == nil {
		budget.BudgetID = existing.BudgetID
		budget.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load dispatch budget: %w", err)
	}

	budget.Items = make([]domain.DispatchItem, len(req.Items))
	for i, itemReq := range req.Items {
		currency := domain.NormalizeCurrencyCode(itemReq.CurrencyCode)
		if !currency.IsSupported() {
			return nil, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, itemReq.CurrencyCode)
		}
		exchangeAmount, err := s.converter.ToKRW(ctx, itemReq.Amount, currency)
		if err != nil {
			if !errors.Is(err, apperrors.ErrRateUnavailable) {
				return nil, err
			}
			s.LogDebug(ctx, "storing dispatch item without KRW conversion",
				slog.String("type", itemReq.Type),
				slog.String("currency", currency.String()))
			exchangeAmount = decimal.Zero
		}
		budget.Items[i] = domain.DispatchItem{
			ItemID:         uuid.NewString(),
			Type:           domain.DispatchItemType(itemReq.Type),
			Amount:         itemReq.Amount,
			CurrencyCode:   currency,
			ExchangeAmount: exchangeAmount,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}

	if err := s.budgetRepo.SaveDispatchBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save dispatch budget: %w", err)
	}
	return &budget, nil
}

// GetDispatchBudget returns the user's dispatch budget with the KRW
// conversions stored at the last save.
func (s *BudgetService) GetDispatchBudget(ctx context.Context, userID string) (*domain.DispatchBudget, error) {
	budget, err := s.budgetRepo.FindDispatchBudgetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// SaveLivingBudget replaces the user's monthly living budget wholesale. All
// amounts are KRW. An item carrying a custom name is stored under the OTHER
// type regardless of what the client sent.
func (s *BudgetService) SaveLivingBudget(ctx context.Context, userID string, req dto.SaveLivingBudgetRequest) (*domain.LivingBudget, error) {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.LivingBudget{
		BudgetID:    uuid.NewString(),
		UserID:      userID,
		TotalAmount: req.TotalAmount,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if existing, err := s.budgetRepo.FindLivingBudgetByUserID(ctx, userID); err == nil {
		budget.BudgetID = existing.BudgetID
		budget.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load living budget: %w", err)
	}

	budget.Items = make([]domain.LivingItem, len(req.Items))
	for i, itemReq := range req.Items {
		itemType := domain.LivingItemType(itemReq.Type)
		if itemReq.CustomName != "" {
			itemType = domain.LivingOther
		}
		if !itemType.IsValid() {
			return nil, fmt.Errorf("%w: unknown living item type '%s'", apperrors.ErrValidation, itemReq.Type)
		}
		if itemReq.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: item amount must not be negative", apperrors.ErrValidation)
		}
		budget.Items[i] = domain.LivingItem{
			ItemID:     uuid.NewString(),
			Type:       itemType,
			CustomName: itemReq.CustomName,
			Amount:     itemReq.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}

	if err := s.budgetRepo.SaveLivingBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save living budget: %w", err)
	}
	return &budget, nil
}

// GetLivingBudget returns the user's living budget.
func (s *BudgetService) GetLivingBudget(ctx context.Context, userID string) (*domain.LivingBudget, error) {
	budget, err := s.budgetRepo.FindLivingBudgetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// Projection combines both budgets into the projected cost of the whole
// exchange: the dispatch total plus the monthly living plan scaled by the
// period's month count. A missing budget contributes zero.
func (s *BudgetService) Projection(ctx context.Context, userID string) (*domain.BudgetProjection, error) {
	projection := &domain.BudgetProjection{
		DispatchTotalKRW: decimal.Zero,
		MonthlyLivingKRW: decimal.Zero,
		Months:           1,
	}

	dispatch, err := s.budgetRepo.FindDispatchBudgetByUserID(ctx, userID)
	if err == nil {
		projection.DispatchTotalKRW = dispatch.TotalKRW()
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load dispatch budget: %w", err)
	}

	living, err := s.budgetRepo.FindLivingBudgetByUserID(ctx, userID)
	if err == nil {
		projection.MonthlyLivingKRW = living.TotalAmount
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load living budget: %w", err)
	}

	if profile, err := s.profileRepo.FindExchangeProfileByUserID(ctx, userID); err == nil {
		projection.Months = domain.MonthsInPeriod(profile.ExchangePeriod)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load exchange profile: %w", err)
	}

	monthsDec := decimal.NewFromInt(int64(projection.Months))
	projection.ProjectedKRW = projection.DispatchTotalKRW.Add(projection.MonthlyLivingKRW.Mul(monthsDec))
	return projection, nil
}
