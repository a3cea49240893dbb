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

// LedgerService provides business logic for ledger entries and their
// aggregations.
type LedgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	profileRepo portsrepo.ProfileReader
	converter   portssvc.ConverterSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, profileRepo portsrepo.ProfileReader, converter portssvc.ConverterSvc) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		profileRepo: profileRepo,
		converter:   converter,
	}
}

// exchangeCurrency resolves the user's exchange-country currency, falling
// back to KRW when no exchange profile exists yet.
func (s *LedgerService) exchangeCurrency(ctx context.Context, userID string) (domain.CurrencyCode, error) {
	profile, err := s.profileRepo.FindExchangeProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.CurrencyKRW, nil
		}
		return domain.CurrencyKRW, fmt.Errorf("failed to load exchange profile: %w", err)
	}
	return domain.CurrencyForCountry(profile.ExchangeCountry), nil
}

// freezeConversion computes the conversion that gets stored alongside an
// entry at write time: a foreign amount is frozen as KRW, a KRW amount is
// frozen as the user's exchange-country currency. When the needed rate is
// missing the entry is stored without a frozen conversion.
func (s *LedgerService) freezeConversion(ctx context.Context, entry *domain.LedgerEntry, exchangeCur domain.CurrencyCode) {
	entry.AmountConverted = nil
	entry.ConvertedCurrencyCode = nil

	var (
		converted decimal.Decimal
		target    domain.CurrencyCode
		err       error
	)
	if entry.CurrencyCode.IsKRW() {
		if exchangeCur.IsKRW() {
			return
		}
		target = exchangeCur
		converted, err = s.converter.FromKRW(ctx, entry.Amount, exchangeCur)
	} else {
		target = domain.CurrencyKRW
		converted, err = s.converter.ToKRW(ctx, entry.Amount, entry.CurrencyCode)
	}
	if err != nil {
		s.LogDebug(ctx, "storing entry without frozen conversion",
			slog.String("entry_id", entry.EntryID),
			slog.String("currency", entry.CurrencyCode.String()),
			slog.String("error", err.Error()))
		return
	}
	entry.AmountConverted = &converted
	entry.ConvertedCurrencyCode = &target
}

func validateEntry(entryType domain.EntryType, paymentMethod *domain.PaymentMethod, category domain.Category, amount decimal.Decimal, currency domain.CurrencyCode) error {
	if !entryType.IsValid() {
		return fmt.Errorf("%w: invalid entry type '%s'", apperrors.ErrValidation, entryType)
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: invalid category '%s'", apperrors.ErrValidation, category)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !currency.IsSupported() {
		return fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, currency)
	}
	switch entryType {
	case domain.EntryExpense:
		if paymentMethod == nil {
			return fmt.Errorf("%w: payment method is required for expenses", apperrors.ErrValidation)
		}
		if !paymentMethod.IsValid() {
			return fmt.Errorf("%w: invalid payment method '%s'", apperrors.ErrValidation, *paymentMethod)
		}
	case domain.EntryIncome:
		if paymentMethod != nil {
			return fmt.Errorf("%w: payment method must be absent for income", apperrors.ErrValidation)
		}
	}
	return nil
}

// CreateEntry records a new ledger entry, freezing its conversion at the
// current rate.
func (s *LedgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date '%s'", apperrors.ErrValidation, req.Date)
	}

	entry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		UserID:       userID,
		EntryType:    domain.EntryType(req.EntryType),
		Date:         date,
		Category:     domain.Category(req.Category),
		Amount:       req.Amount,
		CurrencyCode: domain.NormalizeCurrencyCode(req.CurrencyCode),
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		entry.PaymentMethod = &method
	}

	if err := validateEntry(entry.EntryType, entry.PaymentMethod, entry.Category, entry.Amount, entry.CurrencyCode); err != nil {
		return nil, err
	}

	exchangeCur, err := s.exchangeCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.freezeConversion(ctx, &entry, exchangeCur)

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry applies a partial update. Changing the amount or currency
// re-freezes the conversion at the current rate; other edits leave the
// stored conversion untouched.
func (s *LedgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("%w: entry belongs to another user", apperrors.ErrForbidden)
	}

	refreeze := false
	if req.EntryType != nil {
		entry.EntryType = domain.EntryType(*req.EntryType)
		if entry.EntryType == domain.EntryIncome {
			entry.PaymentMethod = nil
		}
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date '%s'", apperrors.ErrValidation, *req.Date)
		}
		entry.Date = date
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		entry.PaymentMethod = &method
	}
	if req.Category != nil {
		entry.Category = domain.Category(*req.Category)
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
		refreeze = true
	}
	if req.CurrencyCode != nil {
		entry.CurrencyCode = domain.NormalizeCurrencyCode(*req.CurrencyCode)
		refreeze = true
	}

	if err := validateEntry(entry.EntryType, entry.PaymentMethod, entry.Category, entry.Amount, entry.CurrencyCode); err != nil {
		return nil, err
	}

	if refreeze {
		exchangeCur, err := s.exchangeCurrency(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.freezeConversion(ctx, entry, exchangeCur)
	}

	entry.UpdatedAt = time.Now()
	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to update ledger entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes an entry owned by the user.
func (s *LedgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return fmt.Errorf("%w: entry belongs to another user", apperrors.ErrForbidden)
	}
	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

// ListByDate groups the user's entries by month then day, newest first.
// Repository ordering (date desc, created desc) is preserved inside buckets.
func (s *LedgerService) ListByDate(ctx context.Context, userID string) ([]domain.MonthGroup, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, userID, portsrepo.LedgerEntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	months := []domain.MonthGroup{}
	for _, entry := range entries {
		monthKey := entry.MonthKey()
		if len(months) == 0 || !months[len(months)-1].Month.Equal(monthKey) {
			months = append(months, domain.MonthGroup{Month: monthKey})
		}
		month := &months[len(months)-1]

		dayKey := entry.DayKey()
		if len(month.Days) == 0 || !month.Days[len(month.Days)-1].Date.Equal(dayKey) {
			month.Days = append(month.Days, domain.DayGroup{Date: dayKey})
		}
		day := &month.Days[len(month.Days)-1]
		day.Entries = append(day.Entries, entry)
	}
	return months, nil
}

// ListByCategory groups the user's entries by month (newest first) and, within
// a month, by category in the fixed display order. Empty categories are
// omitted.
func (s *LedgerService) ListByCategory(ctx context.Context, userID string) ([]domain.MonthCategoryGroup, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, userID, portsrepo.LedgerEntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	type monthBucket struct {
		month      time.Time
		byCategory map[domain.Category][]domain.LedgerEntry
	}
	buckets := []*monthBucket{}
	for _, entry := range entries {
		monthKey := entry.MonthKey()
		if len(buckets) == 0 || !buckets[len(buckets)-1].month.Equal(monthKey) {
			buckets = append(buckets, &monthBucket{
				month:      monthKey,
				byCategory: make(map[domain.Category][]domain.LedgerEntry),
			})
		}
		bucket := buckets[len(buckets)-1]
		bucket.byCategory[entry.Category] = append(bucket.byCategory[entry.Category], entry)
	}

	groups := make([]domain.MonthCategoryGroup, 0, len(buckets))
	for _, bucket := range buckets {
		group := domain.MonthCategoryGroup{Month: bucket.month}
		for _, category := range domain.CategoryOrder {
			if items, ok := bucket.byCategory[category]; ok {
				group.Categories = append(group.Categories, domain.CategoryGroup{
					Category: category,
					Entries:  items,
				})
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// frozenKRW values an entry in KRW, preferring the conversion frozen at write
// time over the current rate. The bool is false when no valuation is
// possible, which callers treat as "skip this line item".
func (s *LedgerService) frozenKRW(ctx context.Context, entry domain.LedgerEntry) (decimal.Decimal, bool) {
	if entry.CurrencyCode.IsKRW() {
		return entry.Amount, true
	}
	if entry.AmountConverted != nil && entry.ConvertedCurrencyCode != nil && entry.ConvertedCurrencyCode.IsKRW() {
		return *entry.AmountConverted, true
	}
	return s.currentKRW(ctx, entry)
}

// frozenForeign values an entry in the exchange-country currency the same
// way, preferring the stored conversion when its currency matches.
func (s *LedgerService) frozenForeign(ctx context.Context, entry domain.LedgerEntry, foreign domain.CurrencyCode) (decimal.Decimal, bool) {
	if entry.CurrencyCode == foreign {
		return entry.Amount, true
	}
	if entry.AmountConverted != nil && entry.ConvertedCurrencyCode != nil && *entry.ConvertedCurrencyCode == foreign {
		return *entry.AmountConverted, true
	}
	krw, ok := s.frozenKRW(ctx, entry)
	if !ok {
		return decimal.Zero, false
	}
	converted, err := s.converter.FromKRW(ctx, krw, foreign)
	if err != nil {
		return decimal.Zero, false
	}
	return converted, true
}

// currentKRW values an entry in KRW at the latest rate, ignoring the frozen
// conversion.
func (s *LedgerService) currentKRW(ctx context.Context, entry domain.LedgerEntry) (decimal.Decimal, bool) {
	converted, err := s.converter.ToKRW(ctx, entry.Amount, entry.CurrencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			s.LogError(ctx, err, "conversion failed, skipping entry", slog.String("entry_id", entry.EntryID))
		}
		return decimal.Zero, false
	}
	return converted, true
}

func (s *LedgerService) currentForeign(ctx context.Context, entry domain.LedgerEntry, foreign domain.CurrencyCode) (decimal.Decimal, bool) {
	if entry.CurrencyCode == foreign {
		return entry.Amount, true
	}
	krw, ok := s.currentKRW(ctx, entry)
	if !ok {
		return decimal.Zero, false
	}
	converted, err := s.converter.FromKRW(ctx, krw, foreign)
	if err != nil {
		return decimal.Zero, false
	}
	return converted, true
}

// ThisMonthSummary totals the month containing today, income and expenses
// separately, in KRW and the exchange-country currency. Entries that cannot
// be valued on one side are skipped on that side only.
func (s *LedgerService) ThisMonthSummary(ctx context.Context, userID string, today time.Time) (*domain.MonthlyTotals, error) {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	entries, err := s.ledgerRepo.ListEntries(ctx, userID, portsrepo.LedgerEntryFilter{
		DateFrom: &monthStart,
		DateTo:   &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	foreign, err := s.exchangeCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := &domain.MonthlyTotals{
		Month:           monthStart,
		ForeignCurrency: foreign,
	}
	for _, entry := range entries {
		krw, okKRW := s.frozenKRW(ctx, entry)
		fgn, okFgn := s.frozenForeign(ctx, entry, foreign)
		switch entry.EntryType {
		case domain.EntryIncome:
			if okKRW {
				totals.IncomeKRW = totals.IncomeKRW.Add(krw)
			}
			if okFgn {
				totals.IncomeForeign = totals.IncomeForeign.Add(fgn)
			}
		case domain.EntryExpense:
			if okKRW {
				totals.ExpenseKRW = totals.ExpenseKRW.Add(krw)
			}
			if okFgn {
				totals.ExpenseForeign = totals.ExpenseForeign.Add(fgn)
			}
		}
	}
	return totals, nil
}

// LivingExpenseSummary aggregates every expense in the living categories,
// per category and in total, with both frozen and current-rate figures.
// Monthly averages divide the current-rate totals by the exchange period's
// month count.
func (s *LedgerService) LivingExpenseSummary(ctx context.Context, userID string) (*domain.LivingExpenseSummary, error) {
	expense := domain.EntryExpense
	entries, err := s.ledgerRepo.ListEntries(ctx, userID, portsrepo.LedgerEntryFilter{
		EntryType:  &expense,
		Categories: domain.LivingCategories,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	foreign, err := s.exchangeCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	months := 1
	if profile, err := s.profileRepo.FindExchangeProfileByUserID(ctx, userID); err == nil {
		months = domain.MonthsInPeriod(profile.ExchangePeriod)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load exchange profile: %w", err)
	}

	categories, totalKRW, totalForeign := s.aggregateLivingCategories(ctx, entries, foreign)

	summary := &domain.LivingExpenseSummary{
		ForeignCurrency: foreign,
		Months:          months,
		TotalKRW:        totalKRW,
		TotalForeign:    totalForeign,
		Categories:      categories,
	}
	monthsDec := decimal.NewFromInt(int64(months))
	summary.AvgMonthlyKRW = summary.TotalKRW.DivRound(monthsDec, 2)
	summary.AvgMonthlyForeign = summary.TotalForeign.DivRound(monthsDec, 2)
	return summary, nil
}

// MonthDashboard aggregates the living-category expenses of the month
// containing today, per category, frozen and current figures side by side.
func (s *LedgerService) MonthDashboard(ctx context.Context, userID string, today time.Time) (*domain.MonthDashboard, error) {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	expense := domain.EntryExpense
	entries, err := s.ledgerRepo.ListEntries(ctx, userID, portsrepo.LedgerEntryFilter{
		EntryType:  &expense,
		Categories: domain.LivingCategories,
		DateFrom:   &monthStart,
		DateTo:     &monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	foreign, err := s.exchangeCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, totalKRW, _ := s.aggregateLivingCategories(ctx, entries, foreign)
	return &domain.MonthDashboard{
		Month:            monthStart,
		ForeignCurrency:  foreign,
		LivingExpenseKRW: totalKRW,
		Categories:       categories,
	}, nil
}

// aggregateLivingCategories buckets entries into the fixed living-category
// order and returns the current-rate totals alongside. Entries outside the
// living set are ignored.
func (s *LedgerService) aggregateLivingCategories(ctx context.Context, entries []domain.LedgerEntry, foreign domain.CurrencyCode) ([]domain.CategoryAggregate, decimal.Decimal, decimal.Decimal) {
	byCategory := make(map[domain.Category]*domain.CategoryAggregate)
	for _, category := range domain.LivingCategories {
		byCategory[category] = &domain.CategoryAggregate{
			Category:        category,
			ForeignCurrency: foreign,
		}
	}

	totalKRW := decimal.Zero
	totalForeign := decimal.Zero
	for _, entry := range entries {
		agg, ok := byCategory[entry.Category]
		if !ok {
			continue
		}
		if v, ok := s.frozenKRW(ctx, entry); ok {
			agg.FrozenKRW = agg.FrozenKRW.Add(v)
		}
		if v, ok := s.frozenForeign(ctx, entry, foreign); ok {
			agg.FrozenForeign = agg.FrozenForeign.Add(v)
		}
		if v, ok := s.currentKRW(ctx, entry); ok {
			agg.CurrentKRW = agg.CurrentKRW.Add(v)
			totalKRW = totalKRW.Add(v)
		}
		if v, ok := s.currentForeign(ctx, entry, foreign); ok {
			agg.CurrentForeign = agg.CurrentForeign.Add(v)
			totalForeign = totalForeign.Add(v)
		}
	}

	categories := make([]domain.CategoryAggregate, 0, len(domain.LivingCategories))
	for _, category := range domain.LivingCategories {
		categories = append(categories, *byCategory[category])
	}
	return categories, totalKRW, totalForeign
}
