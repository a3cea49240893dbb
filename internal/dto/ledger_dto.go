package dto

import (
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest is the payload for recording a ledger entry.
// Date uses the YYYY-MM-DD calendar form; amounts are decimal strings or
// numbers, parsed without float intermediates.
type CreateLedgerEntryRequest struct {
	EntryType     string          `json:"entryType" binding:"required,oneof=EXPENSE INCOME"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMethod *string         `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD"`
	Category      string          `json:"category" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required"`
}

// UpdateLedgerEntryRequest is a partial update; nil fields keep their value.
type UpdateLedgerEntryRequest struct {
	EntryType     *string          `json:"entryType" binding:"omitempty,oneof=EXPENSE INCOME"`
	Date          *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string          `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD"`
	Category      *string          `json:"category"`
	Amount        *decimal.Decimal `json:"amount"`
	CurrencyCode  *string          `json:"currencyCode"`
}

// LedgerEntryResponse is the wire shape of one ledger entry. The frozen
// conversion is echoed when present.
type LedgerEntryResponse struct {
	EntryID         string  `json:"entryID"`
	EntryType       string  `json:"entryType"`
	Date            string  `json:"date"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	Category        string  `json:"category"`
	CategoryLabel   string  `json:"categoryLabel"`
	Amount          Money   `json:"amount"`
	AmountConverted *Money  `json:"amountConverted,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain entry to its DTO.
func ToLedgerEntryResponse(entry *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		EntryID:       entry.EntryID,
		EntryType:     string(entry.EntryType),
		Date:          entry.Date.Format("2006-01-02"),
		Category:      string(entry.Category),
		CategoryLabel: entry.Category.Label(),
		Amount:        NewMoney(entry.Amount, entry.CurrencyCode),
		CreatedAt:     entry.CreatedAt,
	}
	if entry.PaymentMethod != nil {
		method := string(*entry.PaymentMethod)
		resp.PaymentMethod = &method
	}
	if entry.AmountConverted != nil && entry.ConvertedCurrencyCode != nil {
		converted := NewMoney(*entry.AmountConverted, *entry.ConvertedCurrencyCode)
		resp.AmountConverted = &converted
	}
	return resp
}

func toLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

var weekdayKorean = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// DayBlockResponse is one day of the chronological ledger view.
type DayBlockResponse struct {
	Date      string                `json:"date"`
	WeekdayKo string                `json:"weekdayKo"`
	Items     []LedgerEntryResponse `json:"items"`
}

// MonthBlockResponse is one month of the chronological ledger view.
type MonthBlockResponse struct {
	Month string             `json:"month"`
	Days  []DayBlockResponse `json:"days"`
}

// ToMonthBlockResponses converts the month/day grouping to DTOs.
func ToMonthBlockResponses(months []domain.MonthGroup) []MonthBlockResponse {
	blocks := make([]MonthBlockResponse, len(months))
	for i, month := range months {
		days := make([]DayBlockResponse, len(month.Days))
		for j, day := range month.Days {
			days[j] = DayBlockResponse{
				Date:      day.Date.Format("2006-01-02"),
				WeekdayKo: weekdayKorean[day.Date.Weekday()],
				Items:     toLedgerEntryResponses(day.Entries),
			}
		}
		blocks[i] = MonthBlockResponse{
			Month: month.Month.Format("2006-01"),
			Days:  days,
		}
	}
	return blocks
}

// CategoryBlockResponse is one category bucket of a month.
type CategoryBlockResponse struct {
	Code  string                `json:"code"`
	Label string                `json:"label"`
	Items []LedgerEntryResponse `json:"items"`
}

// MonthCategoryBlockResponse is one month of the category-grouped view.
type MonthCategoryBlockResponse struct {
	Month      string                  `json:"month"`
	Categories []CategoryBlockResponse `json:"categories"`
}

// ToMonthCategoryBlockResponses converts the month/category grouping to DTOs.
func ToMonthCategoryBlockResponses(months []domain.MonthCategoryGroup) []MonthCategoryBlockResponse {
	blocks := make([]MonthCategoryBlockResponse, len(months))
	for i, month := range months {
		categories := make([]CategoryBlockResponse, len(month.Categories))
		for j, group := range month.Categories {
			categories[j] = CategoryBlockResponse{
				Code:  string(group.Category),
				Label: group.Category.Label(),
				Items: toLedgerEntryResponses(group.Entries),
			}
		}
		blocks[i] = MonthCategoryBlockResponse{
			Month:      month.Month.Format("2006-01"),
			Categories: categories,
		}
	}
	return blocks
}

// ThisMonthSummaryResponse is the current month's income/expense roll-up in
// both currencies.
type ThisMonthSummaryResponse struct {
	Month          string `json:"month"`
	IncomeKRW      Money  `json:"incomeKrw"`
	IncomeForeign  Money  `json:"incomeForeign"`
	ExpenseKRW     Money  `json:"expenseKrw"`
	ExpenseForeign Money  `json:"expenseForeign"`
}

// ToThisMonthSummaryResponse converts the monthly totals to their DTO.
func ToThisMonthSummaryResponse(totals *domain.MonthlyTotals) ThisMonthSummaryResponse {
	return ThisMonthSummaryResponse{
		Month:          totals.Month.Format("2006-01"),
		IncomeKRW:      NewMoney(totals.IncomeKRW, domain.CurrencyKRW),
		IncomeForeign:  NewMoney(totals.IncomeForeign, totals.ForeignCurrency),
		ExpenseKRW:     NewMoney(totals.ExpenseKRW, domain.CurrencyKRW),
		ExpenseForeign: NewMoney(totals.ExpenseForeign, totals.ForeignCurrency),
	}
}

// CategorySummaryResponse is the dual-currency total of one category.
type CategorySummaryResponse struct {
	Code           string `json:"code"`
	Label          string `json:"label"`
	KRWAmount      Money  `json:"krwAmount"`
	ForeignAmount  Money  `json:"foreignAmount"`
	CurrentRateKRW Money  `json:"currentRateKrwAmount"`
}

// ToCategorySummaryResponses converts category aggregates to DTOs. Frozen
// figures are shown as the stored KRW/foreign amounts; the current-rate KRW
// figure rides alongside.
func ToCategorySummaryResponses(aggregates []domain.CategoryAggregate) []CategorySummaryResponse {
	responses := make([]CategorySummaryResponse, len(aggregates))
	for i, agg := range aggregates {
		responses[i] = CategorySummaryResponse{
			Code:           string(agg.Category),
			Label:          agg.Category.Label(),
			KRWAmount:      NewMoney(agg.FrozenKRW, domain.CurrencyKRW),
			ForeignAmount:  NewMoney(agg.FrozenForeign, agg.ForeignCurrency),
			CurrentRateKRW: NewMoney(agg.CurrentKRW, domain.CurrencyKRW),
		}
	}
	return responses
}

// LedgerSummaryResponse is the full living-expense summary payload.
type LedgerSummaryResponse struct {
	AverageMonthlyLivingExpenseKRW     Money                     `json:"averageMonthlyLivingExpenseKrw"`
	AverageMonthlyLivingExpenseForeign Money                     `json:"averageMonthlyLivingExpenseForeign"`
	Months                             int                       `json:"months"`
	Categories                         []CategorySummaryResponse `json:"categories"`
	BaseDispatchCost                   Money                     `json:"baseDispatchCost"`
}

// ToLedgerSummaryResponse converts the living-expense summary together with
// the dispatch total into the summary payload.
func ToLedgerSummaryResponse(summary *domain.LivingExpenseSummary, dispatchKRW decimal.Decimal) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		AverageMonthlyLivingExpenseKRW:     NewMoney(summary.AvgMonthlyKRW, domain.CurrencyKRW),
		AverageMonthlyLivingExpenseForeign: NewMoney(summary.AvgMonthlyForeign, summary.ForeignCurrency),
		Months:                             summary.Months,
		Categories:                         ToCategorySummaryResponses(summary.Categories),
		BaseDispatchCost:                   NewMoney(dispatchKRW, domain.CurrencyKRW),
	}
}

// MonthlyDashboardResponse is the per-month dashboard payload.
type MonthlyDashboardResponse struct {
	Month                   string                    `json:"month"`
	LivingExpense           Money                     `json:"livingExpense"`
	LivingExpenseBudgetDiff Money                     `json:"livingExpenseBudgetDiff"`
	Categories              []CategorySummaryResponse `json:"categories"`
	BaseDispatchCost        Money                     `json:"baseDispatchCost"`
}

// ToMonthlyDashboardResponse converts the month dashboard plus the budget
// figures into the dashboard payload. The diff is budget minus spend, so
// overspending goes negative.
func ToMonthlyDashboardResponse(dashboard *domain.MonthDashboard, livingBudgetKRW, dispatchKRW decimal.Decimal) MonthlyDashboardResponse {
	return MonthlyDashboardResponse{
		Month:                   dashboard.Month.Format("2006-01"),
		LivingExpense:           NewMoney(dashboard.LivingExpenseKRW, domain.CurrencyKRW),
		LivingExpenseBudgetDiff: NewMoney(livingBudgetKRW.Sub(dashboard.LivingExpenseKRW), domain.CurrencyKRW),
		Categories:              ToCategorySummaryResponses(dashboard.Categories),
		BaseDispatchCost:        NewMoney(dispatchKRW, domain.CurrencyKRW),
	}
}
