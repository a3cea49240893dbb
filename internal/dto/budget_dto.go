package dto

import (
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DispatchItemRequest is one dispatch-cost line in a budget submission.
type DispatchItemRequest struct {
	Type         string          `json:"type" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required"`
}

// SaveDispatchBudgetRequest replaces the user's dispatch budget. All four
// required item types must be present, nothing else.
type SaveDispatchBudgetRequest struct {
	Items []DispatchItemRequest `json:"items" binding:"required,dive"`
}

// DispatchItemResponse is one stored dispatch-cost item with its KRW
// conversion as of the last save.
type DispatchItemResponse struct {
	ItemID         string `json:"itemID"`
	Type           string `json:"type"`
	Label          string `json:"label"`
	Amount         Money  `json:"amount"`
	ExchangeAmount Money  `json:"exchangeAmount"`
}

// DispatchBudgetResponse is the dispatch budget payload.
type DispatchBudgetResponse struct {
	BudgetID string                 `json:"budgetID"`
	TotalKRW Money                  `json:"totalKrw"`
	Items    []DispatchItemResponse `json:"items"`
}

// ToDispatchBudgetResponse converts a dispatch budget to its DTO.
func ToDispatchBudgetResponse(budget *domain.DispatchBudget) DispatchBudgetResponse {
	items := make([]DispatchItemResponse, len(budget.Items))
	for i, item := range budget.Items {
		items[i] = DispatchItemResponse{
			ItemID:         item.ItemID,
			Type:           string(item.Type),
			Label:          item.Type.Label(),
			Amount:         NewMoney(item.Amount, item.CurrencyCode),
			ExchangeAmount: NewMoney(item.ExchangeAmount, domain.CurrencyKRW),
		}
	}
	return DispatchBudgetResponse{
		BudgetID: budget.BudgetID,
		TotalKRW: NewMoney(budget.TotalKRW(), domain.CurrencyKRW),
		Items:    items,
	}
}

// LivingItemRequest is one living-budget line. A custom name forces the item
// into the OTHER bucket server-side, whatever type the client sent.
type LivingItemRequest struct {
	Type       string          `json:"type" binding:"required"`
	CustomName string          `json:"customName"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// SaveLivingBudgetRequest replaces the user's living budget. Amounts are KRW.
type SaveLivingBudgetRequest struct {
	TotalAmount decimal.Decimal     `json:"totalAmount" binding:"required"`
	Items       []LivingItemRequest `json:"items" binding:"dive"`
}

// LivingItemResponse is one stored living-budget item.
type LivingItemResponse struct {
	ItemID     string `json:"itemID"`
	Type       string `json:"type"`
	Label      string `json:"label"`
	CustomName string `json:"customName,omitempty"`
	Amount     Money  `json:"amount"`
}

// LivingBudgetResponse is the living budget payload.
type LivingBudgetResponse struct {
	BudgetID    string               `json:"budgetID"`
	TotalAmount Money                `json:"totalAmount"`
	Items       []LivingItemResponse `json:"items"`
}

// ToLivingBudgetResponse converts a living budget to its DTO.
func ToLivingBudgetResponse(budget *domain.LivingBudget) LivingBudgetResponse {
	items := make([]LivingItemResponse, len(budget.Items))
	for i, item := range budget.Items {
		items[i] = LivingItemResponse{
			ItemID:     item.ItemID,
			Type:       string(item.Type),
			Label:      item.Type.Label(),
			CustomName: item.CustomName,
			Amount:     NewMoney(item.Amount, domain.CurrencyKRW),
		}
	}
	return LivingBudgetResponse{
		BudgetID:    budget.BudgetID,
		TotalAmount: NewMoney(budget.TotalAmount, domain.CurrencyKRW),
		Items:       items,
	}
}

// BudgetProjectionResponse is the combined projected cost payload.
type BudgetProjectionResponse struct {
	DispatchTotal  Money `json:"dispatchTotal"`
	MonthlyLiving  Money `json:"monthlyLiving"`
	Months         int   `json:"months"`
	ProjectedTotal Money `json:"projectedTotal"`
}

// ToBudgetProjectionResponse converts a projection to its DTO.
func ToBudgetProjectionResponse(projection *domain.BudgetProjection) BudgetProjectionResponse {
	return BudgetProjectionResponse{
		DispatchTotal:  NewMoney(projection.DispatchTotalKRW, domain.CurrencyKRW),
		MonthlyLiving:  NewMoney(projection.MonthlyLivingKRW, domain.CurrencyKRW),
		Months:         projection.Months,
		ProjectedTotal: NewMoney(projection.ProjectedKRW, domain.CurrencyKRW),
	}
}
