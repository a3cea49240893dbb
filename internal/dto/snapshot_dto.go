package dto

import (
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveDetailProfileRequest creates or updates the lifestyle questionnaire.
// Every write publishes a fresh summary snapshot.
type SaveDetailProfileRequest struct {
	MonthlySpendInKorea decimal.Decimal `json:"monthlySpendInKorea" binding:"required"`
	MealFrequency       *string         `json:"mealFrequency" binding:"omitempty,oneof=1 2 3"`
	DineoutPerWeek      int             `json:"dineoutPerWeek" binding:"gte=0"`
	CoffeePerWeek       int             `json:"coffeePerWeek" binding:"gte=0"`
	SmokingPerDay       int             `json:"smokingPerDay" binding:"gte=0"`
	DrinkingPerWeek     int             `json:"drinkingPerWeek" binding:"gte=0"`
	ShoppingPerMonth    int             `json:"shoppingPerMonth" binding:"gte=0"`
	CulturePerMonth     int             `json:"culturePerMonth" binding:"gte=0"`
	ResidenceType       string          `json:"residenceType"`
	Commute             bool            `json:"commute"`
	SummaryNote         string          `json:"summaryNote"`
}

// DetailProfileResponse is the stored questionnaire payload.
type DetailProfileResponse struct {
	MonthlySpendInKorea Money     `json:"monthlySpendInKorea"`
	MealFrequency       *string   `json:"mealFrequency,omitempty"`
	DineoutPerWeek      int       `json:"dineoutPerWeek"`
	CoffeePerWeek       int       `json:"coffeePerWeek"`
	SmokingPerDay       int       `json:"smokingPerDay"`
	DrinkingPerWeek     int       `json:"drinkingPerWeek"`
	ShoppingPerMonth    int       `json:"shoppingPerMonth"`
	CulturePerMonth     int       `json:"culturePerMonth"`
	ResidenceType       string    `json:"residenceType,omitempty"`
	Commute             bool      `json:"commute"`
	SummaryNote         string    `json:"summaryNote,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ToDetailProfileResponse converts a detail profile to its DTO.
func ToDetailProfileResponse(profile *domain.DetailProfile) DetailProfileResponse {
	resp := DetailProfileResponse{
		MonthlySpendInKorea: NewMoney(profile.MonthlySpendInKorea, domain.CurrencyKRW),
		DineoutPerWeek:      profile.DineoutPerWeek,
		CoffeePerWeek:       profile.CoffeePerWeek,
		SmokingPerDay:       profile.SmokingPerDay,
		DrinkingPerWeek:     profile.DrinkingPerWeek,
		ShoppingPerMonth:    profile.ShoppingPerMonth,
		CulturePerMonth:     profile.CulturePerMonth,
		ResidenceType:       profile.ResidenceType,
		Commute:             profile.Commute,
		SummaryNote:         profile.SummaryNote,
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           profile.UpdatedAt,
	}
	if profile.MealFrequency != nil {
		freq := string(*profile.MealFrequency)
		resp.MealFrequency = &freq
	}
	return resp
}

// SnapshotResponse is one immutable snapshot row.
type SnapshotResponse struct {
	SnapshotID           int64     `json:"snapshotID"`
	Nickname             string    `json:"nickname"`
	Gender               string    `json:"gender"`
	Country              string    `json:"country"`
	University           string    `json:"university"`
	ExchangeType         string    `json:"exchangeType"`
	ExchangeSemester     string    `json:"exchangeSemester"`
	ExchangePeriod       string    `json:"exchangePeriod"`
	LivingExpenseForeign Money     `json:"livingExpenseForeign"`
	LivingExpenseKRW     Money     `json:"livingExpenseKrw"`
	BaseDispatchForeign  Money     `json:"baseDispatchForeign"`
	BaseDispatchKRW      Money     `json:"baseDispatchKrw"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ToSnapshotResponse converts a snapshot to its DTO.
func ToSnapshotResponse(snapshot *domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:           snapshot.SnapshotID,
		Nickname:             snapshot.Nickname,
		Gender:               snapshot.GenderLabel,
		Country:              snapshot.Country,
		University:           snapshot.University,
		ExchangeType:         snapshot.ExchangeTypeLabel,
		ExchangeSemester:     snapshot.ExchangeSemester,
		ExchangePeriod:       snapshot.ExchangePeriod,
		LivingExpenseForeign: NewMoney(snapshot.LivingExpenseForeignAmount, snapshot.LivingExpenseForeignCurrency),
		LivingExpenseKRW:     NewMoney(snapshot.LivingExpenseKRWAmount, domain.CurrencyKRW),
		BaseDispatchForeign:  NewMoney(snapshot.BaseDispatchForeignAmount, snapshot.LivingExpenseForeignCurrency),
		BaseDispatchKRW:      NewMoney(snapshot.BaseDispatchKRWAmount, domain.CurrencyKRW),
		CreatedAt:            snapshot.CreatedAt,
	}
}

// ToSnapshotResponses converts a snapshot history to DTOs.
func ToSnapshotResponses(snapshots []domain.Snapshot) []SnapshotResponse {
	responses := make([]SnapshotResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = ToSnapshotResponse(&snapshots[i])
	}
	return responses
}
