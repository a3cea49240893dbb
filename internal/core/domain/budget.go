package domain

import "github.com/shopspring/decimal"

// DispatchItemType identifies one of the one-time pre-departure cost items.
// A complete dispatch budget carries exactly one item of each type.
type DispatchItemType string

const (
	DispatchFlight    DispatchItemType = "FLIGHT"
	DispatchInsurance DispatchItemType = "INSURANCE"
	DispatchVisa      DispatchItemType = "VISA"
	DispatchTuition   DispatchItemType = "TUITION"
)

// RequiredDispatchItemTypes is the full set a dispatch budget must cover.
var RequiredDispatchItemTypes = []DispatchItemType{
	DispatchFlight,
	DispatchInsurance,
	DispatchVisa,
	DispatchTuition,
}

var dispatchItemLabels = map[DispatchItemType]string{
	DispatchFlight:    "항공권",
	DispatchInsurance: "보험료",
	DispatchVisa:      "비자",
	DispatchTuition:   "등록금",
}

// IsValid reports whether the type belongs to the required set.
func (t DispatchItemType) IsValid() bool {
	_, ok := dispatchItemLabels[t]
	return ok
}

// Label returns the display label for the item type.
func (t DispatchItemType) Label() string {
	if label, ok := dispatchItemLabels[t]; ok {
		return label
	}
	return string(t)
}

// DispatchItem is a single one-time dispatch cost (flight, insurance, visa or
// tuition). ExchangeAmount is the KRW conversion recomputed on every save.
// Unlike a ledger entry's frozen conversion, it tracks the rate in effect at
// the most recent save, and it is the source of truth for dispatch totals.
type DispatchItem struct {
	ItemID         string           `json:"itemID"`
	Type           DispatchItemType `json:"type"`
	Amount         decimal.Decimal  `json:"amount"`
	CurrencyCode   CurrencyCode     `json:"currencyCode"`
	ExchangeAmount decimal.Decimal  `json:"exchangeAmount"`
	AuditFields
}

// DispatchBudget groups a user's four dispatch cost items.
type DispatchBudget struct {
	BudgetID string         `json:"budgetID"`
	UserID   string         `json:"userID"`
	Items    []DispatchItem `json:"items"`
	AuditFields
}

// TotalKRW sums the stored KRW conversions of all items.
func (b DispatchBudget) TotalKRW() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.ExchangeAmount)
	}
	return total
}

// LivingItemType buckets a recurring living-budget item.
type LivingItemType string

const (
	LivingFood      LivingItemType = "FOOD"
	LivingTransport LivingItemType = "TRANSPORT"
	LivingHousing   LivingItemType = "HOUSING"
	LivingShopping  LivingItemType = "SHOPPING"
	LivingCulture   LivingItemType = "CULTURE"
	LivingOther     LivingItemType = "OTHER"
)

var livingItemLabels = map[LivingItemType]string{
	LivingFood:      "식비",
	LivingTransport: "교통비",
	LivingHousing:   "주거비",
	LivingShopping:  "쇼핑비",
	LivingCulture:   "문화생활",
	LivingOther:     "기타",
}

// IsValid reports whether the type belongs to the closed set.
func (t LivingItemType) IsValid() bool {
	_, ok := livingItemLabels[t]
	return ok
}

// Label returns the display label for the item type.
func (t LivingItemType) Label() string {
	if label, ok := livingItemLabels[t]; ok {
		return label
	}
	return string(t)
}

// LivingItem is one line of the recurring monthly living budget. Living
// budget amounts are always KRW; there is no currency field on purpose.
// An item carrying a CustomName is always stored under the OTHER type.
type LivingItem struct {
	ItemID     string          `json:"itemID"`
	Type       LivingItemType  `json:"type"`
	CustomName string          `json:"customName,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	AuditFields
}

// LivingBudget is a user's recurring monthly living-expense plan in KRW.
// TotalAmount is the authoritative monthly figure.
type LivingBudget struct {
	BudgetID    string          `json:"budgetID"`
	UserID      string          `json:"userID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []LivingItem    `json:"items"`
	AuditFields
}
