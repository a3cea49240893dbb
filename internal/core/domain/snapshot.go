package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MealFrequency is the self-reported meals-per-day bucket of a detail profile.
type MealFrequency string

const (
	MealOncePerDay   MealFrequency = "1"
	MealTwicePerDay  MealFrequency = "2"
	MealThricePerDay MealFrequency = "3"
)

// IsValid reports whether the value belongs to the closed set.
func (m MealFrequency) IsValid() bool {
	return m == MealOncePerDay || m == MealTwicePerDay || m == MealThricePerDay
}

// DetailProfile is the lifestyle questionnaire a user fills in before
// publishing a summary snapshot. MonthlySpendInKorea is always KRW.
type DetailProfile struct {
	UserID              string          `json:"userID"`
	MonthlySpendInKorea decimal.Decimal `json:"monthlySpendInKorea"`
	MealFrequency       *MealFrequency  `json:"mealFrequency,omitempty"`
	DineoutPerWeek      int             `json:"dineoutPerWeek"`
	CoffeePerWeek       int             `json:"coffeePerWeek"`
	SmokingPerDay       int             `json:"smokingPerDay"`
	DrinkingPerWeek     int             `json:"drinkingPerWeek"`
	ShoppingPerMonth    int             `json:"shoppingPerMonth"`
	CulturePerMonth     int             `json:"culturePerMonth"`
	ResidenceType       string          `json:"residenceType,omitempty"`
	Commute             bool            `json:"commute"`
	SummaryNote         string          `json:"summaryNote,omitempty"`
	AuditFields
}

// Snapshot is an immutable point-in-time summary of a user's exchange costs,
// published to the social feed. Profile fields are denormalized onto the row
// so later profile edits never alter the historical record; a new detail
// profile write appends a new snapshot instead of updating an old one.
type Snapshot struct {
	SnapshotID int64  `json:"snapshotID"`
	UserID     string `json:"userID"`

	Nickname          string `json:"nickname"`
	GenderLabel       string `json:"gender"`
	Country           string `json:"country"`
	University        string `json:"university"`
	ExchangeTypeLabel string `json:"exchangeType"`
	ExchangeSemester  string `json:"exchangeSemester"`
	ExchangePeriod    string `json:"exchangePeriod"`

	LivingExpenseForeignAmount   decimal.Decimal `json:"livingExpenseForeignAmount"`
	LivingExpenseForeignCurrency CurrencyCode    `json:"livingExpenseForeignCurrency"`
	LivingExpenseKRWAmount       decimal.Decimal `json:"livingExpenseKrwAmount"`
	BaseDispatchForeignAmount    decimal.Decimal `json:"baseDispatchForeignAmount"`
	BaseDispatchKRWAmount        decimal.Decimal `json:"baseDispatchKrwAmount"`

	CreatedAt time.Time `json:"createdAt"`
}

// FeedSnapshot is a snapshot joined with its social counters for feed views.
type FeedSnapshot struct {
	Snapshot
	LikeCount  int `json:"likeCount"`
	ScrapCount int `json:"scrapCount"`
}

// Favorite marks that a user liked a snapshot. At most one row may exist per
// (user, snapshot) pair.
type Favorite struct {
	UserID     string    `json:"userID"`
	SnapshotID int64     `json:"snapshotID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Scrap marks that a user bookmarked a snapshot. Same uniqueness rule as
// Favorite.
type Scrap struct {
	UserID     string    `json:"userID"`
	SnapshotID int64     `json:"snapshotID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedCostLine is one line item of a feed detail: the frozen figures stored
// with the snapshot owner's data next to the same spend reconverted at
// today's rate.
type FeedCostLine struct {
	Code           string          `json:"code"`
	Label          string          `json:"label"`
	ForeignAmount  decimal.Decimal `json:"foreignAmount"`
	KRWAmount      decimal.Decimal `json:"krwAmount"`
	CurrentRateKRW decimal.Decimal `json:"currentRateKrw"`
}

// FeedCostBreakdown is a dual-currency cost block of a feed detail. The
// top-line amounts are the snapshot's stored figures; the lines carry the
// live recomputation.
type FeedCostBreakdown struct {
	ForeignCurrency CurrencyCode    `json:"foreignCurrency"`
	ForeignAmount   decimal.Decimal `json:"foreignAmount"`
	KRWAmount       decimal.Decimal `json:"krwAmount"`
	Lines           []FeedCostLine  `json:"lines"`
}

// FeedDetail is the full payload of one feed entry: the stored snapshot with
// its counters, the live cost breakdowns, and the viewer's own flags.
type FeedDetail struct {
	FeedSnapshot
	LivingExpense FeedCostBreakdown `json:"livingExpense"`
	BaseDispatch  FeedCostBreakdown `json:"baseDispatch"`
	Liked         bool              `json:"liked"`
	Scrapped      bool              `json:"scrapped"`
}
