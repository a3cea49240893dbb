package domain

// Category buckets a ledger entry for aggregation.
type Category string

const (
	CategoryFood           Category = "FOOD"
	CategoryHousing        Category = "HOUSING"
	CategoryTransport      Category = "TRANSPORT"
	CategoryShopping       Category = "SHOPPING"
	CategoryTravel         Category = "TRAVEL"
	CategoryStudyMaterials Category = "STUDY_MATERIALS"
	CategoryAllowance      Category = "ALLOWANCE"
	CategoryOther          Category = "OTHER"
)

var categoryLabels = map[Category]string{
	CategoryFood:           "식비",
	CategoryHousing:        "주거비",
	CategoryTransport:      "교통비",
	CategoryShopping:       "쇼핑비",
	CategoryTravel:         "여행비",
	CategoryStudyMaterials: "교재비",
	CategoryAllowance:      "용돈",
	CategoryOther:          "기타",
}

// CategoryOrder is the fixed display order used by category-grouped views.
var CategoryOrder = []Category{
	CategoryFood,
	CategoryHousing,
	CategoryTransport,
	CategoryShopping,
	CategoryTravel,
	CategoryStudyMaterials,
	CategoryAllowance,
	CategoryOther,
}

// LivingCategories are the categories counted into "living expense"
// aggregates. Allowance and the catch-all bucket are listed in raw ledger
// views but excluded from living-expense totals.
var LivingCategories = []Category{
	CategoryFood,
	CategoryHousing,
	CategoryTransport,
	CategoryShopping,
	CategoryTravel,
	CategoryStudyMaterials,
}

// IsValid reports whether the category belongs to the closed set.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// IsLiving reports whether the category counts toward living-expense totals.
func (c Category) IsLiving() bool {
	for _, lc := range LivingCategories {
		if c == lc {
			return true
		}
	}
	return false
}

// Label returns the display label for the category, or the raw code for an
// unknown one.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
