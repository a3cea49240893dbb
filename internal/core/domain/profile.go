package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Gender is the user's registered gender code.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

var genderLabels = map[Gender]string{
	GenderMale:   "남",
	GenderFemale: "여",
	GenderOther:  "기타",
}

// Label returns the display label for the gender code.
func (g Gender) Label() string {
	if label, ok := genderLabels[g]; ok {
		return label
	}
	return genderLabels[GenderOther]
}

// User is the read-only user record consumed from the account store.
type User struct {
	UserID   string `json:"userID"`
	Nickname string `json:"nickname"`
	Gender   Gender `json:"gender"`
	UnivName string `json:"univName,omitempty"`
}

// ExchangeType classifies the study-abroad program.
type ExchangeType string

const (
	ExchangeTypeExchange ExchangeType = "EX"
	ExchangeTypeVisiting ExchangeType = "VS"
	ExchangeTypeOther    ExchangeType = "OT"
)

var exchangeTypeLabels = map[ExchangeType]string{
	ExchangeTypeExchange: "교환학생",
	ExchangeTypeVisiting: "방문학생",
	ExchangeTypeOther:    "기타",
}

// Label returns the display label for the exchange type.
func (t ExchangeType) Label() string {
	if label, ok := exchangeTypeLabels[t]; ok {
		return label
	}
	return exchangeTypeLabels[ExchangeTypeOther]
}

// ExchangeProfile is the user's study-abroad metadata, consumed read-only
// from the account store. ExchangePeriod is free text ("6개월", "1 semester").
type ExchangeProfile struct {
	UserID           string       `json:"userID"`
	ExchangeUnivName string       `json:"exchangeUnivName"`
	ExchangeCountry  string       `json:"exchangeCountry"`
	ExchangeType     ExchangeType `json:"exchangeType"`
	ExchangeSemester string       `json:"exchangeSemester"`
	ExchangePeriod   string       `json:"exchangePeriod"`
	AuditFields
}

var periodDigits = regexp.MustCompile(`(\d+)`)

// MonthsInPeriod extracts the number of months from a free-text exchange
// period. The first integer found wins ("6개월" -> 6); text without digits
// falls back to 1 so per-month averages stay defined.
func MonthsInPeriod(period string) int {
	match := periodDigits.FindString(strings.TrimSpace(period))
	if match == "" {
		return 1
	}
	months, err := strconv.Atoi(match)
	if err != nil || months <= 0 {
		return 1
	}
	return months
}

// countryCurrencies maps exchange-country display names to the currency used
// there. This is the single canonical table; an unknown country resolves to
// KRW so downstream conversions become identity operations.
var countryCurrencies = map[string]CurrencyCode{
	"한국":   CurrencyKRW,
	"미국":   CurrencyUSD,
	"일본":   CurrencyJPY,
	"독일":   CurrencyEUR,
	"프랑스":  CurrencyEUR,
	"이탈리아": CurrencyEUR,
	"네덜란드": CurrencyEUR,
	"중국":   CurrencyCNY,
	"대만":   CurrencyTWD,
	"영국":   CurrencyGBP,
	"캐나다":  CurrencyCAD,
}

// CurrencyForCountry resolves an exchange-country name to its currency,
// falling back to KRW when the country is not on record.
func CurrencyForCountry(country string) CurrencyCode {
	if code, ok := countryCurrencies[strings.TrimSpace(country)]; ok {
		return code
	}
	return CurrencyKRW
}
