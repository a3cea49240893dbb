package domain

import "strings"

// CurrencyCode is an ISO-4217 style currency code. The application supports a
// closed set of currencies; any other value is carried verbatim and treated as
// having no exchange rate on record.
type CurrencyCode string

const (
	CurrencyKRW CurrencyCode = "KRW"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyJPY CurrencyCode = "JPY"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyCNY CurrencyCode = "CNY"
	CurrencyTWD CurrencyCode = "TWD"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyCAD CurrencyCode = "CAD"
)

// SupportedCurrencies is the closed set of currencies the rate store may hold.
// KRW is the anchor currency and is never stored as a rate row itself.
var SupportedCurrencies = []CurrencyCode{
	CurrencyKRW,
	CurrencyUSD,
	CurrencyJPY,
	CurrencyEUR,
	CurrencyCNY,
	CurrencyTWD,
	CurrencyGBP,
	CurrencyCAD,
}

var currencyLabels = map[CurrencyCode]string{
	CurrencyKRW: "대한민국 원 (KRW)",
	CurrencyUSD: "미국 달러 (USD)",
	CurrencyJPY: "일본 엔 (JPY)",
	CurrencyEUR: "유럽 유로 (EUR)",
	CurrencyCNY: "중국 위안 (CNY)",
	CurrencyTWD: "대만 달러 (TWD)",
	CurrencyGBP: "영국 파운드 (GBP)",
	CurrencyCAD: "캐나다 달러 (CAD)",
}

// NormalizeCurrencyCode uppercases and trims a raw currency code.
func NormalizeCurrencyCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsSupported reports whether the code belongs to the closed supported set.
func (c CurrencyCode) IsSupported() bool {
	_, ok := currencyLabels[c]
	return ok
}

// IsKRW reports whether the code is the anchor currency.
func (c CurrencyCode) IsKRW() bool {
	return c == CurrencyKRW
}

// Label returns the display label for a supported currency, or the raw code
// itself for an unknown one.
func (c CurrencyCode) Label() string {
	if label, ok := currencyLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c CurrencyCode) String() string {
	return string(c)
}
