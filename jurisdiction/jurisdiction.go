package jurisdiction

import "strings"

// DefaultJurisdiction is used whenever a province code is missing or
// unrecognized. Agreements must always name a governing law, so an unknown
// code is a fallback case, not an error.
const DefaultJurisdiction = "Ontario"

var provinceNames = map[string]string{
	"AB": "Alberta",
	"BC": "British Columbia",
	"MB": "Manitoba",
	"NB": "New Brunswick",
	"NL": "Newfoundland and Labrador",
	"NS": "Nova Scotia",
	"NT": "Northwest Territories",
	"NU": "Nunavut",
	"ON": "Ontario",
	"PE": "Prince Edward Island",
	"QC": "Quebec",
	"SK": "Saskatchewan",
	"YT": "Yukon",
}

// Resolve maps a two-letter Canadian province or territory code to the
// jurisdiction name used in governing-law clauses. Input is trimmed and
// case-insensitive; anything outside the 13 known codes resolves to
// DefaultJurisdiction.
func Resolve(provinceCode string) string {
	code := strings.ToUpper(strings.TrimSpace(provinceCode))
	if name, ok := provinceNames[code]; ok {
		return name
	}
	return DefaultJurisdiction
}
