package models

import (
	"strings"

	"fjacquet/taxcalc/internal/taxerror"
)

// Period is the reporting period an amount is expressed in.
type Period string

const (
	Annual  Period = "annual"
	Monthly Period = "monthly"
)

// ParsePeriod maps a case-insensitive period name onto a Period.
// An empty string is treated as Annual.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Annual):
		return Annual, nil
	case string(Monthly):
		return Monthly, nil
	default:
		return "", &taxerror.UnknownPeriodError{Value: s}
	}
}

// PeriodFromAnnualFlag converts the isAnnual toggle used by callers into a Period.
func PeriodFromAnnualFlag(isAnnual bool) Period {
	if isAnnual {
		return Annual
	}
	return Monthly
}

// IsAnnual reports whether p is Annual.
func (p Period) IsAnnual() bool {
	return p == Annual
}
