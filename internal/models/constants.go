package models

// MonthsPerYear is the factor used to annualise monthly amounts.
const MonthsPerYear = 12

// DisplayPlaces is the number of decimal places used for presented amounts.
const DisplayPlaces = 2

// Amount limits. MaxAmountDigits is the integer digit count of the largest float64;
// MaxAmountScale bounds the fractional digits.
const (
	MaxAmountDigits = 309
	MaxAmountScale  = 20
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
