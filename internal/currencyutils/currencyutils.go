// Package currencyutils parses user-supplied amounts and formats monetary values for display.
package currencyutils

import (
	"regexp"
	"strings"

	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "R"

const currencyToken = `(?:ZAR|CHF|EUR|USD|GBP|R|[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪])`

var (
	leadingSymbol   = regexp.MustCompile(`^\s*` + currencyToken + `\s*`)
	trailingSymbol  = regexp.MustCompile(`\s*` + currencyToken + `\s*$`)
	groupSeparators = regexp.MustCompile(`[\s']`)
	numberPattern   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// ParseAmount parses a user-supplied amount such as "R 1 234,56", "1'234.56" or "1,234.56".
// A currency token is only accepted before or after the number. Empty input, unparsable
// text and amounts outside models.ValidateAmount are reported as InvalidAmountError. Sign
// checks are left to the calculator.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, &taxerror.InvalidAmountError{Reason: "amount is required"}
	}

	standardized := StandardizeAmount(amountStr)
	if !numberPattern.MatchString(standardized) {
		return decimal.Zero, &taxerror.InvalidAmountError{Value: amountStr, Reason: "not a number"}
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, &taxerror.InvalidAmountError{Value: amountStr, Reason: "not a number"}
	}
	if err := models.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// StandardizeAmount strips a leading or trailing currency token and grouping separators so
// that the result can be parsed by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = leadingSymbol.ReplaceAllString(amountStr, "")
	amountStr = trailingSymbol.ReplaceAllString(amountStr, "")
	amountStr = groupSeparators.ReplaceAllString(amountStr, "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}
	return amountStr
}

// Round rounds amount half away from zero to display precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(models.DisplayPlaces)
}

// FormatDecimal renders amount with two decimal places and no symbol, e.g. "4919.33".
func FormatDecimal(amount decimal.Decimal) string {
	return amount.StringFixed(models.DisplayPlaces)
}

// FormatAmount renders amount with two decimal places behind a currency symbol, e.g.
// "R59032.00". ISO codes with a well-known symbol are replaced by it.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := FormatDecimal(amount)
	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "ZAR":
		return "R" + formatted
	case "EUR":
		return "€" + formatted
	case "USD":
		return "$" + formatted
	case "GBP":
		return "£" + formatted
	case "CHF":
		return "CHF " + formatted
	default:
		return currency + formatted
	}
}
