package models

import (
	"strings"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/samber/lo"
)

// TaxCategory selects which calculator and rate apply to an amount.
type TaxCategory string

const (
	Income   TaxCategory = "income"
	Business TaxCategory = "business"
	VAT      TaxCategory = "vat"
)

// AllTaxCategories lists the supported categories in display order.
var AllTaxCategories = []TaxCategory{Income, Business, VAT}

// ParseTaxCategory maps a case-insensitive category name onto a TaxCategory.
// No default is guessed for unknown or empty names.
func ParseTaxCategory(s string) (TaxCategory, error) {
	c := TaxCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", &taxerror.UnknownCategoryError{Value: s}
	}
	return c, nil
}

// IsValid reports whether c is one of the supported categories.
func (c TaxCategory) IsValid() bool {
	return lo.Contains(AllTaxCategories, c)
}

// IsPeriodic reports whether the reporting period affects the calculation.
func (c TaxCategory) IsPeriodic() bool {
	return c == Income || c == Business
}

// Label returns the human readable name of the category.
func (c TaxCategory) Label() string {
	switch c {
	case Income:
		return "Income Tax"
	case Business:
		return "Business Tax"
	case VAT:
		return "VAT"
	default:
		return string(c)
	}
}

// CategoryNames returns the wire names of all supported categories.
func CategoryNames() []string {
	return lo.Map(AllTaxCategories, func(c TaxCategory, _ int) string {
		return string(c)
	})
}
