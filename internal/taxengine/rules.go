package taxengine

import (
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

// DefaultRuleSetName names the built-in rule set.
const DefaultRuleSetName = "default"

// RuleSet is the complete, immutable configuration the calculator runs against.
type RuleSet struct {
	Name         string
	Brackets     *BracketTable
	BusinessRate decimal.Decimal
	VATRate      decimal.Decimal

	// AnnualIncomeExemption makes annual income at or below the first bracket's upper
	// bound tax-free instead of running the slab walk.
	AnnualIncomeExemption bool
}

// DefaultRuleSet returns the built-in rates: the default income schedule, 28% business
// tax and 15% VAT.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Name:                  DefaultRuleSetName,
		Brackets:              DefaultBracketTable(),
		BusinessRate:          mustDecimal("0.28"),
		VATRate:               mustDecimal("0.15"),
		AnnualIncomeExemption: true,
	}
}

// Validate checks that the rule set can be used for calculations.
func (r *RuleSet) Validate() error {
	if r.Brackets == nil || r.Brackets.Len() == 0 {
		return &taxerror.InvalidBracketError{Index: -1, Reason: "rule set has no income brackets"}
	}
	if err := checkRate("business", r.BusinessRate); err != nil {
		return err
	}
	return checkRate("vat", r.VATRate)
}
