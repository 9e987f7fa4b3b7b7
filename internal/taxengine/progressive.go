package taxengine

import (
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

// SlabTax is the share of an amount falling into one bracket and the tax due on it.
type SlabTax struct {
	Bracket TaxBracket
	Lower   decimal.Decimal
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// ProgressiveTax returns the tax owed on annualAmount under the marginal (slab) method.
// An amount equal to a bracket's upper bound is taxed entirely within that bracket.
func ProgressiveTax(table *BracketTable, annualAmount decimal.Decimal) (decimal.Decimal, error) {
	slabs, err := Breakdown(table, annualAmount)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, s := range slabs {
		total = total.Add(s.Tax)
	}
	return total, nil
}

// Breakdown walks the brackets in ascending order and reports every slab the amount
// reaches, ending with the bracket that contains it.
func Breakdown(table *BracketTable, annualAmount decimal.Decimal) ([]SlabTax, error) {
	if table == nil || table.Len() == 0 {
		return nil, &taxerror.InvalidBracketError{Index: -1, Reason: "bracket table is empty"}
	}
	if annualAmount.IsNegative() {
		return nil, &taxerror.InvalidAmountError{Value: annualAmount.String(), Reason: "amount must not be negative"}
	}

	var slabs []SlabTax
	previousUpper := decimal.Zero
	for _, b := range table.brackets {
		if b.Exceeds(annualAmount) {
			taxable := decimal.Min(annualAmount, b.UpperBound).Sub(previousUpper)
			slabs = append(slabs, SlabTax{Bracket: b, Lower: previousUpper, Taxable: taxable, Tax: taxable.Mul(b.Rate)})
			previousUpper = b.UpperBound
			continue
		}
		taxable := annualAmount.Sub(previousUpper)
		slabs = append(slabs, SlabTax{Bracket: b, Lower: previousUpper, Taxable: taxable, Tax: taxable.Mul(b.Rate)})
		break
	}
	return slabs, nil
}
