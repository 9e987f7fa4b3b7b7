// Package taxengine implements the tax computation rules: the progressive bracket table,
// the slab calculator, the flat-rate calculator and the annual/monthly normalisation.
package taxengine

import (
	"fmt"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

// TaxBracket is one slab of a progressive schedule. The final bracket of a table
// is Unbounded and its UpperBound is ignored.
type TaxBracket struct {
	UpperBound decimal.Decimal
	Unbounded  bool
	Rate       decimal.Decimal
}

// Bounded returns a bracket ending at upper (inclusive).
func Bounded(upper, rate decimal.Decimal) TaxBracket {
	return TaxBracket{UpperBound: upper, Rate: rate}
}

// Open returns the unbounded top bracket.
func Open(rate decimal.Decimal) TaxBracket {
	return TaxBracket{Unbounded: true, Rate: rate}
}

// Exceeds reports whether amount lies strictly above the bracket's upper bound.
func (b TaxBracket) Exceeds(amount decimal.Decimal) bool {
	return !b.Unbounded && amount.GreaterThan(b.UpperBound)
}

func (b TaxBracket) String() string {
	if b.Unbounded {
		return fmt.Sprintf("above: %s", b.Rate.String())
	}
	return fmt.Sprintf("up to %s: %s", b.UpperBound.String(), b.Rate.String())
}

// BracketTable is an ordered, immutable progressive schedule.
type BracketTable struct {
	brackets []TaxBracket
}

// NewBracketTable validates and copies brackets. Bounds must be strictly ascending,
// rates within [0, 1] and non-decreasing, and only the last bracket may be (and must be)
// unbounded.
func NewBracketTable(brackets []TaxBracket) (*BracketTable, error) {
	if len(brackets) == 0 {
		return nil, &taxerror.InvalidBracketError{Index: -1, Reason: "at least one bracket is required"}
	}

	previousUpper := decimal.Zero
	previousRate := decimal.Zero
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, &taxerror.InvalidBracketError{Index: i, Reason: fmt.Sprintf("rate %s outside [0, 1]", b.Rate)}
		}
		if i > 0 && b.Rate.LessThan(previousRate) {
			return nil, &taxerror.InvalidBracketError{Index: i, Reason: fmt.Sprintf("rate %s lower than previous rate %s", b.Rate, previousRate)}
		}
		if i == last {
			if !b.Unbounded {
				return nil, &taxerror.InvalidBracketError{Index: i, Reason: "last bracket must be unbounded"}
			}
			break
		}
		if b.Unbounded {
			return nil, &taxerror.InvalidBracketError{Index: i, Reason: "only the last bracket may be unbounded"}
		}
		if !b.UpperBound.GreaterThan(previousUpper) {
			return nil, &taxerror.InvalidBracketError{Index: i, Reason: fmt.Sprintf("upper bound %s must exceed %s", b.UpperBound, previousUpper)}
		}
		previousUpper = b.UpperBound
		previousRate = b.Rate
	}

	owned := make([]TaxBracket, len(brackets))
	copy(owned, brackets)
	owned[last].UpperBound = decimal.Zero
	return &BracketTable{brackets: owned}, nil
}

// MustBracketTable is NewBracketTable for package-level constants; it panics on error.
func MustBracketTable(brackets []TaxBracket) *BracketTable {
	t, err := NewBracketTable(brackets)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of brackets.
func (t *BracketTable) Len() int {
	return len(t.brackets)
}

// At returns the i-th bracket in ascending order.
func (t *BracketTable) At(i int) TaxBracket {
	return t.brackets[i]
}

// Brackets returns a copy of the schedule.
func (t *BracketTable) Brackets() []TaxBracket {
	out := make([]TaxBracket, len(t.brackets))
	copy(out, t.brackets)
	return out
}

// FirstUpperBound returns the upper bound of the lowest bracket, and false when the
// table has a single unbounded bracket.
func (t *BracketTable) FirstUpperBound() (decimal.Decimal, bool) {
	first := t.brackets[0]
	if first.Unbounded {
		return decimal.Zero, false
	}
	return first.UpperBound, true
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultBrackets is the income schedule for the supported jurisdiction and year.
var defaultBrackets = MustBracketTable([]TaxBracket{
	Bounded(mustDecimal("237100"), mustDecimal("0.18")),
	Bounded(mustDecimal("370500"), mustDecimal("0.26")),
	Bounded(mustDecimal("512800"), mustDecimal("0.31")),
	Bounded(mustDecimal("673000"), mustDecimal("0.36")),
	Open(mustDecimal("0.39")),
})

// DefaultBracketTable returns the shared built-in income schedule.
func DefaultBracketTable() *BracketTable {
	return defaultBrackets
}
