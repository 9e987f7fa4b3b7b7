package taxengine

import (
	"errors"
	"testing"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressiveTax_KnownValues(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "0"},
		{"100000", "18000"},
		{"237100", "42678"},
		{"300000", "59032"},
		{"370500", "77362"},
		{"1000000", "306677"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			tax, err := ProgressiveTax(DefaultBracketTable(), d(tt.amount))
			require.NoError(t, err)
			assert.True(t, tax.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, tax)
		})
	}
}

func TestProgressiveTax_BoundaryStaysInLowerSlab(t *testing.T) {
	slabs, err := Breakdown(DefaultBracketTable(), d("370500"))
	require.NoError(t, err)
	require.Len(t, slabs, 2)
	assert.True(t, slabs[1].Taxable.Equal(d("133400")))
	assert.True(t, slabs[1].Bracket.Rate.Equal(d("0.26")))
}

func TestProgressiveTax_ContinuousAtBoundaries(t *testing.T) {
	table := DefaultBracketTable()
	epsilon := d("0.01")
	maxRate := d("0.39")

	for i := 0; i < table.Len()-1; i++ {
		boundary := table.At(i).UpperBound
		below, err := ProgressiveTax(table, boundary.Sub(epsilon))
		require.NoError(t, err)
		at, err := ProgressiveTax(table, boundary)
		require.NoError(t, err)
		above, err := ProgressiveTax(table, boundary.Add(epsilon))
		require.NoError(t, err)

		bound := epsilon.Mul(maxRate)
		assert.True(t, at.Sub(below).LessThanOrEqual(bound), "jump below boundary %s", boundary)
		assert.True(t, above.Sub(at).LessThanOrEqual(bound), "jump above boundary %s", boundary)
		assert.True(t, above.Sub(at).Equal(epsilon.Mul(table.At(i+1).Rate)))
	}
}

func TestProgressiveTax_Monotonic(t *testing.T) {
	table := DefaultBracketTable()
	previous := decimal.Zero
	step := decimal.NewFromInt(7919)
	for amount := decimal.Zero; amount.LessThan(d("1500000")); amount = amount.Add(step) {
		tax, err := ProgressiveTax(table, amount)
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(previous), "tax decreased at %s", amount)
		previous = tax
	}
}

func TestProgressiveTax_RejectsNegative(t *testing.T) {
	_, err := ProgressiveTax(DefaultBracketTable(), d("-1"))
	assert.True(t, errors.Is(err, taxerror.ErrInvalidAmount))
}

func TestProgressiveTax_NilTable(t *testing.T) {
	_, err := ProgressiveTax(nil, d("1"))
	assert.True(t, errors.Is(err, taxerror.ErrInvalidRules))
}

func TestBreakdown_SumsToTotal(t *testing.T) {
	amount := d("800000")
	slabs, err := Breakdown(DefaultBracketTable(), amount)
	require.NoError(t, err)
	require.Len(t, slabs, 5)

	taxable := decimal.Zero
	tax := decimal.Zero
	for _, s := range slabs {
		taxable = taxable.Add(s.Taxable)
		tax = tax.Add(s.Tax)
	}
	total, err := ProgressiveTax(DefaultBracketTable(), amount)
	require.NoError(t, err)

	assert.True(t, taxable.Equal(amount))
	assert.True(t, tax.Equal(total))
	assert.True(t, slabs[4].Lower.Equal(d("673000")))
	assert.True(t, slabs[4].Bracket.Unbounded)
}
