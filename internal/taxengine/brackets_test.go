package taxengine

import (
	"errors"
	"testing"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefaultBracketTable(t *testing.T) {
	table := DefaultBracketTable()
	require.Equal(t, 5, table.Len())

	expected := []struct {
		upper string
		rate  string
	}{
		{"237100", "0.18"},
		{"370500", "0.26"},
		{"512800", "0.31"},
		{"673000", "0.36"},
	}
	for i, e := range expected {
		b := table.At(i)
		assert.False(t, b.Unbounded)
		assert.True(t, b.UpperBound.Equal(d(e.upper)), "bracket %d upper bound", i)
		assert.True(t, b.Rate.Equal(d(e.rate)), "bracket %d rate", i)
	}

	top := table.At(4)
	assert.True(t, top.Unbounded)
	assert.True(t, top.Rate.Equal(d("0.39")))

	first, ok := table.FirstUpperBound()
	assert.True(t, ok)
	assert.True(t, first.Equal(d("237100")))
}

func TestBracketTable_IsImmutable(t *testing.T) {
	input := []TaxBracket{
		Bounded(d("100"), d("0.1")),
		Open(d("0.2")),
	}
	table, err := NewBracketTable(input)
	require.NoError(t, err)

	input[0].Rate = d("0.9")
	assert.True(t, table.At(0).Rate.Equal(d("0.1")))

	copied := table.Brackets()
	copied[1].Rate = d("0.9")
	assert.True(t, table.At(1).Rate.Equal(d("0.2")))
}

func TestNewBracketTable_Validation(t *testing.T) {
	tests := []struct {
		name     string
		brackets []TaxBracket
		reason   string
	}{
		{
			name:     "empty",
			brackets: nil,
			reason:   "at least one bracket",
		},
		{
			name:     "last bracket bounded",
			brackets: []TaxBracket{Bounded(d("100"), d("0.1"))},
			reason:   "last bracket must be unbounded",
		},
		{
			name:     "unbounded in the middle",
			brackets: []TaxBracket{Open(d("0.1")), Open(d("0.2"))},
			reason:   "only the last bracket",
		},
		{
			name:     "bounds not ascending",
			brackets: []TaxBracket{Bounded(d("200"), d("0.1")), Bounded(d("100"), d("0.2")), Open(d("0.3"))},
			reason:   "must exceed",
		},
		{
			name:     "duplicate bound",
			brackets: []TaxBracket{Bounded(d("100"), d("0.1")), Bounded(d("100"), d("0.2")), Open(d("0.3"))},
			reason:   "must exceed",
		},
		{
			name:     "zero first bound",
			brackets: []TaxBracket{Bounded(d("0"), d("0.1")), Open(d("0.3"))},
			reason:   "must exceed",
		},
		{
			name:     "decreasing rate",
			brackets: []TaxBracket{Bounded(d("100"), d("0.3")), Open(d("0.2"))},
			reason:   "lower than previous rate",
		},
		{
			name:     "rate above one",
			brackets: []TaxBracket{Open(d("1.5"))},
			reason:   "outside [0, 1]",
		},
		{
			name:     "negative rate",
			brackets: []TaxBracket{Open(d("-0.1"))},
			reason:   "outside [0, 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewBracketTable(tt.brackets)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, taxerror.ErrInvalidRules))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestNewBracketTable_SingleOpenBracket(t *testing.T) {
	table, err := NewBracketTable([]TaxBracket{Open(d("0.25"))})
	require.NoError(t, err)

	_, ok := table.FirstUpperBound()
	assert.False(t, ok)
}

func TestMustBracketTable_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustBracketTable(nil)
	})
}

func TestTaxBracket_String(t *testing.T) {
	assert.Equal(t, "up to 237100: 0.18", Bounded(d("237100"), d("0.18")).String())
	assert.Equal(t, "above: 0.39", Open(d("0.39")).String())
}
