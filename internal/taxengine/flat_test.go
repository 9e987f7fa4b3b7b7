package taxengine

import (
	"errors"
	"testing"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRateTax(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		rate     string
		expected string
	}{
		{"business", "100000", "0.28", "28000"},
		{"vat", "1000", "0.15", "150"},
		{"zero amount", "0", "0.28", "0"},
		{"zero rate", "500", "0", "0"},
		{"full rate", "500", "1", "500"},
		{"fractional", "0.10", "0.15", "0.015"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := FlatRateTax(d(tt.amount), d(tt.rate))
			require.NoError(t, err)
			assert.True(t, tax.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, tax)
		})
	}
}

func TestFlatRateTax_InvalidInput(t *testing.T) {
	_, err := FlatRateTax(d("-1"), d("0.15"))
	assert.True(t, errors.Is(err, taxerror.ErrInvalidAmount))

	_, err = FlatRateTax(d("1"), d("1.01"))
	var rateErr *taxerror.InvalidRateError
	assert.True(t, errors.As(err, &rateErr))

	_, err = FlatRateTax(d("1"), d("-0.01"))
	assert.True(t, errors.Is(err, taxerror.ErrInvalidRules))
}

func TestRuleSet_Validate(t *testing.T) {
	assert.NoError(t, DefaultRuleSet().Validate())

	rules := DefaultRuleSet()
	rules.VATRate = d("2")
	assert.True(t, errors.Is(rules.Validate(), taxerror.ErrInvalidRules))

	rules = DefaultRuleSet()
	rules.BusinessRate = d("-0.5")
	assert.Error(t, rules.Validate())

	rules = DefaultRuleSet()
	rules.Brackets = nil
	assert.Error(t, rules.Validate())
}
