package models

import (
	"fmt"
	"math"
	"strconv"

	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

// CalculationInput is a single request to the tax engine.
// Period is only meaningful for Income and Business.
type CalculationInput struct {
	Category TaxCategory     `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Period   Period          `json:"period" yaml:"period"`
}

// NewCalculationInput builds an input from already parsed values. Categories that ignore
// the period are recorded as Annual.
func NewCalculationInput(category TaxCategory, amount decimal.Decimal, period Period) CalculationInput {
	if category.IsValid() && !category.IsPeriodic() {
		period = Annual
	}
	return CalculationInput{
		Category: category,
		Amount:   amount,
		Period:   period,
	}
}

// CalculationResult is the derived outcome of one calculation.
// ResidualAmount is always Amount - TaxAmount, in the same period as Amount.
type CalculationResult struct {
	Category       TaxCategory     `json:"category"`
	Period         Period          `json:"period"`
	Amount         decimal.Decimal `json:"amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ResidualAmount decimal.Decimal `json:"residual_amount"`
}

// NewCalculationResult derives the residual from the amount and the computed tax.
func NewCalculationResult(input CalculationInput, tax decimal.Decimal) CalculationResult {
	return CalculationResult{
		Category:       input.Category,
		Period:         input.Period,
		Amount:         input.Amount,
		TaxAmount:      tax,
		ResidualAmount: input.Amount.Sub(tax),
	}
}

// EffectiveRate returns TaxAmount / Amount, or zero for a zero amount.
func (r CalculationResult) EffectiveRate() decimal.Decimal {
	if r.Amount.IsZero() {
		return decimal.Zero
	}
	return r.TaxAmount.Div(r.Amount)
}

// AmountFromFloat converts a float amount, rejecting NaN and infinities.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &taxerror.InvalidAmountError{
			Value:  strconv.FormatFloat(f, 'g', -1, 64),
			Reason: "amount must be a finite number",
		}
	}
	return decimal.NewFromFloat(f), nil
}

// ValidateAmount rejects amounts too large or too precise to calculate with. It reads only
// the coefficient size and exponent, so it is cheap for any input.
func ValidateAmount(amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if exp < -MaxAmountScale {
		return &taxerror.InvalidAmountError{
			Reason: fmt.Sprintf("amount has more than %d decimal places", MaxAmountScale),
		}
	}
	if int64(amount.NumDigits())+exp > MaxAmountDigits {
		return &taxerror.InvalidAmountError{
			Reason: fmt.Sprintf("amount exceeds %d digits", MaxAmountDigits),
		}
	}
	return nil
}
