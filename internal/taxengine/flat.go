package taxengine

import (
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// FlatRateTax returns amount * rate.
func FlatRateTax(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, &taxerror.InvalidAmountError{Value: amount.String(), Reason: "amount must not be negative"}
	}
	if err := checkRate("flat", rate); err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func checkRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return &taxerror.InvalidRateError{Name: name, Value: rate.String()}
	}
	return nil
}
