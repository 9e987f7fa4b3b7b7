package taxengine

import (
	"fmt"

	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(models.MonthsPerYear)

// Calculator applies a RuleSet to calculation inputs, normalising monthly amounts
// through their annual equivalent. It holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	rules  *RuleSet
	logger logging.Logger
}

// NewCalculator creates a calculator for rules. A nil rules argument selects the
// built-in rule set.
func NewCalculator(rules *RuleSet, logger logging.Logger) *Calculator {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Calculator{
		rules:  rules,
		logger: logger,
	}
}

// Rules returns the rule set in use.
func (c *Calculator) Rules() *RuleSet {
	return c.rules
}

// Calculate computes the tax and residual for input.
func (c *Calculator) Calculate(input models.CalculationInput) (models.CalculationResult, error) {
	if err := models.ValidateAmount(input.Amount); err != nil {
		return models.CalculationResult{}, err
	}
	if input.Amount.IsNegative() {
		return models.CalculationResult{}, &taxerror.InvalidAmountError{
			Value:  input.Amount.String(),
			Reason: "amount must not be negative",
		}
	}
	if !input.Category.IsValid() {
		return models.CalculationResult{}, &taxerror.UnknownCategoryError{Value: string(input.Category)}
	}
	if input.Category.IsPeriodic() && input.Period != models.Annual && input.Period != models.Monthly {
		return models.CalculationResult{}, &taxerror.UnknownPeriodError{Value: string(input.Period)}
	}
	if !input.Category.IsPeriodic() {
		input.Period = models.Annual
	}

	tax, err := c.tax(input)
	if err != nil {
		return models.CalculationResult{}, fmt.Errorf("failed to calculate %s tax: %w", input.Category, err)
	}

	result := models.NewCalculationResult(input, tax)
	c.logger.Debug("Tax calculated",
		logging.Field{Key: logging.FieldCategory, Value: string(input.Category)},
		logging.Field{Key: logging.FieldPeriod, Value: string(input.Period)},
		logging.Field{Key: logging.FieldAmount, Value: input.Amount.String()},
		logging.Field{Key: logging.FieldTax, Value: tax.String()})
	return result, nil
}

func (c *Calculator) tax(input models.CalculationInput) (decimal.Decimal, error) {
	if input.Category == models.VAT {
		return FlatRateTax(input.Amount, c.rules.VATRate)
	}

	if input.Period == models.Annual {
		if c.exempt(input) {
			return decimal.Zero, nil
		}
		return c.annualTax(input.Category, input.Amount)
	}

	annualTax, err := c.annualTax(input.Category, input.Amount.Mul(monthsPerYear))
	if err != nil {
		return decimal.Zero, err
	}
	return annualTax.Div(monthsPerYear), nil
}

// exempt reports whether annual income falls within the tax-free first bracket.
func (c *Calculator) exempt(input models.CalculationInput) bool {
	if input.Category != models.Income || !c.rules.AnnualIncomeExemption {
		return false
	}
	limit, ok := c.rules.Brackets.FirstUpperBound()
	return ok && input.Amount.LessThanOrEqual(limit)
}

func (c *Calculator) annualTax(category models.TaxCategory, annualAmount decimal.Decimal) (decimal.Decimal, error) {
	switch category {
	case models.Income:
		return ProgressiveTax(c.rules.Brackets, annualAmount)
	case models.Business:
		return FlatRateTax(annualAmount, c.rules.BusinessRate)
	default:
		return decimal.Zero, &taxerror.UnknownCategoryError{Value: string(category)}
	}
}
