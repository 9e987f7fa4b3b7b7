package batch

import (
	"fjacquet/taxcalc/internal/models"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Total aggregates the successful rows of one category and period.
type Total struct {
	Category models.TaxCategory
	Period   models.Period
	Count    int
	Amount   decimal.Decimal
	Tax      decimal.Decimal
	Residual decimal.Decimal
}

// Summary describes a processed batch.
type Summary struct {
	Rows   int
	Failed int
	Totals []Total
}

type totalKey struct {
	category models.TaxCategory
	period   models.Period
}

// Total returns the aggregate for category and period, if any row contributed to it.
func (s Summary) Total(category models.TaxCategory, period models.Period) (Total, bool) {
	return lo.Find(s.Totals, func(t Total) bool {
		return t.Category == category && t.Period == period
	})
}

func summarize(outcomes []outcome) Summary {
	succeeded, failed := lo.FilterReject(outcomes, func(o outcome, _ int) bool {
		return o.err == nil
	})

	groups := lo.GroupBy(succeeded, func(o outcome) totalKey {
		return totalKey{category: o.result.Category, period: o.result.Period}
	})

	var totals []Total
	for _, category := range models.AllTaxCategories {
		for _, period := range []models.Period{models.Annual, models.Monthly} {
			group, ok := groups[totalKey{category: category, period: period}]
			if !ok {
				continue
			}
			totals = append(totals, lo.Reduce(group, func(t Total, o outcome, _ int) Total {
				t.Count++
				t.Amount = t.Amount.Add(o.result.Amount)
				t.Tax = t.Tax.Add(o.result.TaxAmount)
				t.Residual = t.Residual.Add(o.result.ResidualAmount)
				return t
			}, Total{Category: category, Period: period}))
		}
	}

	return Summary{
		Rows:   len(outcomes),
		Failed: len(failed),
		Totals: totals,
	}
}
