// Package batch runs many tax calculations over a bounded worker pool.
package batch

import (
	"context"
	"time"

	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/metrics"
	"fjacquet/taxcalc/internal/models"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a non-positive worker count is given.
const DefaultWorkers = 4

// Calculator is the part of the tax engine the processor needs.
type Calculator interface {
	Calculate(input models.CalculationInput) (models.CalculationResult, error)
}

// InputRow is one line of the batch input CSV.
type InputRow struct {
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
	Period   string `csv:"period"`
}

// ResultRow is one line of the batch output CSV. Error is empty for successful rows.
type ResultRow struct {
	Category string `csv:"category"`
	Period   string `csv:"period"`
	Amount   string `csv:"amount"`
	Tax      string `csv:"tax"`
	Residual string `csv:"residual"`
	Error    string `csv:"error"`
}

// Processor calculates rows concurrently and returns results in input order.
type Processor struct {
	calc    Calculator
	workers int
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewProcessor creates a processor. m may be nil.
func NewProcessor(calc Calculator, workers int, logger logging.Logger, m *metrics.Metrics) *Processor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		calc:    calc,
		workers: workers,
		logger:  logger,
		metrics: m,
	}
}

// Process calculates every row. Invalid rows are reported in their ResultRow and do not
// stop the batch; only cancellation of ctx does.
func (p *Processor) Process(ctx context.Context, rows []InputRow) ([]ResultRow, Summary, error) {
	start := time.Now()
	out := make([]ResultRow, len(rows))
	outcomes := make([]outcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = p.processRow(i, rows[i])
			out[i] = outcomes[i].row()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	summary := summarize(outcomes)
	p.logger.Info("Batch processed",
		logging.F(logging.FieldCount, summary.Rows),
		logging.F(logging.FieldFailed, summary.Failed),
		logging.F(logging.FieldDuration, time.Since(start).String()))
	return out, summary, nil
}

// outcome keeps the typed result alongside the raw row for summarising.
type outcome struct {
	raw    InputRow
	result models.CalculationResult
	err    error
}

func (o outcome) row() ResultRow {
	if o.err != nil {
		return ResultRow{
			Category: o.raw.Category,
			Period:   o.raw.Period,
			Amount:   o.raw.Amount,
			Error:    o.err.Error(),
		}
	}
	return ResultRow{
		Category: string(o.result.Category),
		Period:   string(o.result.Period),
		Amount:   currencyutils.FormatDecimal(o.result.Amount),
		Tax:      currencyutils.FormatDecimal(o.result.TaxAmount),
		Residual: currencyutils.FormatDecimal(o.result.ResidualAmount),
	}
}

func (p *Processor) processRow(index int, raw InputRow) outcome {
	input, err := ParseRow(raw)
	if err != nil {
		p.metrics.Observe(input, models.CalculationResult{}, err)
		p.logger.Warn("Skipping invalid row",
			logging.F(logging.FieldRow, index+1),
			logging.F(logging.FieldError, err.Error()))
		return outcome{raw: raw, err: err}
	}

	result, err := p.calc.Calculate(input)
	p.metrics.Observe(input, result, err)
	if err != nil {
		p.logger.Warn("Calculation failed",
			logging.F(logging.FieldRow, index+1),
			logging.F(logging.FieldError, err.Error()))
		return outcome{raw: raw, err: err}
	}
	return outcome{raw: raw, result: result}
}

// ParseRow converts the text fields of a row into a calculation input.
func ParseRow(raw InputRow) (models.CalculationInput, error) {
	category, err := models.ParseTaxCategory(raw.Category)
	if err != nil {
		return models.CalculationInput{}, err
	}
	period := models.Annual
	if category.IsPeriodic() {
		period, err = models.ParsePeriod(raw.Period)
		if err != nil {
			return models.CalculationInput{Category: category}, err
		}
	}
	amount, err := currencyutils.ParseAmount(raw.Amount)
	if err != nil {
		return models.CalculationInput{Category: category, Period: period}, err
	}
	return models.NewCalculationInput(category, amount, period), nil
}
