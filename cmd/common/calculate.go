// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/report"
	"fjacquet/taxcalc/internal/validation"

	"github.com/spf13/cobra"
)

// Calculator is the engine surface the single-calculation commands use.
type Calculator interface {
	Calculate(input models.CalculationInput) (models.CalculationResult, error)
}

// Reporter renders a result in a named format.
type Reporter interface {
	GenerateReport(result models.CalculationResult, format string) ([]byte, error)
}

// CalculationFlags are the flags of the income, business and vat commands.
type CalculationFlags struct {
	Amount  string
	Monthly bool
	Format  string
}

// AddCalculationFlags registers the shared flags on cmd. withPeriod adds --monthly.
func AddCalculationFlags(cmd *cobra.Command, flags *CalculationFlags, withPeriod bool) {
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount to tax")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", report.FormatText, "Output format (text or json)")
	if withPeriod {
		cmd.Flags().BoolVarP(&flags.Monthly, "monthly", "m", false, "Treat the amount as monthly instead of annual")
	}
}

// RunCalculation parses the flags, runs one calculation and writes the report to w.
// Without an amount nothing is calculated and nothing is written.
func RunCalculation(w io.Writer, calc Calculator, reporter Reporter, category models.TaxCategory, flags CalculationFlags, logger logging.Logger) error {
	if flags.Amount == "" {
		logger.Warn("No amount given, nothing to calculate", logging.F(logging.FieldCategory, string(category)))
		return nil
	}

	if err := validation.ValidateReportFormat(flags.Format); err != nil {
		return err
	}

	amount, err := currencyutils.ParseAmount(flags.Amount)
	if err != nil {
		return err
	}

	input := models.NewCalculationInput(category, amount, models.PeriodFromAnnualFlag(!flags.Monthly))
	result, err := calc.Calculate(input)
	if err != nil {
		return err
	}

	out, err := reporter.GenerateReport(result, flags.Format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Calculation completed",
		logging.F(logging.FieldCategory, string(result.Category)),
		logging.F(logging.FieldPeriod, string(result.Period)),
		logging.F(logging.FieldTax, currencyutils.FormatDecimal(result.TaxAmount)),
		logging.F(logging.FieldResidual, currencyutils.FormatDecimal(result.ResidualAmount)))
	return nil
}

// Context returns the command's context, or a background context when none was set.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
