// Package report renders calculation results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/models"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ReportGenerator renders calculation results in the supported formats.
type ReportGenerator struct {
	logger   logging.Logger
	currency string
}

// NewReportGenerator creates a generator that prefixes amounts with currency.
// An empty currency selects the default symbol.
func NewReportGenerator(logger logging.Logger, currency string) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if currency == "" {
		currency = currencyutils.DefaultSymbol
	}
	return &ReportGenerator{
		logger:   logger.WithField("component", "ReportGenerator"),
		currency: currency,
	}
}

// ResultView is the JSON shape of a calculation result. Amounts are fixed to two places.
type ResultView struct {
	Category       string `json:"category"`
	Period         string `json:"period"`
	Amount         string `json:"amount"`
	TaxAmount      string `json:"tax_amount"`
	ResidualAmount string `json:"residual_amount"`
	Message        string `json:"message"`
}

// NewResultView converts result into its display form.
func NewResultView(result models.CalculationResult, currency string) ResultView {
	return ResultView{
		Category:       string(result.Category),
		Period:         string(result.Period),
		Amount:         currencyutils.FormatDecimal(result.Amount),
		TaxAmount:      currencyutils.FormatDecimal(result.TaxAmount),
		ResidualAmount: currencyutils.FormatDecimal(result.ResidualAmount),
		Message:        RemainingLine(result, currency),
	}
}

// TaxLine is the first line of the text report.
func TaxLine(result models.CalculationResult, currency string) string {
	return fmt.Sprintf("Total tax amount deducted: %s", currencyutils.FormatAmount(result.TaxAmount, currency))
}

// RemainingLine is the second line of the text report. VAT results read "after VAT".
func RemainingLine(result models.CalculationResult, currency string) string {
	suffix := "tax"
	if result.Category == models.VAT {
		suffix = "VAT"
	}
	return fmt.Sprintf("Amount remaining after %s: %s", suffix, currencyutils.FormatAmount(result.ResidualAmount, currency))
}

// GenerateReport renders result in format (text or json).
func (g *ReportGenerator) GenerateReport(result models.CalculationResult, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return g.generateTextReport(result), nil
	case FormatJSON:
		return g.generateJSONReport(result)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(result models.CalculationResult) []byte {
	var b strings.Builder
	b.WriteString(TaxLine(result, g.currency))
	b.WriteString("\n")
	b.WriteString(RemainingLine(result, g.currency))
	b.WriteString("\n")
	return []byte(b.String())
}

func (g *ReportGenerator) generateJSONReport(result models.CalculationResult) ([]byte, error) {
	out, err := json.MarshalIndent(NewResultView(result, g.currency), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}
