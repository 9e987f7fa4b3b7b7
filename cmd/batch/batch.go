// Package batch implements the batch command, which taxes every row of a CSV file.
package batch

import (
	"fmt"
	"io"

	cmdcommon "fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/batch"
	"fjacquet/taxcalc/internal/common"
	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Calculate tax for every row of a CSV file",
	Long: `Calculate tax for every row of a CSV file with the columns category, amount and period.

Rows are processed concurrently (batch.workers) and written in input order with the
columns category, period, amount, tax, residual and error. Invalid rows are reported
in the error column and do not stop the batch. Without --output the results are
written to standard output.

Example:
  taxcalc batch -i payroll.csv -o payroll-tax.csv`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default: stdout)")
	_ = Cmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger()

	rows, err := common.ReadCSVFile[batch.InputRow](inputFile, logger)
	if err != nil {
		return err
	}

	results, summary, err := c.GetBatchProcessor().Process(cmdcommon.Context(cmd), rows)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if outputFile == "" {
		if err := common.WriteCSV(results, cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		if err := common.WriteCSVFile(results, outputFile, logger); err != nil {
			return err
		}
		writeSummary(cmd.OutOrStdout(), summary, c.GetConfig().Tax.CurrencySymbol)
	}

	logger.Info("Batch command completed",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldCount, summary.Rows),
		logging.F(logging.FieldFailed, summary.Failed))
	return nil
}

func writeSummary(w io.Writer, summary batch.Summary, currency string) {
	_, _ = fmt.Fprintf(w, "Processed %d rows, %d failed\n", summary.Rows, summary.Failed)
	for _, total := range summary.Totals {
		_, _ = fmt.Fprintf(w, "%s (%s): %d rows, tax %s, remaining %s\n",
			total.Category.Label(), total.Period, total.Count,
			currencyutils.FormatAmount(total.Tax, currency),
			currencyutils.FormatAmount(total.Residual, currency))
	}
}
