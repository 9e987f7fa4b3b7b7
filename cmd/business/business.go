// Package business implements the business command.
package business

import (
	"fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/models"

	"github.com/spf13/cobra"
)

var flags common.CalculationFlags

// Cmd represents the business command
var Cmd = &cobra.Command{
	Use:   "business",
	Short: "Calculate flat business tax",
	Long: `Calculate business tax at the flat business rate (28% by default).

Example:
  taxcalc business -a 100000
  taxcalc business -a 8000 --monthly --format json`,
	RunE: run,
}

func init() {
	common.AddCalculationFlags(Cmd, &flags, true)
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return common.RunCalculation(cmd.OutOrStdout(), c.GetCalculator(), c.GetReportGenerator(), models.Business, flags, c.GetLogger())
}
