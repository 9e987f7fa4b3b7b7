// Package income implements the income command.
package income

import (
	"fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/models"

	"github.com/spf13/cobra"
)

var flags common.CalculationFlags

// Cmd represents the income command
var Cmd = &cobra.Command{
	Use:   "income",
	Short: "Calculate progressive income tax",
	Long: `Calculate income tax over the progressive bracket table.

Annual income up to the first bracket bound is tax-free under the default rules.
With --monthly the amount is annualised, taxed and divided back by twelve.

Example:
  taxcalc income -a 300000
  taxcalc income -a 25000 --monthly`,
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
	return common.RunCalculation(cmd.OutOrStdout(), c.GetCalculator(), c.GetReportGenerator(), models.Income, flags, c.GetLogger())
}
