// Package vat implements the vat command.
package vat

import (
	"fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/models"

	"github.com/spf13/cobra"
)

var flags common.CalculationFlags

// Cmd represents the vat command
var Cmd = &cobra.Command{
	Use:   "vat",
	Short: "Calculate VAT",
	Long: `Calculate VAT at the flat VAT rate (15% by default). The period does not apply.

Example:
  taxcalc vat -a 1000`,
	RunE: run,
}

func init() {
	common.AddCalculationFlags(Cmd, &flags, false)
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return common.RunCalculation(cmd.OutOrStdout(), c.GetCalculator(), c.GetReportGenerator(), models.VAT, flags, c.GetLogger())
}
