// Package brackets implements the brackets command, which shows the active rule set.
package brackets

import (
	"fmt"
	"io"

	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/store"
	"fjacquet/taxcalc/internal/taxengine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	amount     string
	exportFile string
)

// Cmd represents the brackets command
var Cmd = &cobra.Command{
	Use:   "brackets",
	Short: "Show the active tax rules",
	Long: `Show the active rule set: the income bracket table, the business rate and the VAT rate.

With --amount the annual amount is split into its slabs and the tax of each slab is shown.
With --export the active rule set is written as YAML, ready to be edited and passed back
with --rules.

Example:
  taxcalc brackets --amount 400000
  taxcalc brackets --export rules.yaml`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Annual amount to break down by bracket")
	Cmd.Flags().StringVar(&exportFile, "export", "", "Write the active rule set to this YAML file")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	rules := c.GetCalculator().Rules()
	currency := c.GetConfig().Tax.CurrencySymbol
	w := cmd.OutOrStdout()

	if exportFile != "" {
		if err := store.NewRuleStore(exportFile, c.GetLogger()).Save(rules); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Rule set %q written to %s\n", rules.Name, exportFile)
		return nil
	}

	writeRules(w, rules)

	if amount == "" {
		return nil
	}
	annual, err := currencyutils.ParseAmount(amount)
	if err != nil {
		return err
	}
	slabs, err := taxengine.Breakdown(rules.Brackets, annual)
	if err != nil {
		return err
	}
	writeBreakdown(w, slabs, currency)

	c.GetLogger().Debug("Bracket breakdown shown",
		logging.F(logging.FieldAmount, annual.String()),
		logging.F(logging.FieldCount, len(slabs)))
	return nil
}

func writeRules(w io.Writer, rules *taxengine.RuleSet) {
	_, _ = fmt.Fprintf(w, "Rule set: %s\n", rules.Name)
	_, _ = fmt.Fprintln(w, "Income brackets:")
	for _, b := range rules.Brackets.Brackets() {
		_, _ = fmt.Fprintf(w, "  %s\n", b)
	}
	_, _ = fmt.Fprintf(w, "Business rate: %s\n", rules.BusinessRate)
	_, _ = fmt.Fprintf(w, "VAT rate: %s\n", rules.VATRate)
	if rules.AnnualIncomeExemption {
		if limit, ok := rules.Brackets.FirstUpperBound(); ok {
			_, _ = fmt.Fprintf(w, "Annual income up to %s is exempt\n", limit)
		}
	}
}

func writeBreakdown(w io.Writer, slabs []taxengine.SlabTax, currency string) {
	_, _ = fmt.Fprintln(w, "Breakdown:")
	total := decimal.Zero
	for _, s := range slabs {
		_, _ = fmt.Fprintf(w, "  %s taxed at %s: %s\n",
			currencyutils.FormatAmount(s.Taxable, currency), s.Bracket.Rate,
			currencyutils.FormatAmount(s.Tax, currency))
		total = total.Add(s.Tax)
	}
	_, _ = fmt.Fprintf(w, "Slab total: %s\n", currencyutils.FormatAmount(total, currency))
}
