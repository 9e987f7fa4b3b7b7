package main

import (
	"context"
	"os"

	"fjacquet/taxcalc/cmd/batch"
	"fjacquet/taxcalc/cmd/brackets"
	"fjacquet/taxcalc/cmd/business"
	"fjacquet/taxcalc/cmd/income"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/cmd/serve"
	"fjacquet/taxcalc/cmd/vat"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(income.Cmd)
	root.Cmd.AddCommand(business.Cmd)
	root.Cmd.AddCommand(vat.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(brackets.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.ExecuteContext(context.Background()); err != nil {
		root.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
