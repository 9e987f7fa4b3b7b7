package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/config"
	"fjacquet/taxcalc/internal/container"
	"fjacquet/taxcalc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputCSV = `category,amount,period
income,300000,annual
income,25000,monthly
business,100000,annual
vat,1000,
payroll,10,annual
`

func setup(t *testing.T, input, output string) *bytes.Buffer {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), &logging.MockLogger{})
	require.NoError(t, err)
	root.SetContainer(c)

	inputFile, outputFile = input, output
	var out bytes.Buffer
	Cmd.SetOut(&out)
	t.Cleanup(func() {
		inputFile, outputFile = "", ""
		Cmd.SetOut(nil)
		root.SetContainer(nil)
	})
	return &out
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(inputCSV), 0600))
	return path
}

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Equal(t, "i", Cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "o", Cmd.Flags().Lookup("output").Shorthand)
}

func TestBatchCommand_WritesOutputFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out", "results.csv")
	out := setup(t, writeInput(t), outputPath)

	require.NoError(t, run(Cmd, nil))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	expected := "category,period,amount,tax,residual,error\n" +
		"income,annual,300000.00,59032.00,240968.00,\n" +
		"income,monthly,25000.00,4919.33,20080.67,\n" +
		"business,annual,100000.00,28000.00,72000.00,\n" +
		"vat,annual,1000.00,150.00,850.00,\n" +
		"payroll,annual,10,,,\"unknown tax category 'payroll' (expected income, business or vat)\"\n"
	assert.Equal(t, expected, string(data))

	summary := out.String()
	assert.Contains(t, summary, "Processed 5 rows, 1 failed\n")
	assert.Contains(t, summary, "Income Tax (annual): 1 rows, tax R59032.00, remaining R240968.00\n")
	assert.Contains(t, summary, "VAT (annual): 1 rows, tax R150.00, remaining R850.00\n")
}

func TestBatchCommand_WritesToStdout(t *testing.T) {
	out := setup(t, writeInput(t), "")

	require.NoError(t, run(Cmd, nil))
	assert.Contains(t, out.String(), "category,period,amount,tax,residual,error\n")
	assert.Contains(t, out.String(), "business,annual,100000.00,28000.00,72000.00,\n")
	assert.NotContains(t, out.String(), "Processed")
}

func TestBatchCommand_MissingInput(t *testing.T) {
	setup(t, filepath.Join(t.TempDir(), "missing.csv"), "")

	err := run(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening CSV file")
}
