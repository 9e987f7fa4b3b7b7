package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/taxcalc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
	Period   string `csv:"period"`
}

func withDelimiter(t *testing.T, delim rune) {
	t.Helper()
	previous := Delimiter
	SetDelimiter(delim)
	t.Cleanup(func() { SetDelimiter(previous) })
}

func TestReadCSVFile(t *testing.T) {
	csvContent := "category,amount,period\nincome,300000,annual\nvat,1000,\n,,\nbusiness,25000,monthly\n"
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0600))

	logger := &logging.MockLogger{}
	rows, err := ReadCSVFile[testRow](path, logger)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, testRow{Category: "income", Amount: "300000", Period: "annual"}, rows[0])
	assert.Equal(t, "", rows[1].Period)
	assert.Equal(t, testRow{}, rows[2])
	assert.Equal(t, "monthly", rows[3].Period)
	assert.True(t, logger.HasEntry("INFO", "Successfully read CSV data"))
}

func TestReadCSVFile_Missing(t *testing.T) {
	_, err := ReadCSVFile[testRow](filepath.Join(t.TempDir(), "missing.csv"), &logging.MockLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening CSV file")
}

func TestReadCSV_CustomDelimiter(t *testing.T) {
	withDelimiter(t, ';')

	rows, err := ReadCSV[testRow](strings.NewReader("category;amount;period\nincome;1 000,50;monthly\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1 000,50", rows[0].Amount)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []testRow{
		{Category: "income", Amount: "300000.00", Period: "annual"},
		{Category: "vat", Amount: "1000.00", Period: "annual"},
	}

	require.NoError(t, WriteCSV(rows, &buf))
	assert.Equal(t, "category,amount,period\nincome,300000.00,annual\nvat,1000.00,annual\n", buf.String())
}

func TestWriteCSVFile_CreatesDirectory(t *testing.T) {
	withDelimiter(t, ';')
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	err := WriteCSVFile([]testRow{{Category: "business", Amount: "100000", Period: "annual"}}, path, &logging.MockLogger{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "category;amount;period\nbusiness;100000;annual\n", string(data))
}

func TestWriteCSVFile_NilRows(t *testing.T) {
	var rows []testRow
	err := WriteCSVFile(rows, filepath.Join(t.TempDir(), "x.csv"), &logging.MockLogger{})
	assert.EqualError(t, err, "cannot write nil rows to CSV")
}
