// Package common provides CSV reading and writing shared by the batch command and tests.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/taxcalc/internal/fileutils"
	"fjacquet/taxcalc/internal/logging"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for CSV input and output.
var Delimiter rune = ','

// SetDelimiter sets the field separator for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true
	return reader
}

// ReadCSV decodes CSV data with a header row into a slice of TCSVRow.
func ReadCSV[TCSVRow any](r io.Reader) ([]TCSVRow, error) {
	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(newReader(r), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadCSVFile reads a CSV file into a slice of structs using gocsv.
// TCSVRow is the struct type whose csv tags map to the header columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Reading CSV file", logging.F(logging.FieldInputFile, filePath))

	file, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TCSVRow](file)
	if err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, err
	}

	logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteCSV encodes rows with a header line.
func WriteCSV[TCSVRow any](rows []TCSVRow, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCSVFile writes rows to csvFile, creating its directory if needed.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, csvFile string, logger logging.Logger) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteCSV(rows, file); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return err
	}

	logger.Info("Successfully wrote CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}
