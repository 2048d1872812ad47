// Package common provides the CSV export shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/gocarina/gocsv"
)

// exportRow is the on-disk shape of a categorized transaction. Amounts are
// written with exactly two decimals.
type exportRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// CSVWriter writes categorized transactions with a fixed delimiter.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a writer. A zero delimiter writes commas.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

// WriteTransactions writes a header and one row per transaction to w.
func (cw *CSVWriter) WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	rows := make([]exportRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, exportRow{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category.String(),
		})
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = cw.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		cw.logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to csvFile, creating parent
// directories as needed.
func (cw *CSVWriter) WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) (err error) {
	logger := cw.logger.WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDelimiter, string(cw.delimiter)))
	logger.Info("Writing transactions to CSV file")

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing CSV file: %w", cerr)
		}
	}()

	if err := cw.WriteTransactions(file, transactions); err != nil {
		return err
	}

	logger.Info("Successfully wrote transactions to CSV file")
	return nil
}
