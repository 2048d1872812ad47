// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/csvparser"
	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Context returns the command's context, or a background context when the
// command runs outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Dataset is the categorized transaction set built from the --input files.
type Dataset struct {
	Transactions []models.Transaction
	Ingest       csvparser.IngestStats
	Stats        models.CategorizationStats
}

// LoadDataset resolves inputs to files, ingests them and categorizes the
// merged set.
func LoadDataset(ctx context.Context, c *container.Container, inputs []string) (Dataset, error) {
	if c == nil {
		return Dataset{}, fmt.Errorf("application not initialized")
	}
	files, err := fileutils.ResolveInputs(inputs)
	if err != nil {
		return Dataset{}, err
	}

	res, err := c.GetParser().Ingest(ctx, csvparser.FileSources(files...))
	if err != nil {
		return Dataset{}, fmt.Errorf("error reading statements: %w", err)
	}

	txs, stats := c.GetCategorizer().CategorizeAll(ctx, res.Transactions)
	return Dataset{Transactions: txs, Ingest: res.Stats, Stats: stats}, nil
}

// Export writes txs to path when path is set.
func Export(c *container.Container, txs []models.Transaction, path string) error {
	if path == "" {
		return nil
	}
	if err := c.GetCSVWriter().WriteTransactionsToCSV(txs, path); err != nil {
		return fmt.Errorf("error exporting transactions: %w", err)
	}
	c.GetLogger().Info("Exported categorized transactions",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(txs)))
	return nil
}

// Render writes v to w in format.
func Render(w io.Writer, c *container.Container, v interface{}, format string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	return report.NewReportGenerator(c.GetLogger()).Write(w, v, f)
}

// ParseMoneyFlag parses a monetary flag value. Empty is zero; a negative
// amount is rejected.
func ParseMoneyFlag(name, value string) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s: %w", name, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid --%s: must not be negative", name)
	}
	return amount, nil
}
