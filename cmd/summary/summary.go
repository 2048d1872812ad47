// Package summary implements the summary command.
package summary

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending by category and month",
	Long: `Read the --input statements, categorize every transaction and print
the spending total, the category breakdown and the monthly totals.
--month restricts the summary to one month; --export also writes the
categorized transactions as CSV.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	ctx := common.Context(cmd)
	if err := root.RequireInputs(); err != nil {
		return err
	}
	c := root.AppContainer
	ds, err := common.LoadDataset(ctx, c, root.SharedFlags.Inputs)
	if err != nil {
		return err
	}
	if err := common.Export(c, ds.Transactions, root.SharedFlags.Export); err != nil {
		return err
	}

	view := report.NewSpendingSummary(ds.Transactions, root.SharedFlags.Month, ds.Ingest, ds.Stats)
	return common.Render(cmd.OutOrStdout(), c, view, root.SharedFlags.Format)
}
