// Package trends implements the trends command.
package trends

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var minChange float64

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Show how each category changed from the first to the last month",
	Long: `Compare every category's spending in its first and last observed month
over all --input statements. The --month filter does not apply. Trends are
ordered by the size of the change; --min-change hides smaller moves.`,
	RunE: run,
}

func init() {
	Cmd.Flags().Float64Var(&minChange, "min-change", 0, "Only show trends whose |change| in percent exceeds this value")
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

	trends := analytics.SortByMagnitude(analytics.AnalyzeTrends(ds.Transactions))
	if minChange > 0 {
		trends = analytics.SignificantTrends(trends, decimal.NewFromFloat(minChange))
	}
	view := report.TrendsReport{Months: analytics.Months(ds.Transactions), Trends: trends}
	return common.Render(cmd.OutOrStdout(), c, view, root.SharedFlags.Format)
}
