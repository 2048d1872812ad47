// Package insights implements the insights command.
package insights

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/analytics"
	analysis "fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/report"

	"github.com/spf13/cobra"
)

var income string

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask Gemini for spending insights",
	Long: `Summarize the --input statements (optionally one --month) and ask
Gemini for a handful of insight cards. When the model is unavailable a
single "AI Unavailable" card is shown instead.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&income, "income", "", "Monthly income, enables the savings rate")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := common.Context(cmd)
	if err := root.RequireInputs(); err != nil {
		return err
	}
	inc, err := common.ParseMoneyFlag("income", income)
	if err != nil {
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

	month := root.SharedFlags.Month
	summary := analysis.BuildSummary(
		analytics.Aggregate(ds.Transactions, month),
		analytics.AnalyzeTrends(ds.Transactions),
		inc)

	cards, cached, err := c.GetInsightsCache().GetOrGenerate(month, func() ([]analysis.Insight, error) {
		return c.GetRequester().Insights(ctx, summary)
	})
	if err != nil {
		c.GetLogger().WithError(err).Warn("Insights unavailable",
			logging.F(logging.FieldOperation, "insights"))
		cards = []analysis.Insight{analysis.UnavailableInsight(err)}
	}

	view := report.InsightsReport{Month: month, Cached: cached, Insights: cards}
	return common.Render(cmd.OutOrStdout(), c, view, root.SharedFlags.Format)
}
