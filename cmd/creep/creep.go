// Package creep implements the lifestyle creep command.
package creep

import (
	"fmt"

	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/analytics"

	"github.com/spf13/cobra"
)

// Cmd represents the creep command
var Cmd = &cobra.Command{
	Use:   "creep",
	Short: "Analyze lifestyle creep across months",
	Long: `Compute category trends over all --input statements and ask Gemini to
score lifestyle creep, rate each category and suggest prioritized actions.
At least two months of data are required.`,
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

	if months := analytics.Months(ds.Transactions); len(months) < 2 {
		return fmt.Errorf("lifestyle creep needs at least two months of data, got %d", len(months))
	}

	creepReport, err := c.GetRequester().LifestyleCreep(ctx, analytics.AnalyzeTrends(ds.Transactions))
	if err != nil {
		return err
	}
	return common.Render(cmd.OutOrStdout(), c, creepReport, root.SharedFlags.Format)
}
