// Package goal implements the savings goal command.
package goal

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	name   string
	target string
	months int
	income string
)

// Cmd represents the goal command
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Check whether a savings goal is reachable",
	Long: `Compare the monthly saving a goal needs (target / months) with what
income minus average monthly spending leaves, and ask Gemini for advice.
Average spending comes from the --input statements; without inputs it is
taken as zero.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&name, "name", "", "Goal name")
	Cmd.Flags().StringVar(&target, "target", "", "Amount to save")
	Cmd.Flags().IntVar(&months, "months", 12, "Months to reach the target")
	Cmd.Flags().StringVar(&income, "income", "", "Monthly income")
	_ = Cmd.MarkFlagRequired("target")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := common.Context(cmd)
	tgt, err := common.ParseMoneyFlag("target", target)
	if err != nil {
		return err
	}
	inc, err := common.ParseMoneyFlag("income", income)
	if err != nil {
		return err
	}

	c := root.AppContainer
	spending := decimal.Zero
	if len(root.SharedFlags.Inputs) > 0 {
		ds, err := common.LoadDataset(ctx, c, root.SharedFlags.Inputs)
		if err != nil {
			return err
		}
		spending = analytics.Average(analytics.Aggregate(ds.Transactions, "").ByMonth).Round(2)
	}

	req := insights.GoalRequest{Name: name, Target: tgt, Months: months, Income: inc, MonthlySpending: spending}
	analysis, err := c.GetRequester().Goal(ctx, req)
	if err != nil {
		return err
	}
	return common.Render(cmd.OutOrStdout(), c, report.GoalReport{Goal: req, Analysis: analysis}, root.SharedFlags.Format)
}
