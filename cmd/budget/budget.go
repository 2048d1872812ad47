// Package budget implements the budget command.
package budget

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/analytics"
	budgeting "fjacquet/spend-insights/internal/budget"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/report"

	"github.com/spf13/cobra"
)

var (
	income string
	allocs []string
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Compare one month of spending with a needs/wants/savings budget",
	Long: `Split --income by the configured needs/wants/savings percentages and
compare it with one month of spending from the --input statements. With
--alloc category=amount pairs, per-category allocations are checked too.
The month is --month, or the latest month in the data.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&income, "income", "", "Monthly income")
	Cmd.Flags().StringArrayVar(&allocs, "alloc", nil, "Category allocation as category=amount (repeatable)")
	_ = Cmd.MarkFlagRequired("income")
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

	var plan *budgeting.Plan
	if len(allocs) > 0 {
		allocations, err := budgeting.ParseAllocations(allocs)
		if err != nil {
			return err
		}
		plan = &budgeting.Plan{Income: inc, Allocations: allocations}
		if err := plan.Validate(); err != nil {
			return err
		}
	}

	c := root.AppContainer
	ds, err := common.LoadDataset(ctx, c, root.SharedFlags.Inputs)
	if err != nil {
		return err
	}

	month := root.SharedFlags.Month
	if month == "" {
		if months := analytics.Months(ds.Transactions); len(months) > 0 {
			month = months[len(months)-1]
		}
	}
	c.GetLogger().Debug("Budget month selected", logging.F("month", month))
	byCategory := analytics.Aggregate(ds.Transactions, month).ByCategory

	view := report.BudgetReport{Status: budgeting.Status(byCategory, inc, c.BudgetSplit()), Plan: plan}
	if plan != nil {
		view.Variances = plan.Compare(byCategory)
	}
	return common.Render(cmd.OutOrStdout(), c, view, root.SharedFlags.Format)
}
