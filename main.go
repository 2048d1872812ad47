package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fjacquet/spend-insights/cmd/budget"
	"fjacquet/spend-insights/cmd/categorize"
	"fjacquet/spend-insights/cmd/creep"
	"fjacquet/spend-insights/cmd/goal"
	"fjacquet/spend-insights/cmd/insights"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/cmd/rules"
	"fjacquet/spend-insights/cmd/summary"
	"fjacquet/spend-insights/cmd/trends"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(trends.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(creep.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
