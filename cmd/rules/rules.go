// Package rules implements the rules command.
package rules

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"

	"github.com/spf13/cobra"
)

var savePath string

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the keyword table used for categorization",
	Long: `Print the ordered keyword table, either the built-in one or the one
loaded from categories.yaml. With --save the table is written as a
categories.yaml that can be edited and loaded back via categories.file.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&savePath, "save", "", "Write the table to this YAML file")
}

func run(cmd *cobra.Command, args []string) error {
	c := root.AppContainer
	configs := c.GetCategorizer().Rules().Rules().Configs()
	if savePath != "" {
		return c.GetStore().SaveCategories(savePath, configs)
	}
	return common.Render(cmd.OutOrStdout(), c, configs, root.SharedFlags.Format)
}
