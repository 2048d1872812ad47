// Package categorize handles transaction categorization commands
package categorize

import (
	"fjacquet/spend-insights/cmd/common"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/report"
	"fjacquet/spend-insights/internal/textutils"

	"github.com/spf13/cobra"
)

var merchant string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a merchant or whole statements",
	Long: `Categorize transactions with the keyword table, falling back to Gemini
for merchants no rule matches.

With --merchant, a single description is categorized and printed. Otherwise
the --input statements are categorized and written as CSV to --export, or
to stdout when no export file is given.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "n", "", "Merchant description to categorize")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := common.Context(cmd)
	c := root.AppContainer
	if merchant != "" {
		view := report.MerchantCategory{
			Input:    merchant,
			Merchant: textutils.CleanMerchantName(merchant),
			Category: c.GetCategorizer().CategorizeMerchant(ctx, merchant),
		}
		return common.Render(cmd.OutOrStdout(), c, view, root.SharedFlags.Format)
	}

	if err := root.RequireInputs(); err != nil {
		return err
	}
	ds, err := common.LoadDataset(ctx, c, root.SharedFlags.Inputs)
	if err != nil {
		return err
	}
	if root.SharedFlags.Export != "" {
		return common.Export(c, ds.Transactions, root.SharedFlags.Export)
	}
	return c.GetCSVWriter().WriteTransactions(cmd.OutOrStdout(), ds.Transactions)
}
