package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

const currency = "USD"

func money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, currency)
}

func signedPercent(d decimal.Decimal) string {
	s := d.StringFixed(1) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeText(w io.Writer, v interface{}) error {
	switch r := v.(type) {
	case SpendingSummary:
		return writeSummary(w, r)
	case *SpendingSummary:
		return writeSummary(w, *r)
	case MerchantCategory:
		_, err := fmt.Fprintf(w, "%s -> %s\n", merchantLabel(r), r.Category)
		return err
	case TrendsReport:
		return writeTrends(w, r)
	case InsightsReport:
		return writeInsights(w, r)
	case insights.CreepReport:
		return writeCreep(w, r)
	case GoalReport:
		return writeGoal(w, r)
	case BudgetReport:
		return writeBudget(w, r)
	case []models.CategoryConfig:
		return writeRules(w, r)
	default:
		return fmt.Errorf("text output not supported for %T", v)
	}
}

func merchantLabel(r MerchantCategory) string {
	if r.Merchant == "" || r.Merchant == r.Input {
		return r.Input
	}
	return fmt.Sprintf("%s (%s)", r.Input, r.Merchant)
}

func writeSummary(w io.Writer, s SpendingSummary) error {
	fmt.Fprintln(w, "Spending summary")
	t := newTable(w)
	if s.Range != "" {
		fmt.Fprintf(t, "Period:\t%s\n", s.Range)
	}
	if s.Month != "" {
		fmt.Fprintf(t, "Month:\t%s\n", s.Month)
	}
	fmt.Fprintf(t, "Transactions:\t%d\n", s.Transactions)
	fmt.Fprintf(t, "Total:\t%s\n", money(s.Total))
	fmt.Fprintf(t, "Monthly average:\t%s\n", money(s.MonthlyAverage))
	if err := t.Flush(); err != nil {
		return err
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(w)
		t = newTable(w)
		fmt.Fprintln(t, "CATEGORY\tAMOUNT\tSHARE")
		for _, c := range s.Categories {
			fmt.Fprintf(t, "%s\t%s\t%s%%\n", c.Category, money(c.Amount), c.Share.StringFixed(1))
		}
		if err := t.Flush(); err != nil {
			return err
		}
	}

	if len(s.ByMonth) > 1 {
		fmt.Fprintln(w)
		t = newTable(w)
		fmt.Fprintln(t, "MONTH\tAMOUNT")
		for _, m := range s.ByMonth.Keys() {
			fmt.Fprintf(t, "%s\t%s\n", m, money(s.ByMonth[m]))
		}
		if err := t.Flush(); err != nil {
			return err
		}
	}

	c := s.Categorization
	if c.Total > 0 {
		fmt.Fprintf(w, "\nCategorized %d transactions: %d by rule, %d by AI, %d fallback\n",
			c.Total, c.ByRule, c.ByAI, c.Fallback)
	}
	if s.Ingest.Files > 0 {
		fmt.Fprintf(w, "Read %d file(s), %d row(s) skipped, %d filtered, %d duplicate(s)\n",
			s.Ingest.Files, s.Ingest.Skipped, s.Ingest.Filtered, s.Ingest.Duplicates)
	}
	return nil
}

func writeTrends(w io.Writer, r TrendsReport) error {
	if len(r.Trends) == 0 {
		_, err := fmt.Fprintln(w, "No category trends available.")
		return err
	}
	if len(r.Months) > 0 {
		fmt.Fprintf(w, "Trends over %d month(s): %s to %s\n\n", len(r.Months), r.Months[0], r.Months[len(r.Months)-1])
	}
	t := newTable(w)
	fmt.Fprintln(t, "CATEGORY\tFIRST\tLAST\tCHANGE\tAVG/MONTH\tMONTHS")
	for _, tr := range r.Trends {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%d\n",
			tr.Category, money(tr.FirstMonthValue), money(tr.LastMonthValue),
			signedPercent(tr.PercentChange), money(tr.AvgMonthly), tr.ObservedMonthCount)
	}
	return t.Flush()
}

func writeInsights(w io.Writer, r InsightsReport) error {
	if len(r.Insights) == 0 {
		_, err := fmt.Fprintln(w, "No insights returned.")
		return err
	}
	for i, in := range r.Insights {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", in.Icon, in.Title)
		if _, err := fmt.Fprintf(w, "   %s\n", in.Message); err != nil {
			return err
		}
	}
	return nil
}

func writeCreep(w io.Writer, r insights.CreepReport) error {
	fmt.Fprintf(w, "Lifestyle creep score: %d/100\n", r.OverallScore)
	if r.Summary != "" {
		fmt.Fprintln(w, r.Summary)
	}

	if len(r.Categories) > 0 {
		fmt.Fprintln(w)
		t := newTable(w)
		fmt.Fprintln(t, "CATEGORY\tSEVERITY\tCHANGE\tANALYSIS")
		for _, c := range r.Categories {
			fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", c.Name, c.Severity,
				signedPercent(decimal.NewFromFloat(c.Change)), c.Analysis)
		}
		if err := t.Flush(); err != nil {
			return err
		}
	}

	if len(r.ActionItems) > 0 {
		fmt.Fprintln(w, "\nAction items:")
		for _, a := range r.ActionItems {
			line := fmt.Sprintf("  [%s] %s", a.Priority, a.Action)
			if a.Impact != "" {
				line += " (" + a.Impact + ")"
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(r.PositiveHabits) > 0 {
		fmt.Fprintln(w, "\nPositive habits:")
		for _, h := range r.PositiveHabits {
			fmt.Fprintf(w, "  + %s\n", h)
		}
	}
	return nil
}

func writeGoal(w io.Writer, r GoalReport) error {
	status := "off track"
	if r.Analysis.OnTrack {
		status = "on track"
	}
	name := r.Goal.Name
	if name == "" {
		name = "Savings goal"
	}
	fmt.Fprintf(w, "%s: %s\n", name, status)
	t := newTable(w)
	fmt.Fprintf(t, "Target:\t%s in %d month(s)\n", money(r.Goal.Target), r.Goal.Months)
	fmt.Fprintf(t, "Required monthly:\t%s\n", money(r.Analysis.RequiredMonthly))
	fmt.Fprintf(t, "Projected monthly savings:\t%s\n", money(r.Analysis.ProjectedSavings))
	if err := t.Flush(); err != nil {
		return err
	}
	if r.Analysis.Message != "" {
		fmt.Fprintf(w, "\n%s\n", r.Analysis.Message)
	}
	return nil
}

func writeBudget(w io.Writer, r BudgetReport) error {
	s := r.Status
	fmt.Fprintf(w, "Budget for income %s (%d/%d/%d)\n", money(s.Income), s.Split.Needs, s.Split.Wants, s.Split.Savings)
	t := newTable(w)
	fmt.Fprintln(t, "TYPE\tBUDGET\tACTUAL\tSTATUS")
	fmt.Fprintf(t, "needs\t%s\t%s\t%s\n", money(s.Needs.Budget), money(s.Needs.Actual), overLabel(s.Needs.Over))
	fmt.Fprintf(t, "wants\t%s\t%s\t%s\n", money(s.Wants.Budget), money(s.Wants.Actual), overLabel(s.Wants.Over))
	fmt.Fprintf(t, "savings\t%s\t%s\t%s\n", money(s.SavingsTarget), money(s.Saved),
		overLabel(s.Saved.LessThan(s.SavingsTarget)))
	if err := t.Flush(); err != nil {
		return err
	}

	if len(r.Variances) > 0 {
		fmt.Fprintln(w)
		t = newTable(w)
		fmt.Fprintln(t, "CATEGORY\tALLOCATED\tACTUAL\tREMAINING")
		for _, v := range r.Variances {
			fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", v.Category, money(v.Allocated), money(v.Actual), money(v.Remaining))
		}
		if err := t.Flush(); err != nil {
			return err
		}
	}
	if r.Plan != nil {
		fmt.Fprintf(w, "\nUnallocated: %s\n", money(r.Plan.Remaining()))
	}
	return nil
}

func overLabel(over bool) string {
	if over {
		return "over"
	}
	return "ok"
}

func writeRules(w io.Writer, rules []models.CategoryConfig) error {
	for _, r := range rules {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Name, strings.Join(r.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}
