package insights

import (
	"fmt"
	"strings"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

const currency = "USD"

// money renders whole dollars, as the prompt tables do.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(0)
}

func signed(change string) string {
	if !strings.HasPrefix(change, "-") && change != "0.0" {
		return "+" + change
	}
	return change
}

func insightsPrompt(s Summary) string {
	var sb strings.Builder
	sb.WriteString("You are a financial coach for young professionals who are earning their first real income. ")
	sb.WriteString("Your primary goal is to detect and explain lifestyle creep patterns in detail.\n\n")

	sb.WriteString("SPENDING DATA:\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Category, money(c.Amount))
	}
	fmt.Fprintf(&sb, "Total spending: %s\n", money(s.TotalSpending))
	if s.HasIncome {
		fmt.Fprintf(&sb, "Monthly income: %s\n", money(s.Income))
		fmt.Fprintf(&sb, "Savings rate: %s%%\n", s.SavingsRate.StringFixed(1))
	}

	if len(s.Trends) > 0 {
		sb.WriteString("\nCATEGORY-SPECIFIC LIFESTYLE CREEP ANALYSIS:\n")
		for _, t := range s.Trends {
			fmt.Fprintf(&sb, "- %s: Started at %s, now %s (%s%% over %d months)\n",
				t.Category,
				currencyutils.FormatAmount(t.FirstMonth, currency),
				currencyutils.FormatAmount(t.LastMonth, currency),
				signed(t.Change.StringFixed(1)),
				t.Months)
		}
	}

	sb.WriteString(`
INSTRUCTIONS:
1. If any category shows more than 15% increase, create a dedicated insight with the exact category, percentage, dollar amounts before and after, and one specific action.
2. Use the actual numbers above.
3. If two or more categories increased by more than 30%, create a separate insight for each.
4. Be friendly but direct.

Return ONLY a JSON array with 4-6 insights. Each insight MUST have:
- type: "savings" | "warning" | "alert" | "success" | "tip"
- icon: single emoji
- title: specific, e.g. "Rideshare Spending Up 260%"
- message: explanation with exact numbers (max 60 words)
`)
	return sb.String()
}

func creepPrompt(trends []models.CategoryTrend) string {
	var sb strings.Builder
	sb.WriteString("You are analyzing lifestyle creep for a user. Provide a comprehensive analysis in second person.\n\n")
	sb.WriteString("CATEGORY TRENDS:\n")
	for _, t := range trends {
		fmt.Fprintf(&sb, "- %s: %s -> %s (%s%% over %d months)\n",
			t.Category, money(t.FirstMonthValue), money(t.LastMonthValue),
			signed(t.PercentChange.StringFixed(1)), t.ObservedMonthCount)
	}
	sb.WriteString(`
Provide a detailed lifestyle creep report as JSON:
{
  "overallScore": 0-100 (100 = severe creep),
  "summary": "2-3 sentence overview",
  "categories": [{"name": "...", "severity": "low" | "medium" | "high" | "critical", "change": number, "analysis": "...", "recommendation": "..."}],
  "actionItems": [{"priority": "high" | "medium" | "low", "action": "...", "category": "...", "impact": "..."}],
  "positiveHabits": ["..."]
}

Return ONLY the JSON object, no other text.
`)
	return sb.String()
}

func goalPrompt(g GoalRequest, required, projected string) string {
	return fmt.Sprintf(`A user wants to save %s for %q within %d months.
Monthly income: %s
Average monthly spending: %s
Projected monthly savings: %s
Required monthly savings: %s

Assess whether the goal is realistic and give one or two concrete suggestions.
Return ONLY a JSON object: {"onTrack": true | false, "message": "max 60 words, second person"}
`,
		currencyutils.FormatAmount(g.Target, currency), g.Name, g.Months,
		currencyutils.FormatAmount(g.Income, currency),
		currencyutils.FormatAmount(g.MonthlySpending, currency),
		projected, required)
}
