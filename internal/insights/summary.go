package insights

import (
	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// SignificantChange is the |change| percentage above which a trend is
// included in the insights prompt.
var SignificantChange = decimal.NewFromInt(10)

// BuildSummary condenses aggregates and trends for the insights prompt.
// A zero income leaves income and savings rate out.
func BuildSummary(agg analytics.Aggregates, trends []models.CategoryTrend, income decimal.Decimal) Summary {
	total := agg.Total()
	s := Summary{
		Month:         agg.Month,
		TotalSpending: total,
		Categories:    analytics.SortedCategories(agg.ByCategory),
		Trends:        make([]TrendDelta, 0),
	}
	if income.IsPositive() {
		s.HasIncome = true
		s.Income = income
		s.SavingsRate = currencyutils.Percent(income.Sub(total), income).Round(1)
	}
	for _, t := range analytics.SignificantTrends(trends, SignificantChange) {
		s.Trends = append(s.Trends, TrendDelta{
			Category:   t.Category,
			FirstMonth: t.FirstMonthValue,
			LastMonth:  t.LastMonthValue,
			AvgMonthly: t.AvgMonthly,
			Change:     t.PercentChange,
			Months:     t.ObservedMonthCount,
		})
	}
	return s
}
