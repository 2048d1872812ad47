package analytics

import (
	"sort"

	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AnalyzeTrends compares every category's spending in the first and last
// months of txs. Both values default to zero when the category had no
// spending that month. A category whose first-month value is zero yields
// no trend. Fewer than two distinct months yields an empty slice. Trends
// are ordered by category name.
func AnalyzeTrends(txs []models.Transaction) []models.CategoryTrend {
	grid := make(map[string]Bucket)
	categories := make(map[string]struct{})
	for _, tx := range txs {
		m := tx.Month()
		if m == "" {
			continue
		}
		row, ok := grid[m]
		if !ok {
			row = Bucket{}
			grid[m] = row
		}
		cat := categoryKey(tx)
		row.add(cat, tx.Amount.Abs())
		categories[cat] = struct{}{}
	}

	trends := make([]models.CategoryTrend, 0)
	if len(grid) < 2 {
		return trends
	}

	months := make([]string, 0, len(grid))
	for m := range grid {
		months = append(months, m)
	}
	sort.Strings(months)

	names := make([]string, 0, len(categories))
	for c := range categories {
		names = append(names, c)
	}
	sort.Strings(names)

	monthCount := decimal.NewFromInt(int64(len(months)))
	for _, cat := range names {
		values := make([]models.MonthValue, 0, len(months))
		sum := decimal.Zero
		for _, m := range months {
			v := grid[m][cat]
			values = append(values, models.MonthValue{Month: m, Value: v})
			sum = sum.Add(v)
		}

		first := values[0].Value
		last := values[len(values)-1].Value
		if first.IsZero() {
			continue
		}

		trends = append(trends, models.CategoryTrend{
			Category:           models.Category(cat),
			FirstMonthValue:    first,
			LastMonthValue:     last,
			PercentChange:      last.Sub(first).Div(first).Mul(hundred).Round(2),
			ObservedMonthCount: len(months),
			AvgMonthly:         sum.Div(monthCount).Round(2),
			MonthlyValues:      values,
		})
	}
	return trends
}

// SortByMagnitude returns a copy of trends ordered by |change| descending,
// ties broken by category.
func SortByMagnitude(trends []models.CategoryTrend) []models.CategoryTrend {
	out := make([]models.CategoryTrend, len(trends))
	copy(out, trends)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].AbsChange().Cmp(out[j].AbsChange()); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SignificantTrends keeps trends whose |change| exceeds threshold percent,
// largest first.
func SignificantTrends(trends []models.CategoryTrend, threshold decimal.Decimal) []models.CategoryTrend {
	out := make([]models.CategoryTrend, 0, len(trends))
	for _, t := range trends {
		if t.AbsChange().GreaterThan(threshold) {
			out = append(out, t)
		}
	}
	return SortByMagnitude(out)
}
