// Package analytics buckets categorized transactions by day, month and
// category, and derives month-over-month category trends. Every function
// is pure: inputs are never modified and results share no state.
package analytics

import (
	"sort"

	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Bucket maps a day, month or category key to a summed magnitude.
type Bucket map[string]decimal.Decimal

// Total sums every value in the bucket.
func (b Bucket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Keys returns the bucket keys in ascending order. Day and month keys are
// ISO formatted, so this is also chronological order.
func (b Bucket) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b Bucket) add(key string, amount decimal.Decimal) {
	if cur, ok := b[key]; ok {
		b[key] = cur.Add(amount)
		return
	}
	b[key] = amount
}

// Aggregates are three partitions of the same spending total.
type Aggregates struct {
	// Month is the filter the aggregates were built with, "" for all.
	Month      string `json:"month,omitempty" yaml:"month,omitempty"`
	Count      int    `json:"count" yaml:"count"`
	ByDay      Bucket `json:"byDay" yaml:"by_day"`
	ByMonth    Bucket `json:"byMonth" yaml:"by_month"`
	ByCategory Bucket `json:"byCategory" yaml:"by_category"`
}

// Total is the spending total of the aggregated scope.
func (a Aggregates) Total() decimal.Decimal {
	return a.ByCategory.Total()
}

// Months lists the months present, sorted.
func (a Aggregates) Months() []string {
	return a.ByMonth.Keys()
}

// Aggregate sums |amount| per day, month and category. A non-empty month
// (YYYY-MM) restricts all three buckets to that month. An empty input
// yields empty, non-nil buckets.
func Aggregate(txs []models.Transaction, month string) Aggregates {
	agg := Aggregates{
		Month:      month,
		ByDay:      Bucket{},
		ByMonth:    Bucket{},
		ByCategory: Bucket{},
	}
	for _, tx := range txs {
		if month != "" && tx.Month() != month {
			continue
		}
		amount := tx.Amount.Abs()
		agg.ByDay.add(tx.Date, amount)
		agg.ByMonth.add(tx.Month(), amount)
		agg.ByCategory.add(categoryKey(tx), amount)
		agg.Count++
	}
	return agg
}

// Filter returns the transactions dated in month, keeping order. An empty
// month returns a copy of txs.
func Filter(txs []models.Transaction, month string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if month == "" || tx.Month() == month {
			out = append(out, tx)
		}
	}
	return out
}

// Months lists the distinct months of txs, sorted.
func Months(txs []models.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tx := range txs {
		m := tx.Month()
		if _, ok := seen[m]; ok || m == "" {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Average is the mean bucket value, zero for an empty bucket.
func Average(b Bucket) decimal.Decimal {
	if len(b) == 0 {
		return decimal.Zero
	}
	return b.Total().Div(decimal.NewFromInt(int64(len(b))))
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	// Share is the percentage of the bucket total.
	Share decimal.Decimal `json:"share" yaml:"share"`
}

// SortedCategories orders a category bucket by descending amount, then by
// name.
func SortedCategories(b Bucket) []CategoryAmount {
	total := b.Total()
	out := make([]CategoryAmount, 0, len(b))
	for k, v := range b {
		share := decimal.Zero
		if !total.IsZero() {
			share = v.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, CategoryAmount{Category: k, Amount: v, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// categoryKey buckets uncategorized transactions with the fallback so the
// partition invariant holds for any input.
func categoryKey(tx models.Transaction) string {
	if tx.Category == "" {
		return models.CategoryOther.String()
	}
	return tx.Category.String()
}
