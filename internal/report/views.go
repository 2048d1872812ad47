package report

import (
	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/budget"
	"fjacquet/spend-insights/internal/csvparser"
	"fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// SpendingSummary is the overview printed by the summary command.
type SpendingSummary struct {
	Range          string                     `json:"range" yaml:"range"`
	Month          string                     `json:"month,omitempty" yaml:"month,omitempty"`
	Transactions   int                        `json:"transactions" yaml:"transactions"`
	Total          decimal.Decimal            `json:"total" yaml:"total"`
	MonthlyAverage decimal.Decimal            `json:"monthlyAverage" yaml:"monthly_average"`
	Categories     []analytics.CategoryAmount `json:"categories" yaml:"categories"`
	ByMonth        analytics.Bucket           `json:"byMonth" yaml:"by_month"`
	Ingest         csvparser.IngestStats      `json:"ingest" yaml:"ingest"`
	Categorization models.CategorizationStats `json:"categorization" yaml:"categorization"`
}

// NewSpendingSummary aggregates txs, restricted to month when set.
func NewSpendingSummary(txs []models.Transaction, month string, ingest csvparser.IngestStats, stats models.CategorizationStats) SpendingSummary {
	agg := analytics.Aggregate(txs, month)
	return SpendingSummary{
		Range:          analytics.DateRangeOf(analytics.Filter(txs, month)).String(),
		Month:          month,
		Transactions:   agg.Count,
		Total:          agg.Total(),
		MonthlyAverage: analytics.Average(agg.ByMonth).Round(2),
		Categories:     analytics.SortedCategories(agg.ByCategory),
		ByMonth:        agg.ByMonth,
		Ingest:         ingest,
		Categorization: stats,
	}
}

// MerchantCategory is the answer to a single-merchant lookup.
type MerchantCategory struct {
	Input    string          `json:"input" yaml:"input"`
	Merchant string          `json:"merchant" yaml:"merchant"`
	Category models.Category `json:"category" yaml:"category"`
}

// TrendsReport wraps the per-category trends.
type TrendsReport struct {
	Months []string               `json:"months" yaml:"months"`
	Trends []models.CategoryTrend `json:"trends" yaml:"trends"`
}

// InsightsReport is the insight cards for one scope.
type InsightsReport struct {
	Month    string             `json:"month,omitempty" yaml:"month,omitempty"`
	Cached   bool               `json:"cached" yaml:"cached"`
	Insights []insights.Insight `json:"insights" yaml:"insights"`
}

// GoalReport pairs a goal with its analysis.
type GoalReport struct {
	Goal     insights.GoalRequest  `json:"goal" yaml:"goal"`
	Analysis insights.GoalAnalysis `json:"analysis" yaml:"analysis"`
}

// BudgetReport is the needs/wants status and, when a plan was given, the
// per-category variances.
type BudgetReport struct {
	Status    budget.StatusReport `json:"status" yaml:"status"`
	Plan      *budget.Plan        `json:"plan,omitempty" yaml:"plan,omitempty"`
	Variances []budget.Variance   `json:"variances,omitempty" yaml:"variances,omitempty"`
}
