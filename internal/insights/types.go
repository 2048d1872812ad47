package insights

import (
	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Insight types accepted from the model. Anything else is read as a tip.
const (
	TypeSavings = "savings"
	TypeWarning = "warning"
	TypeAlert   = "alert"
	TypeSuccess = "success"
	TypeTip     = "tip"
)

// Insight is one card of general spending feedback.
type Insight struct {
	Type    string `json:"type" yaml:"type"`
	Icon    string `json:"icon" yaml:"icon"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
}

// TrendDelta is the part of a CategoryTrend shared with the model.
type TrendDelta struct {
	Category   models.Category `json:"category" yaml:"category"`
	FirstMonth decimal.Decimal `json:"firstMonth" yaml:"first_month"`
	LastMonth  decimal.Decimal `json:"lastMonth" yaml:"last_month"`
	AvgMonthly decimal.Decimal `json:"avgMonthly" yaml:"avg_monthly"`
	Change     decimal.Decimal `json:"change" yaml:"change"`
	Months     int             `json:"months" yaml:"months"`
}

// Summary is everything the insights prompt is built from. It holds
// category totals and trend deltas only; no transaction descriptions.
type Summary struct {
	Month         string                     `json:"month,omitempty" yaml:"month,omitempty"`
	TotalSpending decimal.Decimal            `json:"totalSpending" yaml:"total_spending"`
	Income        decimal.Decimal            `json:"income" yaml:"income"`
	HasIncome     bool                       `json:"-" yaml:"-"`
	SavingsRate   decimal.Decimal            `json:"savingsRate" yaml:"savings_rate"`
	Categories    []analytics.CategoryAmount `json:"categories" yaml:"categories"`
	Trends        []TrendDelta               `json:"trends" yaml:"trends"`
}

// Creep severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// CreepCategory is the model's assessment of one category.
type CreepCategory struct {
	Name           string  `json:"name" yaml:"name"`
	Severity       string  `json:"severity" yaml:"severity"`
	Change         float64 `json:"change" yaml:"change"`
	Analysis       string  `json:"analysis" yaml:"analysis"`
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
}

// ActionItem is a concrete step suggested by the model.
type ActionItem struct {
	Priority string `json:"priority" yaml:"priority"`
	Action   string `json:"action" yaml:"action"`
	Category string `json:"category" yaml:"category"`
	Impact   string `json:"impact" yaml:"impact"`
}

// CreepReport is the lifestyle-creep analysis. RawTrends is computed
// locally, never taken from the model.
type CreepReport struct {
	OverallScore   int                    `json:"overallScore" yaml:"overall_score"`
	Summary        string                 `json:"summary" yaml:"summary"`
	Categories     []CreepCategory        `json:"categories" yaml:"categories"`
	ActionItems    []ActionItem           `json:"actionItems" yaml:"action_items"`
	PositiveHabits []string               `json:"positiveHabits" yaml:"positive_habits"`
	RawTrends      []models.CategoryTrend `json:"rawTrends" yaml:"raw_trends"`
}

// GoalRequest describes a savings goal checked against current spending.
type GoalRequest struct {
	Name            string          `json:"name" yaml:"name"`
	Target          decimal.Decimal `json:"target" yaml:"target"`
	Months          int             `json:"months" yaml:"months"`
	Income          decimal.Decimal `json:"income" yaml:"income"`
	MonthlySpending decimal.Decimal `json:"monthlySpending" yaml:"monthly_spending"`
}

// GoalAnalysis is the model's verdict plus the locally computed figures it
// was given.
type GoalAnalysis struct {
	OnTrack          bool            `json:"onTrack" yaml:"on_track"`
	Message          string          `json:"message" yaml:"message"`
	RequiredMonthly  decimal.Decimal `json:"requiredMonthly" yaml:"required_monthly"`
	ProjectedSavings decimal.Decimal `json:"projectedMonthlySavings" yaml:"projected_monthly_savings"`
}
