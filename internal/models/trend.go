package models

import (
	"github.com/shopspring/decimal"
)

// MonthValue is one category's spending in one month.
type MonthValue struct {
	Month string          `json:"month" yaml:"month"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// CategoryTrend compares a category's spending in the first and last
// observed months of a transaction set.
type CategoryTrend struct {
	Category        Category        `json:"category" yaml:"category"`
	FirstMonthValue decimal.Decimal `json:"firstMonth" yaml:"first_month"`
	LastMonthValue  decimal.Decimal `json:"lastMonth" yaml:"last_month"`
	// PercentChange is (last-first)/first*100.
	PercentChange decimal.Decimal `json:"change" yaml:"change"`
	// ObservedMonthCount counts every month in the set, not only those in
	// which the category had spending.
	ObservedMonthCount int             `json:"months" yaml:"months"`
	AvgMonthly         decimal.Decimal `json:"avgMonthly" yaml:"avg_monthly"`
	MonthlyValues      []MonthValue    `json:"monthlyValues" yaml:"monthly_values"`
}

// AbsChange is the magnitude of PercentChange.
func (t CategoryTrend) AbsChange() decimal.Decimal {
	return t.PercentChange.Abs()
}
