// Package budget checks spending against a monthly plan: explicit
// per-category allocations and the needs/wants/savings split.
package budget

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Plan is a monthly income with per-category allocations.
type Plan struct {
	Income      decimal.Decimal            `json:"income" yaml:"income"`
	Allocations map[string]decimal.Decimal `json:"allocations" yaml:"allocations"`
}

// TotalAllocated sums the allocations.
func (p Plan) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, v := range p.Allocations {
		total = total.Add(v)
	}
	return total
}

// Remaining is income minus allocations; negative means over-allocated.
func (p Plan) Remaining() decimal.Decimal {
	return p.Income.Sub(p.TotalAllocated())
}

// Validate rejects a plan that cannot be saved: no income, a negative or
// unknown allocation, or more allocated than earned.
func (p Plan) Validate() error {
	if !p.Income.IsPositive() {
		return &parsererror.ValidationError{Reason: "income must be positive"}
	}
	for cat, v := range p.Allocations {
		if _, err := models.ParseCategory(cat); err != nil {
			return &parsererror.ValidationError{Reason: err.Error()}
		}
		if v.IsNegative() {
			return &parsererror.ValidationError{Reason: fmt.Sprintf("allocation for %s is negative", cat)}
		}
	}
	if p.Remaining().IsNegative() {
		return &parsererror.ValidationError{
			Reason: fmt.Sprintf("allocations exceed income by %s", currencyutils.FormatAmount(p.Remaining().Neg(), "USD")),
		}
	}
	return nil
}

// ParseAllocations reads "category=amount" pairs. Repeated categories add
// up.
func ParseAllocations(pairs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid allocation %q: expected category=amount", pair)
		}
		cat, err := models.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation %q: %w", pair, err)
		}
		amount, err := currencyutils.ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation %q: %w", pair, err)
		}
		key := cat.String()
		out[key] = out[key].Add(amount)
	}
	return out, nil
}

// Variance compares one category's allocation with its actual spending.
type Variance struct {
	Category  string          `json:"category" yaml:"category"`
	Allocated decimal.Decimal `json:"allocated" yaml:"allocated"`
	Actual    decimal.Decimal `json:"actual" yaml:"actual"`
	Remaining decimal.Decimal `json:"remaining" yaml:"remaining"`
	Over      bool            `json:"over" yaml:"over"`
}

// Compare lists every category that is allocated or has spending, sorted
// by name. Unallocated spending is always over.
func (p Plan) Compare(byCategory analytics.Bucket) []Variance {
	names := make(map[string]struct{})
	for k := range p.Allocations {
		names[k] = struct{}{}
	}
	for k := range byCategory {
		names[k] = struct{}{}
	}

	out := make([]Variance, 0, len(names))
	for name := range names {
		allocated := p.Allocations[name]
		actual := byCategory[name]
		out = append(out, Variance{
			Category:  name,
			Allocated: allocated,
			Actual:    actual,
			Remaining: allocated.Sub(actual),
			Over:      actual.GreaterThan(allocated),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Split is the needs/wants/savings percentage rule.
type Split struct {
	Needs   int `json:"needs" yaml:"needs"`
	Wants   int `json:"wants" yaml:"wants"`
	Savings int `json:"savings" yaml:"savings"`
}

// DefaultSplit is the 50/30/20 rule.
var DefaultSplit = Split{Needs: 50, Wants: 30, Savings: 20}

// SplitFromConfig reads the budget section of cfg.
func SplitFromConfig(cfg *config.Config) Split {
	if cfg == nil {
		return DefaultSplit
	}
	return Split{
		Needs:   cfg.Budget.NeedsPercent,
		Wants:   cfg.Budget.WantsPercent,
		Savings: cfg.Budget.SavingsPercent,
	}
}

// SpendingType is needs or wants.
type SpendingType string

const (
	Needs SpendingType = "needs"
	Wants SpendingType = "wants"
)

var needsCategories = map[models.Category]bool{
	models.CategoryGroceries: true,
	models.CategoryUtilities: true,
}

// TypeOf classifies a category. Only groceries and utilities are needs.
func TypeOf(category string) SpendingType {
	if needsCategories[models.Category(strings.ToLower(strings.TrimSpace(category)))] {
		return Needs
	}
	return Wants
}

// TypeStatus is spending of one type against its share of income.
type TypeStatus struct {
	Budget decimal.Decimal `json:"budget" yaml:"budget"`
	Actual decimal.Decimal `json:"actual" yaml:"actual"`
	Over   bool            `json:"over" yaml:"over"`
}

// StatusReport is the outcome of Status.
type StatusReport struct {
	Income        decimal.Decimal `json:"income" yaml:"income"`
	Split         Split           `json:"split" yaml:"split"`
	Needs         TypeStatus      `json:"needs" yaml:"needs"`
	Wants         TypeStatus      `json:"wants" yaml:"wants"`
	SavingsTarget decimal.Decimal `json:"savingsTarget" yaml:"savings_target"`
	// Saved is income minus all spending.
	Saved decimal.Decimal `json:"saved" yaml:"saved"`
}

// OnTrack reports whether neither type is over budget.
func (r StatusReport) OnTrack() bool {
	return !r.Needs.Over && !r.Wants.Over
}

// Status splits byCategory into needs and wants and compares each with
// income times its split percentage.
func Status(byCategory analytics.Bucket, income decimal.Decimal, split Split) StatusReport {
	var needs, wants decimal.Decimal
	for cat, v := range byCategory {
		if TypeOf(cat) == Needs {
			needs = needs.Add(v)
		} else {
			wants = wants.Add(v)
		}
	}

	share := func(pct int) decimal.Decimal {
		return income.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
	}
	needsBudget := share(split.Needs)
	wantsBudget := share(split.Wants)

	return StatusReport{
		Income:        income,
		Split:         split,
		Needs:         TypeStatus{Budget: needsBudget, Actual: needs, Over: needs.GreaterThan(needsBudget)},
		Wants:         TypeStatus{Budget: wantsBudget, Actual: wants, Over: wants.GreaterThan(wantsBudget)},
		SavingsTarget: share(split.Savings),
		Saved:         income.Sub(needs).Sub(wants),
	}
}
