// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Category is one of a closed set of spending categories.
type Category string

const (
	CategoryGroceries      Category = "groceries"
	CategoryDining         Category = "dining"
	CategoryTransportation Category = "transportation"
	CategoryShopping       Category = "shopping"
	CategoryEntertainment  Category = "entertainment"
	CategorySubscriptions  Category = "subscriptions"
	CategoryUtilities      Category = "utilities"
	CategoryHealthcare     Category = "healthcare"
	CategoryInsurance      Category = "insurance"

	// CategoryOther is assigned only when the AI fallback fails or answers
	// outside the enum. Rules never produce it.
	CategoryOther Category = "other"
)

var allCategories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategorySubscriptions,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryInsurance,
	CategoryOther,
}

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory trims and lower-cases s and checks it against the enum.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// IsValid reports whether c is a member of the enum.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// CategoryConfig is one entry of a categories YAML file: a category name
// and the merchant keywords that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the top-level shape of a categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
