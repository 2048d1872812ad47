package categorizer

import (
	"context"

	"fjacquet/spend-insights/internal/models"
)

// CategorizationStrategy resolves a transaction to a category.
type CategorizationStrategy interface {
	// Categorize returns the category and whether this strategy resolved
	// the transaction. A false result with a nil error means "no match".
	Categorize(ctx context.Context, tx models.Transaction) (models.Category, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

// CategoryStoreInterface supplies a rule table, typically from YAML.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

var (
	_ CategorizationStrategy = (*KeywordStrategy)(nil)
	_ CategorizationStrategy = (*AIStrategy)(nil)
)
