package insights

import (
	"testing"

	"fjacquet/spend-insights/internal/analytics"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catTx(date, desc, amount string, cat models.Category) models.Transaction {
	return models.NewTransaction(date, desc, d(amount)).WithCategory(cat)
}

func creepTransactions() []models.Transaction {
	return []models.Transaction{
		catTx("2024-01-10", "UBER TRIP", "50", models.CategoryTransportation),
		catTx("2024-01-12", "WHOLE FOODS", "400", models.CategoryGroceries),
		catTx("2024-01-15", "STARBUCKS", "100", models.CategoryDining),
		catTx("2024-02-10", "UBER TRIP", "180", models.CategoryTransportation),
		catTx("2024-02-12", "WHOLE FOODS", "420", models.CategoryGroceries),
		catTx("2024-02-15", "STARBUCKS", "80", models.CategoryDining),
	}
}

func TestBuildSummary(t *testing.T) {
	txs := creepTransactions()
	s := BuildSummary(analytics.Aggregate(txs, ""), analytics.AnalyzeTrends(txs), d("3000"))

	assert.True(t, d("1230").Equal(s.TotalSpending))
	assert.True(t, s.HasIncome)
	assert.True(t, d("59").Equal(s.SavingsRate), s.SavingsRate.String())

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "groceries", s.Categories[0].Category)

	// groceries +5% is below the threshold.
	require.Len(t, s.Trends, 2)
	assert.Equal(t, models.CategoryTransportation, s.Trends[0].Category)
	assert.InDelta(t, 260.0, s.Trends[0].Change.InexactFloat64(), 1e-6)
	assert.Equal(t, models.CategoryDining, s.Trends[1].Category)
	assert.InDelta(t, -20.0, s.Trends[1].Change.InexactFloat64(), 1e-6)
}

func TestBuildSummary_NoIncome(t *testing.T) {
	s := BuildSummary(analytics.Aggregate(nil, ""), nil, decimal.Zero)
	assert.False(t, s.HasIncome)
	assert.True(t, s.SavingsRate.IsZero())
	assert.True(t, s.TotalSpending.IsZero())
	assert.NotNil(t, s.Trends)
	assert.Empty(t, s.Categories)
}
