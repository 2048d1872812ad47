package store

import (
	"fjacquet/spend-insights/internal/models"
)

// MockCategoryStore serves a fixed rule table in tests.
type MockCategoryStore struct {
	Categories          []models.CategoryConfig
	LoadCategoriesError error
	LoadCalls           int
}

// LoadCategories returns a copy of Categories or LoadCategoriesError.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	m.LoadCalls++
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	out := make([]models.CategoryConfig, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}
