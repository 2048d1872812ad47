// Package store loads and saves the merchant keyword table kept in YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is looked up when no explicit file is configured.
const DefaultCategoriesFile = "categories.yaml"

// AppDirName is the directory under ~/.config searched for config files.
const AppDirName = "spend-insights"

// CategoryStore reads the ordered rule table from a YAML file of the form
//
//	categories:
//	  - name: dining
//	    keywords: ["uber eats", "cafe"]
//
// File order is rule priority order.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for categoriesFile. An empty name means
// DefaultCategoriesFile in the standard locations, and its absence is not an
// error.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CategoryStore{CategoriesFile: categoriesFile, logger: logger}
}

// FindConfigFile looks for filename in ".", "config/", "database/" and
// ~/.config/spend-insights, in that order.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", AppDirName, filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories returns the validated rule table. It returns an empty
// slice when no file is configured and none is found, letting the caller
// fall back to the built-in table.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	explicit := s.CategoriesFile != ""
	filename := s.CategoriesFile
	if !explicit {
		filename = DefaultCategoriesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			s.logger.Debug("No categories file found, using built-in rules",
				logging.F(logging.FieldFile, filename))
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: fmt.Sprintf("malformed YAML: %v", err)}
	}

	categories, err := normalizeCategories(cfg.Categories)
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: err.Error()}
	}

	s.logger.Debug("Loaded categories",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(categories)))
	return categories, nil
}

// SaveCategories writes categories to path in LoadCategories' format.
func (s *CategoryStore) SaveCategories(path string, categories []models.CategoryConfig) error {
	normalized, err := normalizeCategories(categories)
	if err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: err.Error()}
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: normalized})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.Info("Saved categories",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(normalized)))
	return nil
}

// normalizeCategories lower-cases names and keywords, drops blank keywords
// and rejects names outside the enum. "other" is reserved for the fallback.
func normalizeCategories(in []models.CategoryConfig) ([]models.CategoryConfig, error) {
	out := make([]models.CategoryConfig, 0, len(in))
	for i, c := range in {
		cat, err := models.ParseCategory(c.Name)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if cat == models.CategoryOther {
			return nil, fmt.Errorf("entry %d: %q cannot be assigned by a rule", i+1, cat)
		}

		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		out = append(out, models.CategoryConfig{Name: cat.String(), Keywords: keywords})
	}
	return out, nil
}
