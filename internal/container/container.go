// Package container provides dependency injection for spend-insights.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/spend-insights/internal/budget"
	"fjacquet/spend-insights/internal/categorizer"
	"fjacquet/spend-insights/internal/common"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/csvparser"
	"fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/store"
)

// Clients are the external model collaborators. Either may be nil, in
// which case categorization falls back to rules only and analysis
// requests fail with insights.ErrNoAnalyzer.
type Clients struct {
	Categorizer categorizer.AIClient
	Analyzer    insights.Analyzer
	// Closer, when set, is closed by Container.Close.
	Closer io.Closer
}

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation: fields are private and only exposed
// through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	clients     Clients
	categorizer *categorizer.Categorizer
	parser      *csvparser.Parser
	requester   *insights.Requester
	csvWriter   *common.CSVWriter
	cache       *insights.Cache
}

// NewContainer creates and wires all application dependencies. When AI is
// enabled it opens a Gemini client used for both categorization and
// analysis.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	var clients Clients
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := categorizer.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		clients = Clients{Categorizer: gemini, Analyzer: gemini, Closer: gemini}
		logger.Info("AI categorization enabled", logging.F("model", cfg.AI.Model))
	} else {
		logger.Info("AI categorization disabled")
	}

	return NewContainerWithClients(cfg, logger, clients)
}

// NewContainerWithClients wires the container around caller-supplied
// clients and logger. A nil logger is built from cfg.
func NewContainerWithClients(cfg *config.Config, logger logging.Logger, clients Clients) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	rules, err := categorizer.NewKeywordStrategyFromStore(categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	aiStrategy := categorizer.NewAIStrategy(clients.Categorizer, logger,
		categorizer.WithTimeout(timeout),
		categorizer.WithRequestsPerMinute(cfg.AI.RequestsPerMinute))

	cat := categorizer.NewCategorizer(rules, aiStrategy, cfg.AI.MaxConcurrency, logger)
	parser := csvparser.NewParser(csvparser.OptionsFromConfig(cfg), logger)
	requester := insights.NewRequester(clients.Analyzer, 0, logger)

	logger.Debug("Container initialized successfully",
		logging.F("rules_count", len(rules.Rules())),
		logging.F("ai_enabled", aiStrategy.Enabled()),
		logging.F("analysis_enabled", clients.Analyzer != nil))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		clients:     clients,
		categorizer: cat,
		parser:      parser,
		requester:   requester,
		csvWriter:   common.NewCSVWriter(cfg.DelimiterRune(), logger),
		cache:       insights.NewCache(),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store backing the rule table.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the rule + AI categorization pipeline.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the CSV statement parser.
func (c *Container) GetParser() *csvparser.Parser {
	return c.parser
}

// GetRequester returns the insights requester.
func (c *Container) GetRequester() *insights.Requester {
	return c.requester
}

// GetCSVWriter returns the categorized CSV exporter.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.csvWriter
}

// GetInsightsCache returns the session insight cache.
func (c *Container) GetInsightsCache() *insights.Cache {
	return c.cache
}

// GetAIClient returns the categorization client, nil when AI is disabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.clients.Categorizer
}

// BudgetSplit returns the configured needs/wants/savings split.
func (c *Container) BudgetSplit() budget.Split {
	return budget.SplitFromConfig(c.config)
}

// Close releases the AI client, if any.
func (c *Container) Close() error {
	if c.clients.Closer != nil {
		if err := c.clients.Closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
