// Package categorizer assigns a spending category to every transaction:
// an ordered keyword table first, then an AI fallback for whatever the
// rules leave unmatched.
package categorizer

import (
	"context"
	"time"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/textutils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds in-flight AI calls per batch.
const DefaultMaxConcurrency = 4

// Categorizer runs the two-pass pipeline. It holds no per-batch state and
// is safe for concurrent use.
type Categorizer struct {
	rules          *KeywordStrategy
	ai             *AIStrategy
	maxConcurrency int
	logger         logging.Logger
}

// NewCategorizer wires the rule and AI strategies. Nil strategies get
// defaults: the built-in table and a disabled AI fallback.
func NewCategorizer(rules *KeywordStrategy, ai *AIStrategy, maxConcurrency int, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if rules == nil {
		rules = NewKeywordStrategy(nil, logger)
	}
	if ai == nil {
		ai = NewAIStrategy(nil, logger)
	}
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Categorizer{rules: rules, ai: ai, maxConcurrency: maxConcurrency, logger: logger}
}

// Rules exposes the keyword strategy, mainly for dumping the table.
func (c *Categorizer) Rules() *KeywordStrategy {
	return c.rules
}

// CategorizeMerchant resolves a single description, rules first.
func (c *Categorizer) CategorizeMerchant(ctx context.Context, description string) models.Category {
	if cat, ok := c.rules.CategorizeMerchant(description); ok {
		return cat
	}
	cat, _, err := c.ai.CategorizeMerchant(ctx, textutils.CleanMerchantName(description))
	if err != nil {
		c.logger.WithError(err).Warn("AI categorization failed, using fallback category",
			logging.F(logging.FieldCategory, models.CategoryOther))
	}
	return cat
}

// pendingMerchant is one distinct normalized merchant awaiting the AI pass,
// with the input positions that share it.
type pendingMerchant struct {
	merchant string
	indices  []int
}

// CategorizeAll returns a categorized copy of txs in the same order.
//
// Pass one applies the rule table sequentially. Pass two gathers the
// unmatched distinct merchants concurrently; each task writes only its own
// slot, failures resolve to "other" and never cancel sibling tasks. The
// function returns after every task has finished.
func (c *Categorizer) CategorizeAll(ctx context.Context, txs []models.Transaction) ([]models.Transaction, models.CategorizationStats) {
	batchID := uuid.NewString()
	logger := c.logger.WithField(logging.FieldBatchID, batchID)
	start := time.Now()

	out := make([]models.Transaction, len(txs))
	stats := models.CategorizationStats{Total: len(txs)}

	var pending []*pendingMerchant
	byMerchant := make(map[string]*pendingMerchant)

	for i, tx := range txs {
		if cat, ok := c.rules.CategorizeMerchant(tx.Description); ok {
			out[i] = tx.WithCategory(cat)
			stats.ByRule++
			continue
		}
		out[i] = tx
		key := textutils.NormalizeMerchant(tx.Description)
		p, ok := byMerchant[key]
		if !ok {
			p = &pendingMerchant{merchant: textutils.CleanMerchantName(tx.Description)}
			byMerchant[key] = p
			pending = append(pending, p)
		}
		p.indices = append(p.indices, i)
	}

	results := make([]models.Category, len(pending))
	resolved := make([]bool, len(pending))

	if len(pending) > 0 {
		logger.Debug("Starting AI fallback",
			logging.F(logging.FieldCount, len(pending)),
			logging.F("ai_enabled", c.ai.Enabled()))

		var g errgroup.Group
		g.SetLimit(c.maxConcurrency)
		for slot, p := range pending {
			g.Go(func() error {
				cat, ok, err := c.ai.CategorizeMerchant(ctx, p.merchant)
				if err != nil {
					logger.WithError(err).Warn("AI categorization failed, using fallback category",
						logging.F(logging.FieldMerchant, p.merchant),
						logging.F(logging.FieldCategory, models.CategoryOther))
				}
				results[slot] = cat
				resolved[slot] = ok
				return nil
			})
		}
		_ = g.Wait()
		if c.ai.Enabled() {
			stats.AICalls = len(pending)
		}
	}

	for slot, p := range pending {
		for _, i := range p.indices {
			out[i] = out[i].WithCategory(results[slot])
			if resolved[slot] {
				stats.ByAI++
			} else {
				stats.Fallback++
			}
		}
	}

	stats.LogSummary(logger, batchID)
	logger.Debug("Categorization finished",
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return out, stats
}
