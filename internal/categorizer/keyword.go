package categorizer

import (
	"context"

	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/textutils"
)

// KeywordStrategy categorizes by substring match of the normalized
// merchant against an ordered RuleTable.
type KeywordStrategy struct {
	rules  RuleTable
	logger logging.Logger
}

// NewKeywordStrategy creates a strategy over rules. A nil or empty table
// uses DefaultRuleTable.
func NewKeywordStrategy(rules RuleTable, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(rules) == 0 {
		rules = DefaultRuleTable()
	}
	return &KeywordStrategy{rules: rules, logger: logger}
}

// NewKeywordStrategyFromStore loads the table from store. A store error is
// returned; an empty table falls back to DefaultRuleTable.
func NewKeywordStrategyFromStore(store CategoryStoreInterface, logger logging.Logger) (*KeywordStrategy, error) {
	if store == nil {
		return NewKeywordStrategy(nil, logger), nil
	}
	configs, err := store.LoadCategories()
	if err != nil {
		return nil, err
	}
	rules, err := RuleTableFromConfigs(configs)
	if err != nil {
		return nil, err
	}
	return NewKeywordStrategy(rules, logger), nil
}

func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Rules returns the table in priority order.
func (s *KeywordStrategy) Rules() RuleTable {
	return s.rules
}

// Categorize never returns an error; an unmatched merchant is reported as
// not found rather than as "other".
func (s *KeywordStrategy) Categorize(_ context.Context, tx models.Transaction) (models.Category, bool, error) {
	cat, ok := s.CategorizeMerchant(tx.Description)
	return cat, ok, nil
}

// CategorizeMerchant applies the rules to a raw description.
func (s *KeywordStrategy) CategorizeMerchant(description string) (models.Category, bool) {
	merchant := textutils.NormalizeMerchant(description)
	cat, kw, ok := s.rules.Match(merchant)
	if !ok {
		return "", false
	}

	s.logger.Debug("Transaction categorized using keyword matching",
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldMerchant, merchant),
		logging.F(logging.FieldKeyword, kw),
		logging.F(logging.FieldCategory, cat))
	return cat, true
}
