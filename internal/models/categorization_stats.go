package models

import (
	"fjacquet/spend-insights/internal/logging"
)

// CategorizationStats tracks how a batch of transactions was categorized.
type CategorizationStats struct {
	Total    int `json:"total" yaml:"total"`       // transactions processed
	ByRule   int `json:"byRule" yaml:"by_rule"`    // resolved by the keyword table
	ByAI     int `json:"byAI" yaml:"by_ai"`        // resolved by the AI fallback with a valid category
	Fallback int `json:"fallback" yaml:"fallback"` // AI failed or answered outside the enum, assigned other
	AICalls  int `json:"aiCalls" yaml:"ai_calls"`  // distinct merchants sent to the AI client
}

// LogSummary logs the counters with the batch id.
func (cs CategorizationStats) LogSummary(logger logging.Logger, batchID string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldBatchID, Value: batchID},
		logging.Field{Key: "total_transactions", Value: cs.Total},
		logging.Field{Key: "by_rule", Value: cs.ByRule},
		logging.Field{Key: "by_ai", Value: cs.ByAI},
		logging.Field{Key: "fallback", Value: cs.Fallback},
		logging.Field{Key: "ai_calls", Value: cs.AICalls},
		logging.Field{Key: "rule_rate", Value: cs.RuleRate()},
	)
}

// RuleRate is the share of transactions resolved by rules, as a percentage.
func (cs CategorizationStats) RuleRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.ByRule) / float64(cs.Total) * 100.0
}
