// Package insights turns aggregated spending into analysis requests for a
// language model and decodes the structured replies: general insights, a
// lifestyle-creep report and savings-goal feedback.
package insights

import "context"

// Analyzer sends a prompt to a model and returns its raw text reply. The
// reply may wrap the JSON payload in prose or a fenced block.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, prompt string) (string, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
