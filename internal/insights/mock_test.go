package insights

import (
	"context"
	"sync"
)

// mockAnalyzer returns a canned reply and records prompts.
type mockAnalyzer struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (m *mockAnalyzer) Analyze(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func (m *mockAnalyzer) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
