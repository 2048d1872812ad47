package categorizer

import (
	"context"
	"sync"
)

// mockAIClient records every merchant it is asked about.
type mockAIClient struct {
	mu        sync.Mutex
	calls     []string
	replyFunc func(ctx context.Context, merchant string) (string, error)
}

func (m *mockAIClient) Categorize(ctx context.Context, merchant string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, merchant)
	m.mu.Unlock()
	if m.replyFunc == nil {
		return "other", nil
	}
	return m.replyFunc(ctx, merchant)
}

func (m *mockAIClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockAIClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
