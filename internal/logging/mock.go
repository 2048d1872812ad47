package logging

import (
	"fmt"
	"sync"
)

// LogEntry is one captured call on a MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// entrySink is shared by a MockLogger and every child derived from it, so
// entries logged through WithField/WithError are visible on the parent.
type entrySink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// MockLogger captures entries for assertions in tests. It is safe for use
// from multiple goroutines. The zero value is ready to use.
type MockLogger struct {
	once   sync.Once
	sink   *entrySink
	err    error
	fields []Field
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &entrySink{}}
}

func (m *MockLogger) store() *entrySink {
	m.once.Do(func() {
		if m.sink == nil {
			m.sink = &entrySink{}
		}
	})
	return m.sink
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	s := m.store()
	s.mu.Lock()
	s.entries = append(s.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
	s.mu.Unlock()
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records the entry without exiting.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf records the formatted entry without exiting.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{sink: m.store(), err: err, fields: m.fields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(m.fields)+len(fields))
	merged = append(merged, m.fields...)
	merged = append(merged, fields...)
	return &MockLogger{sink: m.store(), err: m.err, fields: merged}
}

// GetEntries returns a copy of every captured entry in logging order.
func (m *MockLogger) GetEntries() []LogEntry {
	s := m.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// GetEntriesByLevel filters GetEntries by level ("DEBUG", "INFO", ...).
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.GetEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with exactly this level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.GetEntries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Clear drops all captured entries, including those logged through children.
func (m *MockLogger) Clear() {
	s := m.store()
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
