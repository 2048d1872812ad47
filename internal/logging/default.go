package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewLogrusAdapter("info", "text")
)

// GetLogger returns the process-wide logger used by code that is not handed
// one explicitly, such as the cobra command layer.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. Nil is ignored.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// SetAllLogLevels applies level to the global logrus standard logger and to
// the default adapter.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	if a, ok := GetLogger().(*LogrusAdapter); ok {
		a.SetLevel(level)
	}
}
