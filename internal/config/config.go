package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/spend-insights/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once
// per process. A missing file is not an error.
func LoadEnv() {
	envOnce.Do(func() {
		loadEnvFile(logging.GetLogger())
	})
}

func loadEnvFile(logger logging.Logger) string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, candidate))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, candidate))
		return candidate
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
