package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"SPEND_LOG_LEVEL", "SPEND_LOG_FORMAT",
	"SPEND_CSV_DELIMITER", "SPEND_CSV_ENCODING", "SPEND_CSV_DEBIT_COLUMN", "SPEND_CSV_AMOUNT_COLUMN",
	"SPEND_AI_ENABLED", "SPEND_AI_MODEL", "SPEND_AI_REQUESTS_PER_MINUTE", "SPEND_AI_TIMEOUT_SECONDS",
	"SPEND_AI_MAX_CONCURRENCY", "SPEND_CATEGORIES_FILE",
	"SPEND_BUDGET_NEEDS_PERCENT", "SPEND_BUDGET_WANTS_PERCENT", "SPEND_BUDGET_SAVINGS_PERCENT",
	"GEMINI_API_KEY",
}

// clearTestEnvVars blanks every variable the config reads and restores the
// previous values when the test ends.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		old, had := os.LookupEnv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, old)
			} else {
				_ = os.Unsetenv(key)
			}
		})
		_ = os.Unsetenv(key)
	}
}

// inTempDir runs the test from an empty directory so no stray config.yaml
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(original)) })
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	inTempDir(t)

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "date", cfg.CSV.DateColumn)
	assert.Equal(t, "description", cfg.CSV.DescriptionColumn)
	assert.Equal(t, "debit", cfg.CSV.DebitColumn)
	assert.Equal(t, "credit", cfg.CSV.CreditColumn)
	assert.Equal(t, "", cfg.CSV.AmountColumn)
	assert.Equal(t, "payment", cfg.CSV.ExcludeKeyword)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 60, cfg.AI.RequestsPerMinute)
	assert.Equal(t, 15, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 4, cfg.AI.MaxConcurrency)
	assert.Equal(t, 50, cfg.Budget.NeedsPercent)
	assert.Equal(t, 30, cfg.Budget.WantsPercent)
	assert.Equal(t, 20, cfg.Budget.SavingsPercent)
	assert.Equal(t, ',', cfg.DelimiterRune())
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("SPEND_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, validateConfig(cfg))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, 4, cfg.AI.MaxConcurrency)
	assert.Equal(t, 50, cfg.Budget.NeedsPercent)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	inTempDir(t)

	for key, value := range map[string]string{
		"SPEND_LOG_LEVEL":              "debug",
		"SPEND_LOG_FORMAT":             "json",
		"SPEND_CSV_DELIMITER":          ";",
		"SPEND_CSV_AMOUNT_COLUMN":      "amount",
		"SPEND_AI_ENABLED":             "true",
		"SPEND_AI_MODEL":               "gemini-1.5-pro",
		"SPEND_AI_REQUESTS_PER_MINUTE": "15",
		"SPEND_AI_MAX_CONCURRENCY":     "8",
		"GEMINI_API_KEY":               "test-api-key",
	} {
		t.Setenv(key, value)
	}

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "amount", cfg.CSV.AmountColumn)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Model)
	assert.Equal(t, 15, cfg.AI.RequestsPerMinute)
	assert.Equal(t, 8, cfg.AI.MaxConcurrency)
	assert.Equal(t, "test-api-key", cfg.AI.APIKey)
	assert.Equal(t, ';', cfg.DelimiterRune())
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := inTempDir(t)

	content := `
log:
  level: "warn"
csv:
  delimiter: "|"
  debit_column: "Withdrawal"
  credit_column: "Deposit"
ai:
  model: "gemini-1.0-pro"
  max_concurrency: 2
categories:
  file: "rules.yaml"
budget:
  needs_percent: 60
  wants_percent: 20
  savings_percent: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	assert.Equal(t, "Withdrawal", cfg.CSV.DebitColumn)
	assert.Equal(t, "Deposit", cfg.CSV.CreditColumn)
	assert.Equal(t, "gemini-1.0-pro", cfg.AI.Model)
	assert.Equal(t, 2, cfg.AI.MaxConcurrency)
	assert.Equal(t, "rules.yaml", cfg.Categories.File)
	assert.Equal(t, 60, cfg.Budget.NeedsPercent)
}

func TestInitializeConfig_EnvOverridesFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: warn\n"), 0o644))
	t.Setenv("SPEND_LOG_LEVEL", "error")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := inTempDir(t)

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("csv:\n  encoding: windows-1252\n"), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", cfg.CSV.Encoding)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ","
		cfg.CSV.DateColumn = "date"
		cfg.CSV.DescriptionColumn = "description"
		cfg.AI.RequestsPerMinute = 10
		cfg.AI.TimeoutSeconds = 10
		cfg.AI.MaxConcurrency = 4
		cfg.Budget.NeedsPercent = 50
		cfg.Budget.WantsPercent = 30
		cfg.Budget.SavingsPercent = 20
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid log level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
		{name: "long delimiter", mutate: func(c *Config) { c.CSV.Delimiter = ";;" }, wantErr: "single character"},
		{name: "empty date column", mutate: func(c *Config) { c.CSV.DateColumn = " " }, wantErr: "date_column"},
		{name: "ai without key", mutate: func(c *Config) { c.AI.Enabled = true }, wantErr: "GEMINI_API_KEY"},
		{
			name: "ai rate out of range",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "k"
				c.AI.RequestsPerMinute = 0
			},
			wantErr: "requests_per_minute",
		},
		{
			name: "ai timeout out of range",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "k"
				c.AI.TimeoutSeconds = 301
			},
			wantErr: "timeout_seconds",
		},
		{name: "concurrency zero", mutate: func(c *Config) { c.AI.MaxConcurrency = 0 }, wantErr: "max_concurrency"},
		{name: "negative budget", mutate: func(c *Config) { c.Budget.NeedsPercent = -10; c.Budget.WantsPercent = 90 }, wantErr: "negative"},
		{name: "budget does not sum", mutate: func(c *Config) { c.Budget.SavingsPercent = 10 }, wantErr: "sum to 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))

	logger := logging.NewMockLogger()
	loaded := loadEnvFile(logger)

	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "from-dotenv", os.Getenv("GEMINI_API_KEY"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SPEND_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("SPEND_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SPEND_TEST_UNSET_VALUE", "fallback"))
}
