// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SPEND_LOG_LEVEL.
const EnvPrefix = "SPEND"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter         string `mapstructure:"delimiter" yaml:"delimiter"`
		Encoding          string `mapstructure:"encoding" yaml:"encoding"`
		DateColumn        string `mapstructure:"date_column" yaml:"date_column"`
		DescriptionColumn string `mapstructure:"description_column" yaml:"description_column"`
		DebitColumn       string `mapstructure:"debit_column" yaml:"debit_column"`
		CreditColumn      string `mapstructure:"credit_column" yaml:"credit_column"`
		AmountColumn      string `mapstructure:"amount_column" yaml:"amount_column"`
		ExcludeKeyword    string `mapstructure:"exclude_keyword" yaml:"exclude_keyword"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxConcurrency    int    `mapstructure:"max_concurrency" yaml:"max_concurrency"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Budget struct {
		NeedsPercent   int `mapstructure:"needs_percent" yaml:"needs_percent"`
		WantsPercent   int `mapstructure:"wants_percent" yaml:"wants_percent"`
		SavingsPercent int `mapstructure:"savings_percent" yaml:"savings_percent"`
	} `mapstructure:"budget" yaml:"budget"`
}

// InitializeConfig loads defaults, then config.yaml, then environment
// variables, and validates the result.
func InitializeConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

// LoadConfigFile is InitializeConfig with an explicit config file path.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

// DefaultConfig returns the built-in defaults without reading a config
// file or the environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func loadConfig(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spend-insights")
		v.AddConfigPath(".spend-insights")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if file != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key is read unprefixed so existing Gemini setups keep working.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.encoding", "")
	v.SetDefault("csv.date_column", "date")
	v.SetDefault("csv.description_column", "description")
	v.SetDefault("csv.debit_column", "debit")
	v.SetDefault("csv.credit_column", "credit")
	v.SetDefault("csv.amount_column", "")
	v.SetDefault("csv.exclude_keyword", "payment")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 60)
	v.SetDefault("ai.timeout_seconds", 15)
	v.SetDefault("ai.max_concurrency", 4)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("categories.file", "")

	v.SetDefault("budget.needs_percent", 50)
	v.SetDefault("budget.wants_percent", 30)
	v.SetDefault("budget.savings_percent", 20)
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	if strings.TrimSpace(cfg.CSV.DateColumn) == "" || strings.TrimSpace(cfg.CSV.DescriptionColumn) == "" {
		return fmt.Errorf("csv.date_column and csv.description_column must not be empty")
	}

	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if cfg.AI.RequestsPerMinute < 1 || cfg.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", cfg.AI.RequestsPerMinute)
		}
		if cfg.AI.TimeoutSeconds < 1 || cfg.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", cfg.AI.TimeoutSeconds)
		}
	}

	if cfg.AI.MaxConcurrency < 1 || cfg.AI.MaxConcurrency > 64 {
		return fmt.Errorf("ai.max_concurrency must be between 1 and 64, got: %d", cfg.AI.MaxConcurrency)
	}

	b := cfg.Budget
	if b.NeedsPercent < 0 || b.WantsPercent < 0 || b.SavingsPercent < 0 {
		return fmt.Errorf("budget percentages must not be negative")
	}
	if sum := b.NeedsPercent + b.WantsPercent + b.SavingsPercent; sum != 100 {
		return fmt.Errorf("budget split must sum to 100, got: %d", sum)
	}

	return nil
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
