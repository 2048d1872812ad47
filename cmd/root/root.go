// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"os"
	"sync"

	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	Inputs     []string
	Month      string
	Format     string
	Export     string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppContainer is built before every command runs and closed after.
	AppContainer *container.Container

	// SharedFlags holds the persistent flags.
	SharedFlags = CommonFlags{}

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spend-insights",
		Short: "A CLI tool to categorize bank CSV statements and analyze spending.",
		Long: `spend-insights reads bank-exported CSV statements, categorizes every
transaction with an ordered keyword table and an optional Gemini fallback,
and reports spending by day, month and category, category trends, AI
insights, lifestyle creep, savings goals and budget status.`,
		SilenceUsage:       true,
		PersistentPreRunE:  persistentPreRun,
		PersistentPostRunE: persistentPostRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		pf := Cmd.PersistentFlags()
		pf.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: ./config.yaml or ~/.spend-insights/config.yaml)")
		pf.StringArrayVarP(&SharedFlags.Inputs, "input", "i", nil, "Input CSV file or directory (repeatable)")
		pf.StringVarP(&SharedFlags.Month, "month", "m", "", "Restrict to one month (YYYY-MM)")
		pf.StringVarP(&SharedFlags.Format, "format", "f", "text", "Output format: text, json or yaml")
		pf.StringVarP(&SharedFlags.Export, "export", "e", "", "Write the categorized transactions to this CSV file")
		pf.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	})
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	if err := validateFlags(SharedFlags); err != nil {
		return err
	}

	cfg, err := loadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppContainer = c
	Log = c.GetLogger()
	logging.SetDefault(Log)
	return nil
}

func persistentPostRun(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

func validateFlags(f CommonFlags) error {
	if err := validation.IsValidMonth(f.Month); err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(f.Format); err != nil {
		return err
	}
	if err := validation.IsValidExportPath(f.Export); err != nil {
		return err
	}
	if f.LogLevel != "" {
		if _, err := logrus.ParseLevel(f.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", f.LogLevel, err)
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.InitializeConfig()
	}
	if info, err := os.Stat(path); err == nil {
		if perr := validation.IsValidFilePermissions(info.Mode().Perm()); perr != nil {
			Log.WithError(perr).Warn("Config file is readable by others",
				logging.F(logging.FieldFile, path))
		}
	}
	return config.LoadConfigFile(path)
}

// RequireInputs fails when no --input was given.
func RequireInputs() error {
	if len(SharedFlags.Inputs) == 0 {
		return fmt.Errorf("at least one --input file or directory is required")
	}
	return nil
}
