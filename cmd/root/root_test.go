package root

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "spend-insights", Cmd.Use)
	assert.Contains(t, Cmd.Short, "categorize bank CSV statements")
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.NotNil(t, Cmd.PersistentPostRunE)
	assert.True(t, Cmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	Init()
	Init()

	tests := []struct {
		name      string
		flag      string
		shorthand string
		defValue  string
	}{
		{name: "config", flag: "config", defValue: ""},
		{name: "input", flag: "input", shorthand: "i", defValue: "[]"},
		{name: "month", flag: "month", shorthand: "m", defValue: ""},
		{name: "format", flag: "format", shorthand: "f", defValue: "text"},
		{name: "export", flag: "export", shorthand: "e", defValue: ""},
		{name: "log level", flag: "log-level", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Cmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestValidateFlags(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		flags       CommonFlags
		errContains string
	}{
		{name: "defaults", flags: CommonFlags{Format: "text"}},
		{name: "month and yaml", flags: CommonFlags{Month: "2024-02", Format: "yaml"}},
		{name: "bad month", flags: CommonFlags{Month: "02-2024"}, errContains: "expected YYYY-MM"},
		{name: "bad format", flags: CommonFlags{Format: "xml"}, errContains: "unsupported output format"},
		{name: "export to directory", flags: CommonFlags{Export: dir}, errContains: "is a directory"},
		{name: "bad log level", flags: CommonFlags{LogLevel: "loud"}, errContains: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.flags)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\ncsv:\n  delimiter: \";\"\n"), 0600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ";", cfg.CSV.Delimiter)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRequireInputs(t *testing.T) {
	saved := SharedFlags.Inputs
	t.Cleanup(func() { SharedFlags.Inputs = saved })

	SharedFlags.Inputs = nil
	assert.Error(t, RequireInputs())
	SharedFlags.Inputs = []string{"a.csv"}
	assert.NoError(t, RequireInputs())
}
