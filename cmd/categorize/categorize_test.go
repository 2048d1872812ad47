package categorize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/categorizer"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, ai categorizer.AIClient) *bytes.Buffer {
	t.Helper()
	c, err := container.NewContainerWithClients(config.DefaultConfig(), logging.NewMockLogger(), container.Clients{Categorizer: ai})
	require.NoError(t, err)

	saved := root.SharedFlags
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = nil
		root.SharedFlags = saved
		merchant = ""
	})

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	return &buf
}

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Categorize")
	assert.NotNil(t, Cmd.RunE)

	f := Cmd.Flags().Lookup("merchant")
	require.NotNil(t, f)
	assert.Equal(t, "n", f.Shorthand)
	assert.Equal(t, "", f.DefValue)
}

func TestCategorizeCommand_Merchant(t *testing.T) {
	ai := categorizer.AIClientFunc(func(context.Context, string) (string, error) { return "Utilities", nil })

	tests := []struct {
		name     string
		merchant string
		want     string
	}{
		{name: "rule match after cleaning", merchant: "SQ *COFFEE SHOP CA XXXX1234", want: "SQ *COFFEE SHOP CA XXXX1234 (COFFEE SHOP) -> dining\n"},
		{name: "rule match", merchant: "UBER EATS", want: "UBER EATS -> dining\n"},
		{name: "ai fallback", merchant: "VKJ PLUMB", want: "VKJ PLUMB -> utilities\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := setup(t, ai)
			root.SharedFlags = root.CommonFlags{Format: "text"}
			merchant = tt.merchant

			require.NoError(t, run(Cmd, nil))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCategorizeCommand_StatementToStdout(t *testing.T) {
	buf := setup(t, nil)
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,description,debit,credit\n2024-01-05,NETFLIX.COM,15.99,\n2024-01-06,VKJ PLUMB,80.00,\n"), 0600))
	root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Format: "text"}

	require.NoError(t, run(Cmd, nil))
	assert.Equal(t, "Date,Description,Amount,Category\n"+
		"2024-01-05,NETFLIX.COM,15.99,subscriptions\n"+
		"2024-01-06,VKJ PLUMB,80.00,other\n", buf.String())
}

func TestCategorizeCommand_RequiresMerchantOrInput(t *testing.T) {
	setup(t, nil)
	root.SharedFlags = root.CommonFlags{Format: "text"}
	assert.Error(t, run(Cmd, nil))
}
