package budget

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = "date,description,debit,credit\n" +
	"2024-01-05,WHOLE FOODS MARKET,900.00,\n" +
	"2024-02-05,WHOLE FOODS MARKET,300.00,\n" +
	"2024-02-06,UBER EATS,400.00,\n"

type budgetOutput struct {
	Status struct {
		Needs struct {
			Budget string `json:"budget"`
			Actual string `json:"actual"`
			Over   bool   `json:"over"`
		} `json:"needs"`
		Wants struct {
			Actual string `json:"actual"`
			Over   bool   `json:"over"`
		} `json:"wants"`
		Saved string `json:"saved"`
	} `json:"status"`
	Variances []struct {
		Category string `json:"category"`
		Over     bool   `json:"over"`
	} `json:"variances"`
}

func setup(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	c, err := container.NewContainerWithClients(config.DefaultConfig(), logging.NewMockLogger(), container.Clients{})
	require.NoError(t, err)

	saved := root.SharedFlags
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = nil
		root.SharedFlags = saved
		income, allocs = "", nil
	})

	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(statement), 0600))

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	return &buf, path
}

func TestBudgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.Flags().Lookup("income"))
	assert.NotNil(t, Cmd.Flags().Lookup("alloc"))
}

func TestBudgetCommand_Run(t *testing.T) {
	tests := []struct {
		name        string
		month       string
		needsActual string
		needsOver   bool
		wantsOver   bool
	}{
		{name: "latest month by default", needsActual: "300", wantsOver: true},
		{name: "explicit month", month: "2024-01", needsActual: "900", needsOver: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, path := setup(t)
			root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Month: tt.month, Format: "json"}
			income = "1000"

			require.NoError(t, run(Cmd, nil))

			var out budgetOutput
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, "500", out.Status.Needs.Budget)
			assert.Equal(t, tt.needsActual, out.Status.Needs.Actual)
			assert.Equal(t, tt.needsOver, out.Status.Needs.Over)
			assert.Equal(t, tt.wantsOver, out.Status.Wants.Over)
			assert.Empty(t, out.Variances)
		})
	}
}

func TestBudgetCommand_Allocations(t *testing.T) {
	buf, path := setup(t)
	root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Format: "json"}
	income = "1000"
	allocs = []string{"groceries=350", "dining=200"}

	require.NoError(t, run(Cmd, nil))

	var out budgetOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Variances, 2)
	assert.Equal(t, "dining", out.Variances[0].Category)
	assert.True(t, out.Variances[0].Over)
	assert.Equal(t, "groceries", out.Variances[1].Category)
	assert.False(t, out.Variances[1].Over)
}

func TestBudgetCommand_InvalidPlan(t *testing.T) {
	tests := []struct {
		name   string
		income string
		allocs []string
	}{
		{name: "over allocated", income: "500", allocs: []string{"groceries=600"}},
		{name: "unknown category", income: "1000", allocs: []string{"yachts=100"}},
		{name: "malformed pair", income: "1000", allocs: []string{"groceries"}},
		{name: "bad income", income: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, path := setup(t)
			root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Format: "text"}
			income, allocs = tt.income, tt.allocs
			assert.Error(t, run(Cmd, nil))
		})
	}
}
