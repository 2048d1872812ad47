package creep

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/insights"
	"fjacquet/spend-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const creepReply = `Sure! {"overallScore": 140, "summary": "Rideshare is climbing.",
"categories": [{"name": "transportation", "severity": "HIGH", "change": 260, "analysis": "Up a lot", "recommendation": "Take the bus"}],
"actionItems": [{"priority": "low", "action": "Review subscriptions"}, {"priority": "high", "action": "Cap rideshare", "category": "transportation"}]}`

func setup(t *testing.T, reply string, statement string) (*bytes.Buffer, string) {
	t.Helper()
	analyzer := insights.AnalyzerFunc(func(context.Context, string) (string, error) { return reply, nil })
	c, err := container.NewContainerWithClients(config.DefaultConfig(), logging.NewMockLogger(), container.Clients{Analyzer: analyzer})
	require.NoError(t, err)

	saved := root.SharedFlags
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = nil
		root.SharedFlags = saved
	})

	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(statement), 0600))

	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	return &buf, path
}

func TestCreepCommand_Metadata(t *testing.T) {
	assert.Equal(t, "creep", Cmd.Use)
	assert.Contains(t, Cmd.Short, "lifestyle creep")
	assert.NotNil(t, Cmd.RunE)
}

func TestCreepCommand_Run(t *testing.T) {
	buf, path := setup(t, creepReply, "date,description,debit,credit\n"+
		"2024-01-05,UBER TRIP 1,50.00,\n"+
		"2024-04-05,UBER TRIP 2,180.00,\n")
	root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Format: "json"}

	require.NoError(t, run(Cmd, nil))

	var out insights.CreepReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 100, out.OverallScore)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, insights.SeverityHigh, out.Categories[0].Severity)
	require.Len(t, out.ActionItems, 2)
	assert.Equal(t, "high", out.ActionItems[0].Priority)
	assert.Equal(t, []string{}, out.PositiveHabits)
	require.Len(t, out.RawTrends, 1)
	assert.Equal(t, "260", out.RawTrends[0].PercentChange.String())
}

func TestCreepCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		statement   string
		errContains string
	}{
		{
			name:        "single month",
			reply:       creepReply,
			statement:   "date,description,debit,credit\n2024-01-05,UBER TRIP,50.00,\n",
			errContains: "at least two months",
		},
		{
			name:      "reply without JSON",
			reply:     "No data.",
			statement: "date,description,debit,credit\n2024-01-05,UBER TRIP 1,50.00,\n2024-02-05,UBER TRIP 2,60.00,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, path := setup(t, tt.reply, tt.statement)
			root.SharedFlags = root.CommonFlags{Inputs: []string{path}, Format: "text"}

			err := run(Cmd, nil)
			require.Error(t, err)
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}
