package jsonextract

import (
	"encoding/json"
	"errors"
	"testing"

	"fjacquet/spend-insights/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare array",
			input:    `[{"type":"tip"}]`,
			expected: `[{"type":"tip"}]`,
		},
		{
			name:     "fenced array",
			input:    "```json\n[{\"type\":\"tip\",\"icon\":\"💡\",\"title\":\"Save\",\"message\":\"Cook more\"}]\n```",
			expected: `[{"type":"tip","icon":"💡","title":"Save","message":"Cook more"}]`,
		},
		{
			name:     "object in prose",
			input:    `Here is the analysis: {"onTrack": true, "message": "Keep going"} Hope it helps!`,
			expected: `{"onTrack": true, "message": "Keep going"}`,
		},
		{
			name:     "brackets inside strings",
			input:    `Result: {"message": "use [brackets] and } braces", "n": [1, 2]}.`,
			expected: `{"message": "use [brackets] and } braces", "n": [1, 2]}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"message": "she said \"hi}\""}`,
			expected: `{"message": "she said \"hi}\""}`,
		},
		{
			name:     "skips invalid candidate",
			input:    `Options [a, b] follow: [{"type":"warning"}]`,
			expected: `[{"type":"warning"}]`,
		},
		{
			name:     "first value wins",
			input:    `{"a":1} and then [2]`,
			expected: `{"a":1}`,
		},
		{
			name:     "unclosed prefix then valid value",
			input:    `{"broken": [1, 2 ... anyway {"ok": true}`,
			expected: `{"ok": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Extract(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(raw))
			assert.True(t, json.Valid(raw))
		})
	}
}

func TestExtract_NoJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain prose", input: "I could not analyze your spending right now."},
		{name: "empty", input: "   "},
		{name: "unbalanced", input: `{"a": [1, 2}`},
		{name: "mismatched", input: `[1, 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Extract(tt.input)
			assert.Nil(t, raw)
			var extractionErr *parsererror.ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.NotEmpty(t, extractionErr.Reason)
		})
	}
}

func TestExtractArrayAndObject(t *testing.T) {
	input := `Summary {"score": 3} details [{"type":"tip"}]`

	arr, err := ExtractArray(input)
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"tip"}]`, string(arr))

	obj, err := ExtractObject(input)
	require.NoError(t, err)
	assert.Equal(t, `{"score": 3}`, string(obj))

	_, err = ExtractObject(`[1, 2, 3]`)
	var extractionErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, extractionErr.Error(), "no JSON object found")
	assert.Contains(t, extractionErr.Error(), "[1, 2, 3]")
}

func TestExtract_DecodesIntoStruct(t *testing.T) {
	raw, err := ExtractObject("```\n{\"onTrack\": false, \"message\": \"Cut dining by 20%\"}\n```")
	require.NoError(t, err)

	var goal struct {
		OnTrack bool   `json:"onTrack"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &goal))
	assert.False(t, goal.OnTrack)
	assert.Equal(t, "Cut dining by 20%", goal.Message)
}
