// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatText(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{
			name:   "answer with sources",
			result: map[string]any{"response": "Open 9 to 5.", "sources": []any{"hours.pdf", "site.com"}},
			want:   "Open 9 to 5.\n\nSources:\n  [1] hours.pdf\n  [2] site.com\n",
		},
		{
			name:   "answer without sources",
			result: map[string]any{"response": "Yes."},
			want:   "Yes.\n",
		},
		{
			name:   "generic object",
			result: map[string]any{"status": "queued", "position": json.Number("4")},
			want:   "position  4\nstatus    queued\n",
		},
		{name: "string", result: "plain", want: "plain\n"},
		{name: "nil", result: nil, want: "No response.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, FormatText(tt.result, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatTextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatText([]any{"a", json.Number("1")}, &buf))
	assert.JSONEq(t, `["a", 1]`, buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(map[string]any{"response": "x"}, &buf))
	assert.Equal(t, "{\n  \"response\": \"x\"\n}\n", buf.String())
}
