package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compareOldSpec = `{"openapi": "3.0.0", "paths": {"/pets": {"get": {}, "post": {}}}}`

const compareNewSpec = `openapi: "3.0.0"
paths:
  /pets:
    get: {}
  /owners:
    get: {}
`

func TestCompareTool_DetectsChanges(t *testing.T) {
	input := compareInput{
		Old: docInput{Content: compareOldSpec},
		New: docInput{Content: compareNewSpec},
	}
	result, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, "openapi", output.Shape)
	assert.Equal(t, 2, output.TotalChanges)
	assert.Equal(t, 1, output.Breaking)
	assert.Equal(t, 1, output.NonBreaking)
	assert.Equal(t, 0, output.Warnings)
	assert.Equal(t, 1, output.Info)
	assert.Equal(t, "Detected 2 total change(s): 1 breaking change(s), 1 informational change(s).", output.Summary)

	require.Len(t, output.Changes, 2)
	assert.Equal(t, compareChange{
		Path:        "paths./owners",
		Kind:        "added",
		Severity:    "info",
		After:       map[string]any{"get": map[string]any{}},
		Description: "New endpoint added: /owners",
	}, output.Changes[0])
	assert.Equal(t, "paths./pets.POST", output.Changes[1].Path)
	assert.Equal(t, "removed", output.Changes[1].Kind)
	assert.Equal(t, "critical", output.Changes[1].Severity)
	assert.Equal(t, "Method POST removed from /pets (breaking change)", output.Changes[1].Description)
}

func TestCompareTool_BreakingOnly(t *testing.T) {
	input := compareInput{
		Old:          docInput{Content: compareOldSpec},
		New:          docInput{Content: compareNewSpec},
		BreakingOnly: true,
	}
	_, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.TotalChanges)
	assert.Equal(t, 1, output.Breaking)
	assert.Equal(t, 0, output.Info)
	require.Len(t, output.Changes, 1)
	assert.Equal(t, "critical", output.Changes[0].Severity)
	assert.Equal(t, "Detected 1 total change(s): 1 breaking change(s).", output.Summary)
}

func TestCompareTool_NoInfo(t *testing.T) {
	input := compareInput{
		Old:    docInput{Content: compareOldSpec},
		New:    docInput{Content: compareNewSpec},
		NoInfo: true,
	}
	_, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.TotalChanges)
	assert.Equal(t, "paths./pets.POST", output.Changes[0].Path)
}

func TestCompareTool_GenericJSON(t *testing.T) {
	input := compareInput{
		Old: docInput{Content: `{"replicas": 2, "image": "api:1"}`},
		New: docInput{Content: `{"replicas": 3}`},
	}
	_, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "json", output.Shape)
	require.Len(t, output.Changes, 2)
	assert.Equal(t, "image", output.Changes[0].Path)
	assert.Equal(t, "critical", output.Changes[0].Severity)
	assert.Equal(t, "replicas", output.Changes[1].Path)
	assert.Equal(t, float64(2), output.Changes[1].Before)
	assert.Equal(t, float64(3), output.Changes[1].After)
}

func TestCompareTool_ForcedMode(t *testing.T) {
	input := compareInput{
		Old:  docInput{Content: compareOldSpec},
		New:  docInput{Content: compareOldSpec},
		Mode: "json",
	}
	_, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, "json", output.Shape)
	assert.Equal(t, 0, output.TotalChanges)
	assert.Nil(t, output.Changes)
	assert.Equal(t, "No changes detected between the two schemas.", output.Summary)
}

func TestCompareTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   compareInput
		wantErr string
	}{
		{
			name:    "unknown mode",
			input:   compareInput{Old: docInput{Content: "{}"}, New: docInput{Content: "{}"}, Mode: "xml"},
			wantErr: `differ: unknown mode "xml"`,
		},
		{
			name:    "missing old",
			input:   compareInput{New: docInput{Content: "{}"}},
			wantErr: "old: exactly one of file or content must be provided",
		},
		{
			name:    "invalid new",
			input:   compareInput{Old: docInput{Content: "{}"}, New: docInput{Content: `{"a": `}},
			wantErr: "new: ",
		},
		{
			name:    "file path is sanitized",
			input:   compareInput{Old: docInput{File: "/tmp/schemadiff-missing/old.json"}, New: docInput{Content: "{}"}},
			wantErr: "old: parse error in <path>: failed to open file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := handleCompare(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Equal(t, compareOutput{}, output)

			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.wantErr)
		})
	}
}
