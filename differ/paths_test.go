package differ

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemadiff/parser"
)

func pathsOf(t *testing.T, src string) map[string]*parser.PathItem {
	t.Helper()
	return parser.NewDocument(map[string]any{"paths": decode(t, src)}).Paths
}

func TestComparePathsMethodRemoved(t *testing.T) {
	source := pathsOf(t, `{"/pets":{"get":{"operationId":"list"},"post":{"operationId":"create"}}}`)
	target := pathsOf(t, `{"/pets":{"get":{"operationId":"list"}}}`)

	changes := comparePaths(source, target)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, "paths./pets.POST", c.Path)
	assert.Equal(t, ChangeTypeRemoved, c.Type)
	assert.Equal(t, SeverityCritical, c.Severity)
	assert.Equal(t, map[string]any{"operationId": "create"}, c.Before)
	assert.Nil(t, c.After)
	assert.Equal(t, "Method POST removed from /pets (breaking change)", c.Description)
}

func TestComparePathsRules(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		expected []changeKey
	}{
		{
			name:     "endpoint added",
			source:   `{}`,
			target:   `{"/stores":{"get":{}}}`,
			expected: []changeKey{{"paths./stores", ChangeTypeAdded, SeverityInfo}},
		},
		{
			name:     "endpoint removed",
			source:   `{"/stores":{"get":{}}}`,
			target:   `{}`,
			expected: []changeKey{{"paths./stores", ChangeTypeRemoved, SeverityCritical}},
		},
		{
			name:     "non-object path item still counts as present",
			source:   `{"/x":null}`,
			target:   `{}`,
			expected: []changeKey{{"paths./x", ChangeTypeRemoved, SeverityCritical}},
		},
		{
			name:   "methods in fixed order",
			source: `{"/p":{"delete":{},"get":{}}}`,
			target: `{"/p":{"options":{},"put":{},"post":{}}}`,
			expected: []changeKey{
				{"paths./p.GET", ChangeTypeRemoved, SeverityCritical},
				{"paths./p.POST", ChangeTypeAdded, SeverityInfo},
				{"paths./p.PUT", ChangeTypeAdded, SeverityInfo},
				{"paths./p.DELETE", ChangeTypeRemoved, SeverityCritical},
				{"paths./p.OPTIONS", ChangeTypeAdded, SeverityInfo},
			},
		},
		{
			name:     "unknown method keys are ignored",
			source:   `{"/p":{"trace":{},"summary":"x"}}`,
			target:   `{"/p":{"summary":"y"}}`,
			expected: []changeKey{},
		},
		{
			name:   "paths in sorted order",
			source: `{"/b":{},"/a":{}}`,
			target: `{"/c":{}}`,
			expected: []changeKey{
				{"paths./a", ChangeTypeRemoved, SeverityCritical},
				{"paths./b", ChangeTypeRemoved, SeverityCritical},
				{"paths./c", ChangeTypeAdded, SeverityInfo},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keysOf(comparePaths(pathsOf(t, tt.source), pathsOf(t, tt.target)))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("comparePaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareOperation(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		expected []changeKey
	}{
		{
			name:     "request body added",
			source:   `{}`,
			target:   `{"requestBody":{"content":{"application/json":{"schema":{"type":"object"}}}}}`,
			expected: []changeKey{{"paths./pets.GET.requestBody", ChangeTypeAdded, SeverityInfo}},
		},
		{
			name:     "request body removed",
			source:   `{"requestBody":{"content":{"application/json":{"schema":{"type":"object"}}}}}`,
			target:   `{}`,
			expected: []changeKey{{"paths./pets.GET.requestBody", ChangeTypeRemoved, SeverityCritical}},
		},
		{
			name:     "non-JSON media types are ignored",
			source:   `{"requestBody":{"content":{"text/plain":{"schema":{"type":"string"}}}}}`,
			target:   `{}`,
			expected: []changeKey{},
		},
		{
			name:     "response schema type changed",
			source:   `{"responses":{"200":{"content":{"application/json":{"schema":{"type":"array"}}}}}}`,
			target:   `{"responses":{"200":{"content":{"application/json":{"schema":{"type":"object"}}}}}}`,
			expected: []changeKey{{"paths./pets.GET.responses.200.type", ChangeTypeModified, SeverityCritical}},
		},
		{
			name:     "swagger response schema",
			source:   `{"responses":{"200":{"schema":{"properties":{"id":{}}}}}}`,
			target:   `{"responses":{"200":{"schema":{"properties":{}}}}}`,
			expected: []changeKey{{"paths./pets.GET.responses.200.properties.id", ChangeTypeRemoved, SeverityCritical}},
		},
		{
			name:     "response without schema on both sides",
			source:   `{"responses":{"204":{"description":"a"}}}`,
			target:   `{"responses":{"204":{"description":"b"}}}`,
			expected: []changeKey{},
		},
		{
			name:   "responses in sorted status order",
			source: `{"responses":{"404":{"schema":{}},"200":{"schema":{}}}}`,
			target: `{"responses":{"201":{"schema":{}}}}`,
			expected: []changeKey{
				{"paths./pets.GET.responses.200", ChangeTypeRemoved, SeverityCritical},
				{"paths./pets.GET.responses.201", ChangeTypeAdded, SeverityInfo},
				{"paths./pets.GET.responses.404", ChangeTypeRemoved, SeverityCritical},
			},
		},
		{
			name:   "parameters before bodies",
			source: `{"parameters":[{"name":"q","in":"query"}],"requestBody":{"content":{"application/json":{"schema":{}}}}}`,
			target: `{}`,
			expected: []changeKey{
				{"paths./pets.GET.parameters.q", ChangeTypeRemoved, SeverityCritical},
				{"paths./pets.GET.requestBody", ChangeTypeRemoved, SeverityCritical},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keysOf(compareOperation("/pets", "GET", operationOf(t, tt.source), operationOf(t, tt.target)))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("compareOperation() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
