package differ

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSchemaPresence(t *testing.T) {
	assert.Empty(t, compareSchema("x", nil, nil))

	added := compareSchema("x", nil, schemaOf(t, `{"type":"string"}`))
	require.Len(t, added, 1)
	assert.Equal(t, ChangeTypeAdded, added[0].Type)
	assert.Equal(t, SeverityInfo, added[0].Severity)
	assert.Equal(t, map[string]any{"type": "string"}, added[0].After)
	assert.Nil(t, added[0].Before)

	removed := compareSchema("x", schemaOf(t, `{"type":"string"}`), nil)
	require.Len(t, removed, 1)
	assert.Equal(t, ChangeTypeRemoved, removed[0].Type)
	assert.Equal(t, SeverityCritical, removed[0].Severity)
	assert.Equal(t, "Schema removed at x (breaking change)", removed[0].Description)
}

func TestCompareSchemaRules(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		expected []changeKey
	}{
		{
			name:     "identical",
			source:   `{"type":"object","properties":{"id":{"type":"integer"}},"required":["id"]}`,
			target:   `{"type":"object","properties":{"id":{"type":"integer"}},"required":["id"]}`,
			expected: nil,
		},
		{
			name:     "type changed",
			source:   `{"type":"integer"}`,
			target:   `{"type":"string"}`,
			expected: []changeKey{{"s.type", ChangeTypeModified, SeverityCritical}},
		},
		{
			name:     "type only on one side",
			source:   `{"type":"integer"}`,
			target:   `{"format":"int64"}`,
			expected: nil,
		},
		{
			name:     "optional property added",
			source:   `{"properties":{}}`,
			target:   `{"properties":{"tag":{"type":"string"}}}`,
			expected: []changeKey{{"s.properties.tag", ChangeTypeAdded, SeverityInfo}},
		},
		{
			name:   "required property added",
			source: `{"properties":{}}`,
			target: `{"properties":{"tag":{"type":"string"}},"required":["tag"]}`,
			// A new required property is reported once, not again as a required flip.
			expected: []changeKey{{"s.properties.tag", ChangeTypeAdded, SeverityWarning}},
		},
		{
			name:     "property removed",
			source:   `{"properties":{"tag":{"type":"string"}}}`,
			target:   `{"properties":{}}`,
			expected: []changeKey{{"s.properties.tag", ChangeTypeRemoved, SeverityCritical}},
		},
		{
			name:     "property type changed",
			source:   `{"properties":{"id":{"type":"integer"}}}`,
			target:   `{"properties":{"id":{"type":"string"}}}`,
			expected: []changeKey{{"s.properties.id.type", ChangeTypeModified, SeverityCritical}},
		},
		{
			name:     "enum added on one side",
			source:   `{"properties":{"s":{"type":"string"}}}`,
			target:   `{"properties":{"s":{"type":"string","enum":["a"]}}}`,
			expected: []changeKey{{"s.properties.s.enum", ChangeTypeModified, SeverityWarning}},
		},
		{
			name:     "enum reordered",
			source:   `{"properties":{"s":{"enum":["a","b"]}}}`,
			target:   `{"properties":{"s":{"enum":["b","a"]}}}`,
			expected: []changeKey{{"s.properties.s.enum", ChangeTypeModified, SeverityWarning}},
		},
		{
			name:     "empty enum equals missing enum",
			source:   `{"properties":{"s":{"enum":[]}}}`,
			target:   `{"properties":{"s":{}}}`,
			expected: nil,
		},
		{
			name:     "optional became required",
			source:   `{"properties":{"a":{}},"required":[]}`,
			target:   `{"properties":{"a":{}},"required":["a"]}`,
			expected: []changeKey{{"s.required.a", ChangeTypeModified, SeverityWarning}},
		},
		{
			name:     "required became optional",
			source:   `{"properties":{"a":{}},"required":["a"]}`,
			target:   `{"properties":{"a":{}}}`,
			expected: nil,
		},
		{
			name:     "required name without old property",
			source:   `{"properties":{}}`,
			target:   `{"required":["ghost"]}`,
			expected: nil,
		},
		{
			name:     "duplicate required names",
			source:   `{"properties":{"a":{}}}`,
			target:   `{"properties":{"a":{}},"required":["a","a"]}`,
			expected: []changeKey{{"s.required.a", ChangeTypeModified, SeverityWarning}},
		},
		{
			name:   "nested properties recurse",
			source: `{"properties":{"owner":{"type":"object","properties":{"id":{"type":"integer"},"name":{"type":"string"}}}}}`,
			target: `{"properties":{"owner":{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}}}`,
			expected: []changeKey{
				{"s.properties.owner.properties.id.type", ChangeTypeModified, SeverityCritical},
				{"s.properties.owner.properties.name", ChangeTypeRemoved, SeverityCritical},
				{"s.properties.owner.required.id", ChangeTypeModified, SeverityWarning},
			},
		},
		{
			name:   "nested type change reported by property and node",
			source: `{"properties":{"owner":{"type":"object","properties":{"id":{"type":"integer"}}}}}`,
			target: `{"properties":{"owner":{"type":"array","properties":{"id":{"type":"integer"}}}}}`,
			expected: []changeKey{
				{"s.properties.owner.type", ChangeTypeModified, SeverityCritical},
				{"s.properties.owner.type", ChangeTypeModified, SeverityCritical},
			},
		},
		{
			name:     "scalar property type change reported once",
			source:   `{"properties":{"age":{"type":"integer"}}}`,
			target:   `{"properties":{"age":{"type":"string"}}}`,
			expected: []changeKey{{"s.properties.age.type", ChangeTypeModified, SeverityCritical}},
		},
		{
			name:     "items are not descended into",
			source:   `{"properties":{"list":{"type":"array","items":{"type":"integer"}}}}`,
			target:   `{"properties":{"list":{"type":"array","items":{"type":"string"}}}}`,
			expected: nil,
		},
		{
			name:     "ref targets are not compared",
			source:   `{"$ref":"#/components/schemas/A"}`,
			target:   `{"$ref":"#/components/schemas/B"}`,
			expected: nil,
		},
		{
			name:     "property declared null",
			source:   `{"properties":{"a":null}}`,
			target:   `{"properties":{"a":{"type":"string"}}}`,
			expected: []changeKey{{"s.properties.a", ChangeTypeAdded, SeverityInfo}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareSchema("s", schemaOf(t, tt.source), schemaOf(t, tt.target))
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			if diff := cmp.Diff(tt.expected, keysOf(got)); diff != "" {
				t.Errorf("compareSchema() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareSchemaEnumGrowth(t *testing.T) {
	source := schemaOf(t, `{"type":"object","properties":{"status":{"type":"string","enum":["available","pending","sold"]}}}`)
	target := schemaOf(t, `{"type":"object","properties":{"status":{"type":"string","enum":["available","pending","sold","archived"]}}}`)

	changes := compareSchema("components/schemas.Pet", source, target)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, "components/schemas.Pet.properties.status.enum", c.Path)
	assert.Equal(t, ChangeTypeModified, c.Type)
	assert.Equal(t, SeverityWarning, c.Severity)
	assert.Equal(t, []any{"available", "pending", "sold"}, c.Before)
	assert.Equal(t, []any{"available", "pending", "sold", "archived"}, c.After)
}

func TestCompareSchemaTypeChangeValues(t *testing.T) {
	changes := compareSchema("s", schemaOf(t, `{"type":["string","null"]}`), schemaOf(t, `{"type":"string"}`))
	require.Len(t, changes, 1)
	assert.Equal(t, "string|null", changes[0].Before)
	assert.Equal(t, "string", changes[0].After)
	assert.Equal(t, `Type changed from "string|null" to "string" at s`, changes[0].Description)
}

func TestCompareSchemaRequiredFlipValues(t *testing.T) {
	changes := compareSchema("s",
		schemaOf(t, `{"properties":{"a":{}}}`),
		schemaOf(t, `{"properties":{"a":{}},"required":["a"]}`),
	)
	require.Len(t, changes, 1)
	assert.Equal(t, false, changes[0].Before)
	assert.Equal(t, true, changes[0].After)
}

func TestCompareNestedObjectTypeChangeCounts(t *testing.T) {
	doc := func(ownerType string) any {
		return decode(t, `{"openapi":"3.0.3","components":{"schemas":{"Pet":{"type":"object","properties":{
			"owner":{"type":"`+ownerType+`","properties":{"id":{"type":"integer"}}}}}}}}`)
	}

	result := Compare(doc("object"), doc("array"))

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.TotalChanges)
	assert.Equal(t, 2, result.Breaking)
	assert.Equal(t, `Property "owner" type changed from "object" to "array"`, result.Changes[0].Description)
	assert.Equal(t, `Type changed from "object" to "array" at components/schemas.Pet.properties.owner`, result.Changes[1].Description)
	for _, c := range result.Changes {
		assert.Equal(t, "components/schemas.Pet.properties.owner.type", c.Path)
	}
}
