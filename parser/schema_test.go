package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	raw := map[string]any{
		"type":        "object",
		"description": "A pet",
		"nullable":    true,
		"required":    []any{"id", float64(3), "name"},
		"properties": map[string]any{
			"id":   map[string]any{"type": "integer", "format": "int64"},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"gone": nil,
		},
	}

	s := NewSchema(raw)
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "A pet", s.Description)
	assert.True(t, s.Nullable)
	assert.Equal(t, []string{"id", "name"}, s.Required)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, "int64", s.Properties["id"].Format)
	assert.Equal(t, "string", TypeOf(s.Properties["tags"].Items))
	assert.Nil(t, s.Properties["gone"])
	assert.Equal(t, raw, s.Raw)
}

func TestNewSchemaEdgeCases(t *testing.T) {
	assert.Nil(t, NewSchema(nil))

	scalar := NewSchema("not a schema")
	require.NotNil(t, scalar)
	assert.Equal(t, SchemaKindEmpty, scalar.Kind())
	assert.Equal(t, "not a schema", scalar.Raw)

	multi := NewSchema(map[string]any{"type": []any{"string", "null"}})
	assert.Equal(t, "string|null", multi.Type)

	empty := NewSchema(map[string]any{"properties": map[string]any{}, "enum": []any{}})
	assert.True(t, empty.HasProperties())
	assert.NotNil(t, empty.Properties)
	assert.True(t, empty.HasEnum())

	bare := NewSchema(map[string]any{})
	assert.False(t, bare.HasProperties())
	assert.False(t, bare.HasEnum())
}

func TestSchemaKind(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected SchemaKind
	}{
		{"ref wins", map[string]any{"$ref": "#/components/schemas/Pet", "type": "object"}, SchemaKindRef},
		{"composite", map[string]any{"allOf": []any{map[string]any{"type": "string"}}}, SchemaKindComposite},
		{"empty composite list", map[string]any{"oneOf": []any{}, "type": "string"}, SchemaKindPrimitive},
		{"object by properties", map[string]any{"properties": map[string]any{}}, SchemaKindObject},
		{"object by type", map[string]any{"type": "object"}, SchemaKindObject},
		{"array by items", map[string]any{"items": map[string]any{}}, SchemaKindArray},
		{"array by type", map[string]any{"type": "array"}, SchemaKindArray},
		{"primitive", map[string]any{"type": "integer"}, SchemaKindPrimitive},
		{"empty", map[string]any{"description": "anything"}, SchemaKindEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSchema(tt.raw).Kind())
		})
	}

	var nilSchema *Schema
	assert.Equal(t, SchemaKindEmpty, nilSchema.Kind())
}

func TestSchemaRequired(t *testing.T) {
	s := NewSchema(map[string]any{"required": []any{"a", "b"}})
	assert.True(t, s.IsRequired("a"))
	assert.True(t, s.IsRequired("b"))
	assert.False(t, s.IsRequired("c"))

	var nilSchema *Schema
	assert.False(t, nilSchema.IsRequired("a"))
	assert.False(t, nilSchema.HasProperties())
	assert.False(t, nilSchema.HasEnum())
	assert.Equal(t, "", TypeOf(nilSchema))
}
