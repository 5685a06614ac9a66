package parser

import "strings"

// SchemaKind names the shape variant a schema node follows.
//
// Schema nodes are decoded permissively into one structural type, so a node may
// carry fields from several variants at once (for example both $ref and
// properties). Kind reports the variant that takes precedence, in this order:
// ref, composite, object, array, primitive, empty.
type SchemaKind string

const (
	// SchemaKindRef is an unresolved $ref pointer
	SchemaKindRef SchemaKind = "ref"
	// SchemaKindComposite is an allOf/oneOf/anyOf combination
	SchemaKindComposite SchemaKind = "composite"
	// SchemaKindObject declares properties or type "object"
	SchemaKindObject SchemaKind = "object"
	// SchemaKindArray declares items or type "array"
	SchemaKindArray SchemaKind = "array"
	// SchemaKindPrimitive declares any other type
	SchemaKindPrimitive SchemaKind = "primitive"
	// SchemaKindEmpty declares nothing structural
	SchemaKindEmpty SchemaKind = "empty"
)

// Schema is one node of a JSON Schema / OpenAPI schema tree.
//
// $ref is kept as a string and never dereferenced.
type Schema struct {
	// Type is the declared type. A list of types (OAS 3.1) is joined with "|".
	Type string
	// Format is the declared format, e.g. "int64"
	Format string
	// Description is the human description, if any
	Description string
	// Nullable is the OAS 3.0 nullable flag
	Nullable bool
	// Ref is the raw $ref string
	Ref string
	// Properties maps property names to their schemas. The map is non-nil
	// whenever the source declared a properties object, even an empty one.
	// A property whose value is JSON null maps to a nil *Schema.
	Properties map[string]*Schema
	// Required lists required property names in source order
	Required []string
	// Items is the array item schema
	Items *Schema
	// Enum holds the allowed values. It is non-nil whenever the source
	// declared an enum array, even an empty one.
	Enum []any
	// AllOf, OneOf and AnyOf are composition members
	AllOf []*Schema
	OneOf []*Schema
	AnyOf []*Schema
	// Raw is the source JSON value of this node
	Raw any
}

// NewSchema builds a schema node from a JSON value. JSON null yields nil.
// Any other non-object value yields an empty node that only carries Raw.
func NewSchema(v any) *Schema {
	if v == nil {
		return nil
	}
	s := &Schema{Raw: v}
	obj := asObject(v)
	if obj == nil {
		return s
	}

	s.Type = typeName(obj["type"])
	s.Format = asString(obj["format"])
	s.Description = asString(obj["description"])
	s.Ref = asString(obj["$ref"])
	s.Nullable, _ = obj["nullable"].(bool)

	if props := asObject(obj["properties"]); props != nil {
		s.Properties = make(map[string]*Schema, len(props))
		for name, prop := range props {
			s.Properties[name] = NewSchema(prop)
		}
	}
	if req, ok := obj["required"].([]any); ok {
		s.Required = make([]string, 0, len(req))
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	s.Items = NewSchema(obj["items"])
	if enum, ok := obj["enum"].([]any); ok {
		s.Enum = enum
		if s.Enum == nil {
			s.Enum = []any{}
		}
	}
	s.AllOf = schemaList(obj["allOf"])
	s.OneOf = schemaList(obj["oneOf"])
	s.AnyOf = schemaList(obj["anyOf"])
	return s
}

// Kind reports the variant this node follows. A nil node is empty.
func (s *Schema) Kind() SchemaKind {
	switch {
	case s == nil:
		return SchemaKindEmpty
	case s.Ref != "":
		return SchemaKindRef
	case len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return SchemaKindComposite
	case s.Properties != nil || s.Type == "object":
		return SchemaKindObject
	case s.Items != nil || s.Type == "array":
		return SchemaKindArray
	case s.Type != "":
		return SchemaKindPrimitive
	default:
		return SchemaKindEmpty
	}
}

// HasProperties reports whether the node declared a properties object.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties != nil
}

// HasEnum reports whether the node declared an enum array.
func (s *Schema) HasEnum() bool {
	return s != nil && s.Enum != nil
}

// IsRequired reports whether name is listed in the node's required array.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// TypeOf returns the declared type of s, or "" for a nil node.
func TypeOf(s *Schema) string {
	if s == nil {
		return ""
	}
	return s.Type
}

func typeName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		names := make([]string, 0, len(t))
		for _, item := range t {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
		return strings.Join(names, "|")
	default:
		return ""
	}
}

func schemaList(v any) []*Schema {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]*Schema, 0, len(items))
	for _, item := range items {
		if s := NewSchema(item); s != nil {
			out = append(out, s)
		}
	}
	return out
}
