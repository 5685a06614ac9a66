package parser

import (
	"strings"
)

// HTTPMethods lists the operations compared for every path item, in the order
// changes are reported.
var HTTPMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// JSONMediaType is the only media type whose schemas are compared.
const JSONMediaType = "application/json"

// Schema source locations reported by Document.SchemasSource.
const (
	SchemasSourceComponents  = "components.schemas"
	SchemasSourceDefinitions = "definitions"
)

// Document is the typed view of an OpenAPI 3.x or Swagger 2.0 document that
// the differ walks. Missing or malformed sections are empty, never errors.
type Document struct {
	// Version is the value of the top-level openapi or swagger key, if any
	Version string
	// Paths maps path templates to path items. Every key of the source
	// paths object is present, including ones whose value is not an object.
	Paths map[string]*PathItem
	// Schemas maps reusable schema names to their nodes: components.schemas
	// for OAS 3.x, falling back to definitions for Swagger 2.0.
	Schemas map[string]*Schema
	// SchemasSource records which section Schemas came from, or "" if neither.
	SchemasSource string
}

// PathItem holds the operations declared for one path template.
type PathItem struct {
	// Operations maps upper-case HTTP methods to operations. Only object
	// values under the lower-case method keys are recognised.
	Operations map[string]*Operation
	// Raw is the source JSON value of the path item
	Raw any
}

// Operation is one HTTP method of a path item.
type Operation struct {
	// Parameters in source order. Non-object entries are skipped.
	Parameters []*Parameter
	// RequestBody is the application/json request body schema (OAS 3.x), if any
	RequestBody *Schema
	// Responses maps every declared status code to its JSON schema. The value
	// is nil when the response declares no JSON schema.
	Responses map[string]*Schema
	// Raw is the source JSON value of the operation
	Raw map[string]any
}

// Parameter is one operation parameter.
type Parameter struct {
	// Name is the parameter name. A name-less parameter that only carries a
	// $ref uses the ref string, so referenced parameters stay distinguishable.
	Name string
	// In is the location: query, path, header, cookie (or body/formData in Swagger 2.0)
	In string
	// Required is the required flag
	Required bool
	// Schema is the OAS 3.x parameter schema, if any
	Schema *Schema
	// Type is the Swagger 2.0 inline type, if any
	Type string
	// Raw is the source JSON value of the parameter
	Raw map[string]any
}

// Key returns the identity of the parameter within one operation: name and location.
func (p *Parameter) Key() string {
	return p.Name + ":" + p.In
}

// EffectiveType is the schema type when present, falling back to the legacy inline type.
func (p *Parameter) EffectiveType() string {
	if t := TypeOf(p.Schema); t != "" {
		return t
	}
	return p.Type
}

// NewDocument builds the typed view of a JSON value. Any value is accepted;
// a non-object yields an empty document.
func NewDocument(v any) *Document {
	obj := asObject(v)
	doc := &Document{
		Paths:   make(map[string]*PathItem),
		Schemas: make(map[string]*Schema),
	}
	if obj == nil {
		return doc
	}

	doc.Version = asString(obj["openapi"])
	if doc.Version == "" {
		doc.Version = asString(obj["swagger"])
	}

	for path, item := range asObject(obj["paths"]) {
		doc.Paths[path] = newPathItem(item)
	}

	schemas := asObject(asObject(obj["components"])["schemas"])
	if schemas != nil {
		doc.SchemasSource = SchemasSourceComponents
	} else if schemas = asObject(obj["definitions"]); schemas != nil {
		doc.SchemasSource = SchemasSourceDefinitions
	}
	for name, schema := range schemas {
		doc.Schemas[name] = NewSchema(schema)
	}
	return doc
}

func newPathItem(v any) *PathItem {
	item := &PathItem{
		Operations: make(map[string]*Operation),
		Raw:        v,
	}
	obj := asObject(v)
	for _, method := range HTTPMethods {
		if op := asObject(obj[strings.ToLower(method)]); op != nil {
			item.Operations[method] = newOperation(op)
		}
	}
	return item
}

func newOperation(obj map[string]any) *Operation {
	op := &Operation{
		Responses: make(map[string]*Schema),
		Raw:       obj,
	}

	if params, ok := obj["parameters"].([]any); ok {
		for _, p := range params {
			if pobj := asObject(p); pobj != nil {
				op.Parameters = append(op.Parameters, newParameter(pobj))
			}
		}
	}

	op.RequestBody = jsonContentSchema(asObject(obj["requestBody"]))

	for status, resp := range asObject(obj["responses"]) {
		respObj := asObject(resp)
		schema := jsonContentSchema(respObj)
		if schema == nil {
			// Swagger 2.0 puts the schema directly on the response.
			schema = objectSchema(respObj["schema"])
		}
		op.Responses[status] = schema
	}
	return op
}

func newParameter(obj map[string]any) *Parameter {
	p := &Parameter{
		Name:   asString(obj["name"]),
		In:     asString(obj["in"]),
		Schema: objectSchema(obj["schema"]),
		Type:   typeName(obj["type"]),
		Raw:    obj,
	}
	p.Required, _ = obj["required"].(bool)
	if p.Name == "" {
		p.Name = asString(obj["$ref"])
	}
	return p
}

// jsonContentSchema returns content["application/json"].schema of a request
// body or response object.
func jsonContentSchema(obj map[string]any) *Schema {
	media := asObject(asObject(obj["content"])[JSONMediaType])
	return objectSchema(media["schema"])
}

// objectSchema builds a schema only when v is an object.
func objectSchema(v any) *Schema {
	if asObject(v) == nil {
		return nil
	}
	return NewSchema(v)
}

// DocumentStats contains statistical information about a document.
type DocumentStats struct {
	// PathCount is the number of path templates
	PathCount int
	// OperationCount is the number of recognised operations across all paths
	OperationCount int
	// SchemaCount is the number of reusable schemas
	SchemaCount int
}

// Stats counts paths, operations and reusable schemas.
func (d *Document) Stats() DocumentStats {
	stats := DocumentStats{
		PathCount:   len(d.Paths),
		SchemaCount: len(d.Schemas),
	}
	for _, item := range d.Paths {
		stats.OperationCount += len(item.Operations)
	}
	return stats
}
