// Package parser loads schema documents and exposes them in the two forms the
// differ needs: a plain JSON value and a typed OpenAPI view.
//
// # Loading
//
// JSON and YAML are both accepted. YAML is decoded with go.yaml.in/yaml/v4 and
// converted into the JSON value space (map[string]any, []any, string,
// float64, bool, nil), so the rest of the module only ever sees JSON values.
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s document, %d paths\n", result.SourceFormat, result.Stats.PathCount)
//
// # Typed view
//
// [NewDocument] builds a [Document] from any JSON value. It understands both
// OpenAPI 3.x (components.schemas, requestBody, content-typed responses) and
// Swagger 2.0 (definitions, inline parameter types, response schemas).
// Missing or malformed sections become empty collections; nothing is validated
// and $ref pointers are kept as strings.
package parser
