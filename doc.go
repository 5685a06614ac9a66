// Package schemadiff compares two versions of an API schema document and
// classifies every structural difference by its impact on existing clients.
//
// # Overview
//
// The module is organised like a small toolkit:
//
//   - parser: load JSON or YAML documents into JSON values and a typed OpenAPI tree
//   - differ: the comparison engine (paths, operations, parameters, schemas,
//     definitions, and a generic JSON fallback)
//   - oaserrors: typed errors returned by the loader and the option layer
//
// Both OpenAPI dialects are understood: Swagger 2.0 (top-level `swagger` and
// `definitions`) and OpenAPI 3.x (`openapi` and `components.schemas`). Any other
// JSON document is compared structurally, without HTTP semantics.
//
// # Quick Start
//
//	import "github.com/erraggy/schemadiff/differ"
//
//	result, err := differ.CompareWithOptions(
//		differ.WithSourceFilePath("api-v1.yaml"),
//		differ.WithTargetFilePath("api-v2.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Summary)
//	for _, change := range result.Changes {
//		fmt.Println(change)
//	}
//
// # Severity
//
// Every change carries one of three severities:
//
//   - critical: breaking for existing clients (anything removed, type changes)
//   - warning: may break some clients (new required inputs, enum changes)
//   - info: additive or cosmetic
//
// # Command Line
//
// The schemadiff binary wraps the library:
//
//	schemadiff compare api-v1.yaml api-v2.yaml
//	schemadiff compare --format json old.json new.json
//	schemadiff serve --addr :8080
//	schemadiff mcp
package schemadiff
