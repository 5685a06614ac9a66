/*
Package differ compares two versions of a schema document and classifies every
structural difference by its impact on existing clients.

# Overview

Documents are compared in one of two dialects (Shape):

  - ShapeOpenAPI: OpenAPI 3.x and Swagger 2.0 documents. Paths, HTTP methods,
    parameters, request and response bodies, and reusable schemas
    (components.schemas, or definitions for Swagger 2.0) are compared with
    API-compatibility rules.
  - ShapeJSON: any other JSON value, compared key by key with no API
    semantics. Arrays are compared whole.

ModeAuto (the default) picks ShapeOpenAPI when either document is an object
with a non-empty openapi, swagger, paths or definitions key.

# Usage

The package provides two API styles:

 1. Package-level functions: Compare for decoded values, CompareWithOptions
    for files and parse results
 2. Struct-based API: a Differ configured once and reused

# Severity Levels

  - SeverityCritical: breaking changes. Every removal (endpoint, method,
    parameter, property, definition, key) and every type change.
  - SeverityWarning: changes that may break some clients, such as a new
    required parameter or property, an optional field becoming required,
    a changed enum, or a generic JSON value changing kind.
  - SeverityInfo: additive or cosmetic changes.

# Example

	package main

	import (
		"fmt"
		"log"

		"github.com/erraggy/schemadiff/differ"
	)

	func main() {
		result, err := differ.CompareWithOptions(
			differ.WithSourceFilePath("api-v1.yaml"),
			differ.WithTargetFilePath("api-v2.yaml"),
		)
		if err != nil {
			log.Fatal(err)
		}

		for _, change := range result.Changes {
			fmt.Println(change)
		}
		fmt.Println(result.Summary)
		if result.HasBreakingChanges() {
			fmt.Printf("Found %d breaking change(s)\n", result.Breaking)
		}
	}

# References

$ref pointers are compared as strings and never resolved. A change inside a
referenced definition is reported once, under components/schemas, and not at
every place that references it.

# Determinism

Object keys, paths, status codes and definition names are visited in sorted
order, so identical inputs always produce identical change lists.
*/
package differ
