package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemadiff/parser"
)

// Shape is the dialect two documents are compared as.
type Shape string

const (
	// ShapeOpenAPI compares paths, operations and reusable schemas
	ShapeOpenAPI Shape = "openapi"
	// ShapeJSON compares arbitrary JSON structurally
	ShapeJSON Shape = "json"
)

// openAPIMarkers are the top-level keys that mark a document as OpenAPI or Swagger.
var openAPIMarkers = []string{"openapi", "swagger", "paths", "definitions"}

// DetectShape reports ShapeOpenAPI when v is an object carrying a non-empty
// openapi, swagger, paths or definitions key, and ShapeJSON otherwise.
func DetectShape(v any) Shape {
	obj, ok := v.(map[string]any)
	if !ok {
		return ShapeJSON
	}
	for _, key := range openAPIMarkers {
		if parser.Truthy(obj[key]) {
			return ShapeOpenAPI
		}
	}
	return ShapeJSON
}

// Mode selects how the differ chooses a Shape.
type Mode int

const (
	// ModeAuto picks ShapeOpenAPI when either document looks like OpenAPI
	ModeAuto Mode = iota
	// ModeOpenAPI always compares as OpenAPI
	ModeOpenAPI
	// ModeJSON always compares as generic JSON
	ModeJSON
)

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeOpenAPI:
		return "openapi"
	case ModeJSON:
		return "json"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name (auto, openapi, json) to a Mode.
// The empty string is ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "openapi", "swagger":
		return ModeOpenAPI, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeAuto, fmt.Errorf("differ: unknown mode %q (expected auto, openapi or json)", name)
	}
}

func (m Mode) valid() bool {
	return m >= ModeAuto && m <= ModeJSON
}

// shapeFor resolves the shape two documents are compared as under mode m.
func (m Mode) shapeFor(source, target any) Shape {
	switch m {
	case ModeOpenAPI:
		return ShapeOpenAPI
	case ModeJSON:
		return ShapeJSON
	}
	if DetectShape(source) == ShapeOpenAPI || DetectShape(target) == ShapeOpenAPI {
		return ShapeOpenAPI
	}
	return ShapeJSON
}
