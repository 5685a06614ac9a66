package differ

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemadiff/parser"
)

// decode parses an inline JSON literal into the JSON value space.
func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

// schemaOf builds a schema node from an inline JSON literal.
func schemaOf(t *testing.T, src string) *parser.Schema {
	t.Helper()
	return parser.NewSchema(decode(t, src))
}

// operationOf builds the GET operation of a one-path document whose
// operation object is given as an inline JSON literal.
func operationOf(t *testing.T, src string) *parser.Operation {
	t.Helper()
	doc := parser.NewDocument(map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{"get": decode(t, src)},
		},
	})
	op := doc.Paths["/pets"].Operations["GET"]
	require.NotNil(t, op)
	return op
}

// loadFixture parses a document from the repository testdata directory.
func loadFixture(t *testing.T, name string) *parser.ParseResult {
	t.Helper()
	result, err := parser.New().Parse("../testdata/" + name)
	require.NoError(t, err)
	return result
}

// changeKey reduces a change to its comparable (path, type, severity) triple.
type changeKey struct {
	Path     string
	Type     ChangeType
	Severity Severity
}

func keysOf(changes []Change) []changeKey {
	keys := make([]changeKey, 0, len(changes))
	for _, c := range changes {
		keys = append(keys, changeKey{Path: c.Path, Type: c.Type, Severity: c.Severity})
	}
	return keys
}
