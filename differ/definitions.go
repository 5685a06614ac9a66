package differ

import (
	"fmt"

	"github.com/erraggy/schemadiff/internal/maputil"
	"github.com/erraggy/schemadiff/parser"
)

// definitionsPrefix is the path prefix of reusable schema changes. Swagger
// 2.0 definitions are reported under the same prefix.
const definitionsPrefix = "components/schemas"

// compareDefinitions diffs the named reusable schemas of two documents.
func compareDefinitions(source, target map[string]*parser.Schema) []Change {
	var changes []Change
	for _, name := range maputil.UnionKeys(source, target) {
		defPath := definitionsPrefix + "." + name
		sDef, inSource := source[name]
		tDef, inTarget := target[name]

		switch {
		case !inSource:
			changes = append(changes, added(defPath, rawOf(tDef),
				fmt.Sprintf("New schema definition added: %s", name)))
		case !inTarget:
			changes = append(changes, removed(defPath, rawOf(sDef),
				fmt.Sprintf("Schema definition removed: %s (breaking change)", name)))
		default:
			changes = append(changes, compareSchema(defPath, sDef, tDef)...)
		}
	}
	return changes
}
