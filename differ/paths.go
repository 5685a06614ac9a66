package differ

import (
	"fmt"

	"github.com/erraggy/schemadiff/internal/maputil"
	"github.com/erraggy/schemadiff/parser"
)

// comparePaths diffs the endpoint surface of two documents. Paths are
// visited in sorted order and methods in parser.HTTPMethods order.
func comparePaths(source, target map[string]*parser.PathItem) []Change {
	var changes []Change
	for _, path := range maputil.UnionKeys(source, target) {
		pathKey := "paths." + path
		sItem, inSource := source[path]
		tItem, inTarget := target[path]

		switch {
		case !inSource:
			changes = append(changes, added(pathKey, parser.Clone(tItem.Raw),
				fmt.Sprintf("New endpoint added: %s", path)))
			continue
		case !inTarget:
			changes = append(changes, removed(pathKey, parser.Clone(sItem.Raw),
				fmt.Sprintf("Endpoint removed: %s (breaking change)", path)))
			continue
		}

		for _, method := range parser.HTTPMethods {
			sOp, tOp := sItem.Operations[method], tItem.Operations[method]
			opKey := pathKey + "." + method
			switch {
			case sOp == nil && tOp == nil:
			case sOp == nil:
				changes = append(changes, added(opKey, parser.Clone(tOp.Raw),
					fmt.Sprintf("New method %s added to %s", method, path)))
			case tOp == nil:
				changes = append(changes, removed(opKey, parser.Clone(sOp.Raw),
					fmt.Sprintf("Method %s removed from %s (breaking change)", method, path)))
			default:
				changes = append(changes, compareOperation(path, method, sOp, tOp)...)
			}
		}
	}
	return changes
}
