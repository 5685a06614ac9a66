package differ

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/erraggy/schemadiff/internal/maputil"
	"github.com/erraggy/schemadiff/parser"
)

// rootLabel names the document itself in descriptions of root-level changes.
const rootLabel = "document root"

// compareJSON structurally diffs two arbitrary JSON values. Objects are
// compared key by key; a non-object root is compared as a single value at
// the empty path.
func compareJSON(source, target any) []Change {
	sObj, sOK := source.(map[string]any)
	tObj, tOK := target.(map[string]any)
	if sOK && tOK {
		return compareObjects("", sObj, tObj)
	}
	return compareJSONValue("", rootLabel, source, target)
}

func compareObjects(base string, source, target map[string]any) []Change {
	var changes []Change
	for _, key := range maputil.UnionKeys(source, target) {
		path := childPath(base, key)
		sVal, inSource := source[key]
		tVal, inTarget := target[key]

		switch {
		case !inTarget:
			changes = append(changes, removed(path, parser.Clone(sVal),
				fmt.Sprintf("Key %q removed (breaking change)", key)))
		case !inSource:
			changes = append(changes, added(path, parser.Clone(tVal),
				fmt.Sprintf("New key %q added", key)))
		default:
			changes = append(changes, compareJSONValue(path, fmt.Sprintf("%q", key), sVal, tVal)...)
		}
	}
	return changes
}

// compareJSONValue compares two values present on both sides. label names
// the value in descriptions.
func compareJSONValue(path, label string, source, target any) []Change {
	sKind, tKind := matchKind(source), matchKind(target)
	if sKind != tKind {
		return []Change{modified(path, SeverityWarning, parser.Clone(source), parser.Clone(target),
			fmt.Sprintf("Type of %s changed from %q to %q", label, sKind, tKind))}
	}

	switch sKind {
	case parser.KindObject:
		sObj, sOK := source.(map[string]any)
		tObj, tOK := target.(map[string]any)
		if sOK && tOK {
			return compareObjects(path, sObj, tObj)
		}
		if source == nil && target == nil {
			return nil
		}
		// null against an object is a value change
		return []Change{modified(path, SeverityInfo, parser.Clone(source), parser.Clone(target),
			fmt.Sprintf("Value of %s changed from %s to %s", label, displayValue(source), displayValue(target)))}
	case parser.KindArray:
		// Arrays are compared whole: any difference, including reordering,
		// is one change.
		if !bytes.Equal(parser.CanonicalJSON(source), parser.CanonicalJSON(target)) {
			return []Change{modified(path, SeverityInfo, parser.Clone(source), parser.Clone(target),
				fmt.Sprintf("Array %s contents changed", label))}
		}
	default:
		if !primitiveEqual(sKind, source, target) {
			return []Change{modified(path, SeverityInfo, source, target,
				fmt.Sprintf("Value of %s changed from %s to %s", label, displayValue(source), displayValue(target)))}
		}
	}
	return nil
}

// matchKind is the kind two values are matched by. null shares the object
// kind, so null against an object is a value change and null against a
// string is reported as an object to string type change.
func matchKind(v any) parser.ValueKind {
	if k := parser.KindOf(v); k != parser.KindNull {
		return k
	}
	return parser.KindObject
}

// primitiveEqual compares two scalars of the same kind by value. Numbers are
// compared numerically whatever their Go type.
func primitiveEqual(kind parser.ValueKind, source, target any) bool {
	switch kind {
	case parser.KindString, parser.KindBoolean:
		return source == target
	case parser.KindNumber:
		sNum, sOK := toFloat(source)
		tNum, tOK := toFloat(target)
		if sOK && tOK {
			return sNum == tNum
		}
	}
	return bytes.Equal(parser.CanonicalJSON(source), parser.CanonicalJSON(target))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func childPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// displayValue renders a primitive for descriptions: strings quoted, other
// values in their JSON form.
func displayValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return string(parser.CanonicalJSON(v))
}
