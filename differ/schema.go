package differ

import (
	"bytes"
	"fmt"

	"github.com/erraggy/schemadiff/internal/maputil"
	"github.com/erraggy/schemadiff/parser"
)

// compareSchema diffs two schema nodes found at path. A nil node is absent.
//
// Only properties trigger recursion: a nested schema that changes through
// items or allOf/oneOf/anyOf alone is not descended into. A nested node goes
// through the full comparison, so a type change on a property that declares
// properties is reported both at the property level and at the node level.
func compareSchema(path string, source, target *parser.Schema) []Change {
	switch {
	case source == nil && target == nil:
		return nil
	case source == nil:
		return []Change{added(path, parser.Clone(target.Raw),
			fmt.Sprintf("New schema added at %s", path))}
	case target == nil:
		return []Change{removed(path, parser.Clone(source.Raw),
			fmt.Sprintf("Schema removed at %s (breaking change)", path))}
	}

	var changes []Change
	if typeChanged(source, target) {
		changes = append(changes, modified(path+".type", SeverityCritical, source.Type, target.Type,
			fmt.Sprintf("Type changed from %q to %q at %s", source.Type, target.Type, path)))
	}
	return append(changes, compareSchemaMembers(path, source, target)...)
}

// compareSchemaMembers diffs the properties and required lists of two
// present schema nodes.
func compareSchemaMembers(path string, source, target *parser.Schema) []Change {
	var changes []Change

	for _, name := range maputil.UnionKeys(source.Properties, target.Properties) {
		propPath := path + ".properties." + name
		sProp, inSource := source.Properties[name]
		tProp, inTarget := target.Properties[name]

		switch {
		case !inSource:
			sev := SeverityInfo
			desc := fmt.Sprintf("New optional property %q added at %s", name, path)
			if target.IsRequired(name) {
				sev = SeverityWarning
				desc = fmt.Sprintf("New required property %q added at %s", name, path)
			}
			changes = append(changes, addedWithSeverity(propPath, rawOf(tProp), sev, desc))
			continue
		case !inTarget:
			changes = append(changes, removed(propPath, rawOf(sProp),
				fmt.Sprintf("Property %q removed from %s (breaking change)", name, path)))
			continue
		case sProp == nil || tProp == nil:
			// A property declared as null on one side.
			changes = append(changes, compareSchema(propPath, sProp, tProp)...)
			continue
		}

		if typeChanged(sProp, tProp) {
			changes = append(changes, modified(propPath+".type", SeverityCritical, sProp.Type, tProp.Type,
				fmt.Sprintf("Property %q type changed from %q to %q", name, sProp.Type, tProp.Type)))
		}
		if enumChanged(sProp, tProp) {
			changes = append(changes, modified(propPath+".enum", SeverityWarning, enumOf(sProp), enumOf(tProp),
				fmt.Sprintf("Enum values changed for property %q at %s", name, path)))
		}
		if sProp.HasProperties() || tProp.HasProperties() {
			changes = append(changes, compareSchema(propPath, sProp, tProp)...)
		}
	}

	seen := make(map[string]bool, len(target.Required))
	for _, field := range target.Required {
		if seen[field] {
			continue
		}
		seen[field] = true
		if source.IsRequired(field) {
			continue
		}
		if _, existed := source.Properties[field]; !existed {
			continue
		}
		changes = append(changes, modified(path+".required."+field, SeverityWarning, false, true,
			fmt.Sprintf("Property %q is now required at %s", field, path)))
	}
	return changes
}

func typeChanged(source, target *parser.Schema) bool {
	return source.Type != "" && target.Type != "" && source.Type != target.Type
}

// enumChanged compares the enums of two nodes when either declares one. A
// missing enum compares as an empty one.
func enumChanged(source, target *parser.Schema) bool {
	if !source.HasEnum() && !target.HasEnum() {
		return false
	}
	return !bytes.Equal(canonicalEnum(source), canonicalEnum(target))
}

func canonicalEnum(s *parser.Schema) []byte {
	if !s.HasEnum() {
		return parser.CanonicalJSON([]any{})
	}
	return parser.CanonicalJSON(s.Enum)
}

func enumOf(s *parser.Schema) any {
	if !s.HasEnum() {
		return nil
	}
	return parser.Clone(s.Enum)
}

func rawOf(s *parser.Schema) any {
	if s == nil {
		return nil
	}
	return parser.Clone(s.Raw)
}
