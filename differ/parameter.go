package differ

import (
	"fmt"

	"github.com/erraggy/schemadiff/parser"
)

// parameterSet indexes an operation's parameters by (name, in). Keys keep
// the position of their first occurrence; a repeated key keeps the last value.
type parameterSet struct {
	keys  []string
	byKey map[string]*parser.Parameter
}

func newParameterSet(params []*parser.Parameter) parameterSet {
	set := parameterSet{byKey: make(map[string]*parser.Parameter, len(params))}
	for _, p := range params {
		key := p.Key()
		if _, ok := set.byKey[key]; !ok {
			set.keys = append(set.keys, key)
		}
		set.byKey[key] = p
	}
	return set
}

// compareParameters diffs two parameter lists of the operation at opPath
// (e.g. "paths./pets.GET"). Additions are reported first in target order,
// then removals and modifications in source order.
func compareParameters(opPath, method, path string, source, target []*parser.Parameter) []Change {
	sSet, tSet := newParameterSet(source), newParameterSet(target)
	where := method + " " + path
	var changes []Change

	for _, key := range tSet.keys {
		if _, ok := sSet.byKey[key]; ok {
			continue
		}
		p := tSet.byKey[key]
		paramPath := opPath + ".parameters." + p.Name
		if p.Required {
			changes = append(changes, addedWithSeverity(paramPath, parser.Clone(p.Raw), SeverityWarning,
				fmt.Sprintf("New required parameter %q added to %s", p.Name, where)))
		} else {
			changes = append(changes, added(paramPath, parser.Clone(p.Raw),
				fmt.Sprintf("New optional parameter %q added to %s", p.Name, where)))
		}
	}

	for _, key := range sSet.keys {
		if _, ok := tSet.byKey[key]; ok {
			continue
		}
		p := sSet.byKey[key]
		changes = append(changes, removed(opPath+".parameters."+p.Name, parser.Clone(p.Raw),
			fmt.Sprintf("Parameter %q removed from %s (breaking change)", p.Name, where)))
	}

	for _, key := range sSet.keys {
		tp, ok := tSet.byKey[key]
		if !ok {
			continue
		}
		changes = append(changes, compareParameter(opPath, where, sSet.byKey[key], tp)...)
	}
	return changes
}

// compareParameter reports a type change and a required flip from false to
// true. Relaxing required is not reported.
func compareParameter(opPath, where string, source, target *parser.Parameter) []Change {
	var changes []Change
	paramPath := opPath + ".parameters." + source.Name

	sType, tType := source.EffectiveType(), target.EffectiveType()
	if sType != "" && tType != "" && sType != tType {
		changes = append(changes, modified(paramPath+".type", SeverityCritical, sType, tType,
			fmt.Sprintf("Parameter %q type changed from %q to %q in %s", source.Name, sType, tType, where)))
	}
	if !source.Required && target.Required {
		changes = append(changes, modified(paramPath+".required", SeverityWarning, false, true,
			fmt.Sprintf("Parameter %q is now required in %s", source.Name, where)))
	}
	return changes
}
