// Package maputil provides helpers for iterating string-keyed maps in a
// deterministic order.
package maputil

import "sort"

// SortedKeys returns the keys of m in lexicographic order.
// A nil or empty map yields an empty, non-nil slice.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnionKeys returns the sorted union of the keys of a and b.
func UnionKeys[V any](a, b map[string]V) []string {
	union := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		union[k] = struct{}{}
	}
	for k := range b {
		union[k] = struct{}{}
	}
	return SortedKeys(union)
}
