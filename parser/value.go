package parser

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ValueKind is the JSON kind of a decoded value.
type ValueKind string

const (
	// KindObject is a JSON object (map[string]any)
	KindObject ValueKind = "object"
	// KindArray is a JSON array ([]any)
	KindArray ValueKind = "array"
	// KindString is a JSON string
	KindString ValueKind = "string"
	// KindNumber is a JSON number (float64)
	KindNumber ValueKind = "number"
	// KindBoolean is a JSON boolean
	KindBoolean ValueKind = "boolean"
	// KindNull is JSON null
	KindNull ValueKind = "null"
)

// KindOf reports the JSON kind of v. Values outside the JSON value space
// (which Normalize never produces) are reported by their Go type name.
func KindOf(v any) ValueKind {
	switch v.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case float64, float32, int, int64, int32, uint64, json.Number:
		return KindNumber
	case bool:
		return KindBoolean
	default:
		return ValueKind(fmt.Sprintf("%T", v))
	}
}

// Normalize converts a value decoded by a YAML (or any other) decoder into the
// JSON value space used throughout schemadiff: map[string]any, []any, string,
// float64, bool and nil. Map keys are stringified, integers become float64,
// timestamps become RFC 3339 strings and binary data becomes base64.
// Non-finite numbers have no JSON representation and are rejected.
func Normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, float64:
		if f, ok := val.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("parser: non-finite number %v has no JSON representation", f)
		}
		return val, nil
	case float32:
		return Normalize(float64(val))
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("parser: invalid number %q: %w", val, err)
		}
		return f, nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(val), nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("parser: unsupported value of type %T", v)
	}
}

// Clone returns a deep copy of a JSON value so the copy shares no maps or
// slices with the original.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Clone(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	default:
		return val
	}
}

// CanonicalJSON encodes v with sorted object keys. Two JSON values are
// structurally equal exactly when their canonical encodings are equal.
func CanonicalJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable for values outside the JSON value space.
		return []byte(fmt.Sprintf("%#v", v))
	}
	return data
}

// asObject returns v as a JSON object, or nil when it is anything else.
func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString returns v as a string, or "" when it is anything else.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Truthy mirrors the loose presence test documents are usually written
// against: null, false, "" and 0 are absent; everything else is present.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}
