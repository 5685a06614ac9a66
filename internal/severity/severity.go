// Package severity provides the severity levels attached to every change
// reported by the differ package.
//
// The three levels are ordered from least to most severe:
// Info < Warning < Critical
package severity

import "fmt"

// Severity indicates how a change affects existing clients of a schema.
type Severity int

const (
	// SeverityInfo indicates an additive or cosmetic change.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a change that may break some clients,
	// such as a new required input or a changed enum.
	SeverityWarning

	// SeverityCritical indicates a breaking change: something clients rely
	// on was removed or changed incompatibly.
	SeverityCritical
)

// All lists every severity from most to least severe.
var All = []Severity{SeverityCritical, SeverityWarning, SeverityInfo}

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Parse converts a severity name back to a Severity.
func Parse(name string) (Severity, error) {
	switch name {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", name)
	}
}

// AtLeast reports whether s is at least as severe as threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s >= threshold
}

// MarshalText encodes the severity by name so JSON and YAML output stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
