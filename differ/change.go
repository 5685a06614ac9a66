package differ

import (
	"fmt"

	"github.com/erraggy/schemadiff/internal/severity"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// Severity indicates the severity level of a change
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational changes (additions, cosmetic edits)
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates changes that may break some clients
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates breaking changes (removed or incompatibly changed elements)
	SeverityCritical = severity.SeverityCritical
)

// Change represents a single difference between two schema documents
type Change struct {
	// Path is the dot-delimited locator of the changed element (e.g., "paths./pets.GET")
	Path string `json:"path" yaml:"path"`
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType `json:"kind" yaml:"kind"`
	// Severity indicates the impact level
	Severity Severity `json:"severity" yaml:"severity"`
	// Before is a copy of the value in the old document (nil for additions)
	Before any `json:"before,omitempty" yaml:"before,omitempty"`
	// After is a copy of the value in the new document (nil for removals)
	After any `json:"after,omitempty" yaml:"after,omitempty"`
	// Description is a human-readable description of the change
	Description string `json:"description" yaml:"description"`
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Severity {
	case SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "·"
	}
	return fmt.Sprintf("%s %s [%s] %s", symbol, c.Path, c.Type, c.Description)
}

// IsBreaking reports whether the change has critical severity.
func (c Change) IsBreaking() bool {
	return c.Severity == SeverityCritical
}

func added(path string, after any, description string) Change {
	return addedWithSeverity(path, after, SeverityInfo, description)
}

func addedWithSeverity(path string, after any, sev Severity, description string) Change {
	return Change{
		Path:        path,
		Type:        ChangeTypeAdded,
		Severity:    sev,
		After:       after,
		Description: description,
	}
}

// removed builds a removal. Removals are always breaking.
func removed(path string, before any, description string) Change {
	return Change{
		Path:        path,
		Type:        ChangeTypeRemoved,
		Severity:    SeverityCritical,
		Before:      before,
		Description: description,
	}
}

func modified(path string, sev Severity, before, after any, description string) Change {
	return Change{
		Path:        path,
		Type:        ChangeTypeModified,
		Severity:    sev,
		Before:      before,
		After:       after,
		Description: description,
	}
}
