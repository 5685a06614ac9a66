package differ

import (
	"fmt"
	"strings"
)

// ComparisonResult contains the results of comparing two schema documents
type ComparisonResult struct {
	// TotalChanges is the number of reported changes
	TotalChanges int `json:"totalChanges" yaml:"totalChanges"`
	// Breaking is the number of critical changes
	Breaking int `json:"breaking" yaml:"breaking"`
	// NonBreaking is TotalChanges minus Breaking
	NonBreaking int `json:"nonBreaking" yaml:"nonBreaking"`
	// Warnings is the number of warning changes
	Warnings int `json:"warnings" yaml:"warnings"`
	// Info is the number of informational changes
	Info int `json:"info" yaml:"info"`
	// Shape is the dialect the documents were compared as
	Shape Shape `json:"shape" yaml:"shape"`
	// Changes contains all detected changes in report order
	Changes []Change `json:"changes" yaml:"changes"`
	// Summary is a one-sentence description of the counts
	Summary string `json:"summary" yaml:"summary"`
}

// HasBreakingChanges reports whether any critical change was detected.
func (r *ComparisonResult) HasBreakingChanges() bool {
	return r.Breaking > 0
}

// CountAtLeast returns the number of changes whose severity is at least threshold.
func (r *ComparisonResult) CountAtLeast(threshold Severity) int {
	n := 0
	for _, c := range r.Changes {
		if c.Severity.AtLeast(threshold) {
			n++
		}
	}
	return n
}

func newComparisonResult(shape Shape, changes []Change) *ComparisonResult {
	if changes == nil {
		changes = make([]Change, 0)
	}
	result := &ComparisonResult{
		TotalChanges: len(changes),
		Shape:        shape,
		Changes:      changes,
		Summary:      Summarize(changes),
	}
	for _, c := range changes {
		switch c.Severity {
		case SeverityCritical:
			result.Breaking++
		case SeverityWarning:
			result.Warnings++
		case SeverityInfo:
			result.Info++
		}
	}
	result.NonBreaking = result.TotalChanges - result.Breaking
	return result
}

// Summarize renders the one-sentence summary of a change list.
func Summarize(changes []Change) string {
	if len(changes) == 0 {
		return "No changes detected between the two schemas."
	}

	var critical, warnings, info int
	for _, c := range changes {
		switch c.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}

	parts := make([]string, 0, 3)
	if critical > 0 {
		parts = append(parts, fmt.Sprintf("%d breaking change(s)", critical))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if info > 0 {
		parts = append(parts, fmt.Sprintf("%d informational change(s)", info))
	}
	return fmt.Sprintf("Detected %d total change(s): %s.", len(changes), strings.Join(parts, ", "))
}
