package commands

import (
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/schemadiff"
	"github.com/erraggy/schemadiff/differ"
	"github.com/erraggy/schemadiff/internal/cliutil"
	"github.com/erraggy/schemadiff/internal/severity"
	"github.com/erraggy/schemadiff/parser"
)

// renderText writes the human-readable report: a header describing both
// documents, the changes grouped under one heading per severity (most severe
// first, report order within a group), and the summary sentence.
func renderText(w io.Writer, source, target *parser.ParseResult, result *differ.ComparisonResult) {
	cliutil.WriteHeading(w, "Schema Diff")
	cliutil.Writef(w, "schemadiff version: %s\n", schemadiff.Version())
	cliutil.Writef(w, "Source: %s\n", describeDocument(source))
	cliutil.Writef(w, "Target: %s\n", describeDocument(target))
	cliutil.Writef(w, "Shape: %s\n\n", result.Shape)

	if result.TotalChanges == 0 {
		cliutil.Writef(w, "✓ %s\n", result.Summary)
		return
	}

	grouped := make(map[severity.Severity][]differ.Change, len(severity.All))
	for _, c := range result.Changes {
		grouped[c.Severity] = append(grouped[c.Severity], c)
	}

	title := cases.Title(language.English)
	for _, sev := range severity.All {
		changes := grouped[sev]
		if len(changes) == 0 {
			continue
		}
		cliutil.Writef(w, "%s (%s):\n", title.String(sev.String()), cliutil.Plural(len(changes), "change"))
		for _, c := range changes {
			cliutil.Writef(w, "  %s\n", c.String())
		}
		cliutil.Writef(w, "\n")
	}

	cliutil.Writef(w, "Summary: %s\n", result.Summary)
}

func describeDocument(r *parser.ParseResult) string {
	desc := r.SourcePath
	if r.Version != "" {
		desc += " (" + r.Version + ")"
	}
	return desc + ", " + parser.FormatBytes(r.SourceSize)
}
