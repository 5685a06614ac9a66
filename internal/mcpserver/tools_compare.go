package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemadiff/differ"
)

type compareInput struct {
	Old          docInput `json:"old"                     jsonschema:"The original document"`
	New          docInput `json:"new"                     jsonschema:"The revised document to compare against old"`
	Mode         string   `json:"mode,omitempty"          jsonschema:"Comparison dialect: auto (default), openapi or json"`
	NoInfo       bool     `json:"no_info,omitempty"       jsonschema:"Suppress informational changes"`
	BreakingOnly bool     `json:"breaking_only,omitempty" jsonschema:"Only show critical (breaking) changes"`
}

type compareChange struct {
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Before      any    `json:"before,omitempty"`
	After       any    `json:"after,omitempty"`
	Description string `json:"description"`
}

type compareOutput struct {
	TotalChanges int             `json:"totalChanges"`
	Breaking     int             `json:"breaking"`
	NonBreaking  int             `json:"nonBreaking"`
	Warnings     int             `json:"warnings"`
	Info         int             `json:"info"`
	Shape        string          `json:"shape"`
	Changes      []compareChange `json:"changes,omitempty"`
	Summary      string          `json:"summary"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	mode, err := differ.ParseMode(input.Mode)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	oldResult, err := input.Old.resolve()
	if err != nil {
		return errResult(fmt.Errorf("old: %w", err)), compareOutput{}, nil
	}
	newResult, err := input.New.resolve()
	if err != nil {
		return errResult(fmt.Errorf("new: %w", err)), compareOutput{}, nil
	}

	d := differ.New()
	d.Mode = mode
	d.IncludeInfo = !input.NoInfo

	result, hit := results.Compare(d, oldResult.Data, newResult.Data)
	slog.Debug("compare tool", "shape", result.Shape, "total", result.TotalChanges, "breaking", result.Breaking, "cache_hit", hit)

	changes := result.Changes
	if input.BreakingOnly {
		changes = breakingOnly(changes)
	}

	output := compareOutput{
		TotalChanges: len(changes),
		Shape:        string(result.Shape),
		Changes:      makeSlice[compareChange](len(changes)),
		Summary:      differ.Summarize(changes),
	}
	for _, c := range changes {
		output.Changes = append(output.Changes, compareChange{
			Path:        c.Path,
			Kind:        string(c.Type),
			Severity:    c.Severity.String(),
			Before:      c.Before,
			After:       c.After,
			Description: c.Description,
		})
		switch c.Severity {
		case differ.SeverityCritical:
			output.Breaking++
		case differ.SeverityWarning:
			output.Warnings++
		default:
			output.Info++
		}
	}
	output.NonBreaking = output.TotalChanges - output.Breaking

	return nil, output, nil
}

func breakingOnly(changes []differ.Change) []differ.Change {
	var out []differ.Change
	for _, c := range changes {
		if c.IsBreaking() {
			out = append(out, c)
		}
	}
	return out
}
