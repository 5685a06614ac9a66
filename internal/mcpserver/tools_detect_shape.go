package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemadiff/differ"
)

type detectShapeInput struct {
	Document docInput `json:"document" jsonschema:"The document to inspect"`
}

type detectShapeOutput struct {
	Shape          string `json:"shape"`
	Format         string `json:"format"`
	Version        string `json:"version,omitempty"`
	PathCount      int    `json:"path_count"`
	OperationCount int    `json:"operation_count"`
	SchemaCount    int    `json:"schema_count"`
}

func handleDetectShape(_ context.Context, _ *mcp.CallToolRequest, input detectShapeInput) (*mcp.CallToolResult, detectShapeOutput, error) {
	result, err := input.Document.resolve()
	if err != nil {
		return errResult(err), detectShapeOutput{}, nil
	}

	output := detectShapeOutput{
		Shape:   string(differ.DetectShape(result.Data)),
		Format:  string(result.SourceFormat),
		Version: result.Version,
	}
	// Counts only mean something for documents compared endpoint by endpoint.
	if output.Shape == string(differ.ShapeOpenAPI) {
		output.PathCount = result.Stats.PathCount
		output.OperationCount = result.Stats.OperationCount
		output.SchemaCount = result.Stats.SchemaCount
	}
	return nil, output, nil
}
