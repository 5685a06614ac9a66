// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemadiff comparisons as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemadiff"
	"github.com/erraggy/schemadiff/internal/resultcache"
)

const serverInstructions = `schemadiff MCP server. Compares two versions of an OpenAPI/Swagger document or of any JSON document and classifies every change as critical (breaking), warning or info.

Documents are passed as {file} or {content}; content may be JSON or YAML. Documents with an openapi, swagger, paths or definitions key are compared endpoint by endpoint; anything else is compared key by key. Use mode to force a dialect.

Configuration: defaults are configurable via SCHEMADIFF_* environment variables set in your MCP client config.
- SCHEMADIFF_CACHE_ENABLED (default: true) - cache comparison results
- SCHEMADIFF_CACHE_MAX_SIZE (default: 128) - maximum cached results
- SCHEMADIFF_CACHE_TTL (default: 15m) - lifetime of a cached result
- SCHEMADIFF_MAX_INLINE_SIZE (default: 10485760) - maximum inline content size in bytes`

// results caches comparisons across tool calls for the life of the process.
var results = newResultCache()

func newResultCache() *resultcache.Cache {
	if !cfg.CacheEnabled {
		return nil
	}
	return resultcache.New(cfg.CacheMaxSize, cfg.CacheTTL)
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemadiff", Version: schemadiff.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two versions of a schema document and report differences. OpenAPI/Swagger documents are compared by endpoint, method, parameter, response and schema definition; other JSON is compared key by key. Each change has a dot-delimited path, a kind (added, removed, modified), a severity (critical, warning, info) and a description. Use breaking_only=true to focus on critical changes first, or no_info=true to drop informational changes.",
	}, handleCompare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_shape",
		Description: "Report whether a document will be compared as an OpenAPI/Swagger document (shape openapi) or as generic JSON (shape json), along with its declared version and path/operation/schema counts.",
	}, handleDetectShape)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
