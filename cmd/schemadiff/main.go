package main

import (
	"errors"
	"io"
	"os"

	"github.com/erraggy/schemadiff"
	"github.com/erraggy/schemadiff/cmd/schemadiff/commands"
	"github.com/erraggy/schemadiff/internal/cliutil"
)

// commandNames lists every top-level command, used for typo suggestions.
var commandNames = []string{"compare", "serve", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		cliutil.Writef(os.Stdout, "schemadiff v%s\n%s\n", schemadiff.Version(), schemadiff.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	case "compare":
		err = commands.HandleCompare(os.Args[2:])
	case "serve":
		err = commands.HandleServe(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if errors.Is(err, commands.ErrFailThreshold) {
		os.Exit(1)
	}
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input when it is
// within an edit distance of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage(w io.Writer) {
	cliutil.Writef(w, `schemadiff - Schema change detection for OpenAPI and JSON documents

Usage:
  schemadiff <command> [options]

Commands:
  compare     Compare two documents and classify every change
  serve       Serve comparisons over HTTP
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schemadiff compare api-v1.yaml api-v2.yaml
  schemadiff compare --format json --fail-on warning old.json new.json
  schemadiff serve --addr :8080

Run 'schemadiff <command> --help' for more information on a command.
`)
}
