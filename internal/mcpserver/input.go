package mcpserver

import (
	"fmt"

	"github.com/erraggy/schemadiff/parser"
)

// docInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// resolve loads the document from whichever input was provided.
func (d docInput) resolve() (*parser.ParseResult, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided (got 2)")
	case d.File != "":
		return parser.ParseWithOptions(parser.WithFilePath(d.File))
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMADIFF_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return parser.ParseWithOptions(
			parser.WithBytes([]byte(d.Content)),
			parser.WithMaxFileSize(cfg.MaxInlineSize),
		)
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided (got 0)")
	}
}
