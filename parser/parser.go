package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemadiff/oaserrors"
)

// DefaultMaxFileSize is the largest document the parser reads when
// Parser.MaxFileSize is not set (10 MiB).
const DefaultMaxFileSize int64 = 10 << 20

// Parser loads JSON or YAML schema documents and converts them into JSON
// values. It performs no validation: any well-formed JSON or YAML is accepted.
type Parser struct {
	// MaxFileSize is the maximum document size in bytes.
	// Default: DefaultMaxFileSize
	MaxFileSize int64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{MaxFileSize: DefaultMaxFileSize}
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded document and metadata about it.
//
// Callers should treat ParseResult as read-only: the differ reads Data
// directly and never copies it.
type ParseResult struct {
	// SourcePath is the path the document was read from. Documents read from
	// a reader or byte slice get a synthetic name ending in .json or .yaml.
	SourcePath string
	// SourceFormat is the detected format of the source
	SourceFormat SourceFormat
	// Version is the value of the top-level openapi or swagger key, if any
	Version string
	// Data is the document as a JSON value
	Data any
	// Document is the typed OpenAPI view of Data
	Document *Document
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// NewParseResult wraps an already-decoded JSON value in a ParseResult.
func NewParseResult(data any) *ParseResult {
	doc := NewDocument(data)
	return &ParseResult{
		SourcePath:   "value.json",
		SourceFormat: SourceFormatJSON,
		Version:      doc.Version,
		Data:         data,
		Document:     doc,
		Stats:        doc.Stats(),
	}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Parse reads and decodes the document at specPath.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	loadStart := time.Now()
	f, err := os.Open(specPath) //nolint:gosec // G304 - reading user-supplied documents is the point
	if err != nil {
		return nil, &oaserrors.ParseError{Path: specPath, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := p.readLimited(f, specPath)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	format := detectFormatFromPath(specPath)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	res, err := p.decode(data, format, specPath)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader reads and decodes a document from r.
// Since there is no source path, SourcePath is set to ParseReader.json or ParseReader.yaml.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readLimited(r, "")
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	format := detectFormatFromContent(data)
	res, err := p.decode(data, format, "ParseReader."+string(format))
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes decodes a document held in memory.
// SourcePath is set to ParseBytes.json or ParseBytes.yaml.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
		}
	}
	format := detectFormatFromContent(data)
	return p.decode(data, format, "ParseBytes."+string(format))
}

// readLimited reads r up to the size limit, failing when the limit is exceeded.
func (p *Parser) readLimited(r io.Reader, path string) ([]byte, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read data", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      fmt.Sprintf("document %s is too large", displayPath(path)),
		}
	}
	return data, nil
}

func (p *Parser) decode(data []byte, format SourceFormat, path string) (*ParseResult, error) {
	size := int64(len(data))
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: path, Format: string(format), Message: "document is empty"}
	}

	var value any
	switch format {
	case SourceFormatJSON:
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, &oaserrors.ParseError{Path: path, Format: string(format), Line: jsonErrorLine(data, err), Cause: err}
		}
	default:
		format = SourceFormatYAML
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &oaserrors.ParseError{Path: path, Format: string(format), Cause: err}
		}
		normalized, err := Normalize(raw)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: path, Format: string(format), Cause: err}
		}
		value = normalized
	}

	res := NewParseResult(value)
	res.SourcePath = path
	res.SourceFormat = format
	res.SourceSize = size

	p.log().Debug("decoded document",
		"path", path,
		"format", format,
		"size", res.SourceSize,
		"version", res.Version)
	return res, nil
}

// jsonErrorLine converts the byte offset of a JSON syntax error into a 1-based line.
func jsonErrorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return 0
	}
	offset := min(int(syntaxErr.Offset), len(data))
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

func displayPath(path string) string {
	if path == "" {
		return "<stream>"
	}
	return path
}
