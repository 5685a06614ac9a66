package differ

import (
	"fmt"

	"github.com/erraggy/schemadiff/oaserrors"
	"github.com/erraggy/schemadiff/parser"
)

// Differ handles schema document comparison
type Differ struct {
	// Mode determines how the comparison dialect is chosen
	// Default: ModeAuto
	Mode Mode
	// IncludeInfo determines whether to include informational changes
	// Default: true
	IncludeInfo bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		Mode:        ModeAuto,
		IncludeInfo: true,
	}
}

// Compare diffs two JSON values with default settings.
//
// The values must be in the JSON value space produced by encoding/json or
// the parser package: map[string]any, []any, string, float64, bool and nil.
// Compare never fails and never modifies its inputs.
func Compare(source, target any) *ComparisonResult {
	return New().Compare(source, target)
}

// Compare diffs two JSON values.
func (d *Differ) Compare(source, target any) *ComparisonResult {
	return d.compare(source, target, nil, nil)
}

// CompareParsed diffs two loaded documents, reusing their typed views.
func (d *Differ) CompareParsed(source, target parser.ParseResult) *ComparisonResult {
	return d.compare(source.Data, target.Data, source.Document, target.Document)
}

func (d *Differ) compare(source, target any, sourceDoc, targetDoc *parser.Document) *ComparisonResult {
	log := parser.OrNop(d.Logger)
	shape := d.Mode.shapeFor(source, target)
	log.Debug("comparing documents", "shape", string(shape), "mode", d.Mode.String())

	var changes []Change
	if shape == ShapeOpenAPI {
		if sourceDoc == nil {
			sourceDoc = parser.NewDocument(source)
		}
		if targetDoc == nil {
			targetDoc = parser.NewDocument(target)
		}
		changes = comparePaths(sourceDoc.Paths, targetDoc.Paths)
		changes = append(changes, compareDefinitions(sourceDoc.Schemas, targetDoc.Schemas)...)
	} else {
		changes = compareJSON(source, target)
	}

	if !d.IncludeInfo {
		changes = dropInfo(changes)
	}

	result := newComparisonResult(shape, changes)
	log.Debug("comparison complete",
		"total", result.TotalChanges,
		"breaking", result.Breaking,
		"warnings", result.Warnings,
		"info", result.Info,
	)
	return result
}

func dropInfo(changes []Change) []Change {
	filtered := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c.Severity != SeverityInfo {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Option is a function that configures a comparison
type Option func(*compareConfig) error

// compareConfig holds configuration for a comparison
type compareConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceValue    *any
	sourceFilePath *string
	sourceParsed   *parser.ParseResult
	targetValue    *any
	targetFilePath *string
	targetParsed   *parser.ParseResult

	mode        Mode
	includeInfo bool
	logger      parser.Logger
}

// CompareWithOptions compares two documents using functional options.
// Errors are returned only for invalid options and unreadable documents;
// the comparison itself cannot fail.
//
// Example:
//
//	result, err := differ.CompareWithOptions(
//	    differ.WithSourceFilePath("api-v1.yaml"),
//	    differ.WithTargetFilePath("api-v2.yaml"),
//	    differ.WithIncludeInfo(false),
//	)
func CompareWithOptions(opts ...Option) (*ComparisonResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		Mode:        cfg.mode,
		IncludeInfo: cfg.includeInfo,
		Logger:      cfg.logger,
	}

	source, err := cfg.load(cfg.sourceValue, cfg.sourceFilePath, cfg.sourceParsed)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to load source: %w", err)
	}
	target, err := cfg.load(cfg.targetValue, cfg.targetFilePath, cfg.targetParsed)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to load target: %w", err)
	}
	return d.CompareParsed(*source, *target), nil
}

func (cfg *compareConfig) load(value *any, path *string, parsed *parser.ParseResult) (*parser.ParseResult, error) {
	switch {
	case parsed != nil:
		return parsed, nil
	case path != nil:
		p := parser.New()
		p.Logger = cfg.logger
		return p.Parse(*path)
	default:
		return parser.NewParseResult(*value), nil
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*compareConfig, error) {
	cfg := &compareConfig{
		mode:        ModeAuto,
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := checkOneOf("source", cfg.sourceValue != nil, cfg.sourceFilePath != nil, cfg.sourceParsed != nil); err != nil {
		return nil, err
	}
	if err := checkOneOf("target", cfg.targetValue != nil, cfg.targetFilePath != nil, cfg.targetParsed != nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkOneOf(side string, set ...bool) error {
	count := 0
	for _, s := range set {
		if s {
			count++
		}
	}
	switch {
	case count == 0:
		return &oaserrors.ConfigError{
			Option:  side,
			Message: fmt.Sprintf("must specify a %s (use a With%sValue, With%sFilePath or With%sParsed option)", side, titleSide(side), titleSide(side), titleSide(side)),
		}
	case count > 1:
		return &oaserrors.ConfigError{Option: side, Message: "must specify exactly one " + side}
	}
	return nil
}

func titleSide(side string) string {
	if side == "source" {
		return "Source"
	}
	return "Target"
}

// WithSourceValue specifies an already-decoded JSON value as the source document
func WithSourceValue(v any) Option {
	return func(cfg *compareConfig) error {
		cfg.sourceValue = &v
		return nil
	}
}

// WithSourceFilePath specifies a JSON or YAML file as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *compareConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the source document
func WithSourceParsed(result parser.ParseResult) Option {
	return func(cfg *compareConfig) error {
		cfg.sourceParsed = &result
		return nil
	}
}

// WithTargetValue specifies an already-decoded JSON value as the target document
func WithTargetValue(v any) Option {
	return func(cfg *compareConfig) error {
		cfg.targetValue = &v
		return nil
	}
}

// WithTargetFilePath specifies a JSON or YAML file as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *compareConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the target document
func WithTargetParsed(result parser.ParseResult) Option {
	return func(cfg *compareConfig) error {
		cfg.targetParsed = &result
		return nil
	}
}

// WithMode sets how the comparison dialect is chosen
// Default: ModeAuto
func WithMode(mode Mode) Option {
	return func(cfg *compareConfig) error {
		if !mode.valid() {
			return &oaserrors.ConfigError{Option: "mode", Value: int(mode), Message: "unknown mode"}
		}
		cfg.mode = mode
		return nil
	}
}

// WithIncludeInfo enables or disables informational changes
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *compareConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithLogger sets the structured logger used for debug output
func WithLogger(l parser.Logger) Option {
	return func(cfg *compareConfig) error {
		cfg.logger = l
		return nil
	}
}
