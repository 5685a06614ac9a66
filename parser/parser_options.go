package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/schemadiff/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	maxFileSize int64
	logger      Logger

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions loads a document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithMaxFileSize(1 << 20),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		MaxFileSize: cfg.maxFileSize,
		Logger:      cfg.logger,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{maxFileSize: DefaultMaxFileSize}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sourceCount := 0
	if cfg.filePath != nil {
		sourceCount++
	}
	if cfg.reader != nil {
		sourceCount++
	}
	if cfg.bytes != nil {
		sourceCount++
	}

	if sourceCount == 0 {
		return nil, &oaserrors.ConfigError{Message: "must specify an input source (use WithFilePath, WithReader, or WithBytes)"}
	}
	if sourceCount > 1 {
		return nil, &oaserrors.ConfigError{Message: "must specify exactly one input source"}
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes
// Default: DefaultMaxFileSize
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxFileSize", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides SourcePath in the result, useful for documents read from stdin
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
