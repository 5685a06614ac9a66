package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// utf8BOM is stripped before format detection and decoding
var utf8BOM = []byte("\xef\xbb\xbf")

// detectFormatFromPath detects the source format from a file extension
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON documents start with '{' or '['; anything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}

	return SourceFormatYAML
}
