package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension names no known table format.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Format represents the supported delimited table formats
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV            // comma separated
	FormatTSV            // tab separated
	FormatText           // delimiter taken from Options
)

// FormatInfo contains metadata about a table format
type FormatInfo struct {
	Format      Format
	Description string
	Extensions  []string
	// Delimiter is zero when the caller decides.
	Delimiter rune
}

var supportedFormats = map[Format]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "Comma Separated Paradigm Table",
		Extensions:  []string{".csv"},
		Delimiter:   ',',
	},
	FormatTSV: {
		Format:      FormatTSV,
		Description: "Tab Separated Paradigm Table",
		Extensions:  []string{".tsv", ".tab"},
		Delimiter:   '\t',
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Paradigm Table",
		Extensions:  []string{".txt", ""},
	},
}

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFormat picks a format from the file extension
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []Format{FormatCSV, FormatTSV, FormatText} {
		for _, e := range supportedFormats[f].Extensions {
			if ext == e {
				return f, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s (extension %q)", ErrUnsupportedFormat, filename, ext)
}

// delimiterFor resolves the delimiter of f, falling back to the configured one
func delimiterFor(f Format, configured rune) rune {
	if info, ok := supportedFormats[f]; ok && info.Delimiter != 0 {
		return info.Delimiter
	}
	if configured == 0 {
		return ','
	}
	return configured
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(f Format) (FormatInfo, bool) {
	info, exists := supportedFormats[f]
	return info, exists
}
