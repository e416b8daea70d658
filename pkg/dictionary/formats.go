package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the on-disk forms of a code table
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatCSV                 // Header line + code,description lines
	FormatSnapshot            // msgpack snapshot
)

// FormatInfo contains metadata about a code table file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "Delimited Text Code Table",
		Extensions:  []string{".csv", ".txt"},
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Code Table Snapshot",
		Extensions:  []string{".bin", ".msgpack"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat picks the format of a code table file from its extension.
// The file must exist and be a regular file.
func DetectFileFormat(filename string) (FileFormat, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if info.IsDir() {
		return FormatUnknown, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for format, fi := range supportedFormats {
		for _, e := range fi.Extensions {
			if ext == e {
				log.Debugf("File %s detected as %s", filename, fi.Description)
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s (extension %q)", ErrUnsupportedFormat, filename, ext)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
