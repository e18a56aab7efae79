// Package loader reads configuration files and environment overrides.
//
// Files are decoded strictly: unknown keys are errors, and syntax errors
// carry the line and column they were found at. The loader knows nothing
// about the shape of the configuration; callers pass the value to decode
// into.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a file extension or format name the loader
// cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name ("toml", "yaml" or "yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// LoadFile reads and decodes the file at path into v. It reports false,
// leaving v untouched, when the file does not exist.
func LoadFile(fsys FileSystem, path string, v any) (bool, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return false, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(format, path, data, v); err != nil {
		return false, err
	}
	return true, nil
}
