package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path, or "<input>" for in-memory data.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode decodes data in the given format into v. Keys that v has no field
// for are rejected. source names the data in errors.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, v)
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	var derr *toml.DecodeError
	switch {
	case errors.As(err, &strict) && len(strict.Errors) > 0:
		pe.Line, pe.Column = strict.Errors[0].Position()
		pe.Message = "unknown key " + strings.Join(strict.Errors[0].Key(), ".")
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
