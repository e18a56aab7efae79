package config

import (
	"errors"

	"github.com/dshills/ropecore/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSettingNotFound indicates an override names no known setting.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates an override value has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
