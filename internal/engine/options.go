package engine

import (
	"github.com/dshills/ropecore/internal/config"
	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial content of the editor.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.initContent = content
	}
}

// WithConfig applies tuning for the rope, line cache and undo history.
// Options after it may override individual values.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.cfg.History.MaxEntries = max
		}
	}
}

// WithLogger sets the logger for the editor and the components it creates.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.baseLogger = l
		}
	}
}

// WithBufferOptions adds options for the document buffer. They are applied
// after the configuration, so they take precedence.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(e *Editor) {
		e.bufOpts = append(e.bufOpts, opts...)
	}
}
