package buffer

import (
	"time"

	"github.com/dshills/ropecore/internal/engine/linecache"
	"github.com/dshills/ropecore/internal/engine/rope"
	"github.com/dshills/ropecore/internal/logging"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCacheConfig sets the line cache tuning.
func WithCacheConfig(cfg linecache.Config) Option {
	return func(b *Buffer) {
		b.cache = linecache.New(cfg)
	}
}

// WithPolicy sets the prefetch policy consulted by UpdateScrollPrediction.
func WithPolicy(p linecache.Policy) Option {
	return func(b *Buffer) {
		if p != nil {
			b.policy = p
		}
	}
}

// WithLogger sets the buffer's logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l.WithComponent("buffer")
		}
	}
}

// WithClock sets the time source used for scroll prediction.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

// WithRopeOptions sets the options used to build the underlying rope.
func WithRopeOptions(opts ...rope.Option) Option {
	return func(b *Buffer) {
		b.ropeOpts = append(b.ropeOpts, opts...)
	}
}
