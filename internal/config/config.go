package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/dshills/ropecore/internal/config/loader"
	"github.com/dshills/ropecore/internal/engine/buffer"
	"github.com/dshills/ropecore/internal/engine/history"
	"github.com/dshills/ropecore/internal/engine/linecache"
	"github.com/dshills/ropecore/internal/engine/rope"
	"github.com/dshills/ropecore/internal/logging"
)

// MinChunkSize is the smallest accepted rope chunk size.
const MinChunkSize = 16

// Config holds all engine tuning.
type Config struct {
	Rope    RopeConfig    `toml:"rope" yaml:"rope"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// RopeConfig tunes text storage.
type RopeConfig struct {
	// ChunkSize is the target chunk size in bytes.
	ChunkSize int `toml:"chunk_size" yaml:"chunk_size"`
	// RebuildThreshold is the document size at which edits splice chunks
	// instead of rebuilding. Zero always splices.
	RebuildThreshold int `toml:"rebuild_threshold" yaml:"rebuild_threshold"`
}

// CacheConfig tunes the line offset cache and scroll prediction.
type CacheConfig struct {
	WindowPadding      int     `toml:"window_padding" yaml:"window_padding"`
	MaxCachedLines     int     `toml:"max_cached_lines" yaml:"max_cached_lines"`
	PrefetchRecencyMS  int     `toml:"prefetch_recency_ms" yaml:"prefetch_recency_ms"`
	BasePadding        int     `toml:"base_padding" yaml:"base_padding"`
	VelocityMultiplier float64 `toml:"velocity_multiplier" yaml:"velocity_multiplier"`
	MaxVelocityPadding int     `toml:"max_velocity_padding" yaml:"max_velocity_padding"`
}

// HistoryConfig tunes undo.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	lc := linecache.DefaultConfig()
	pc := linecache.DefaultPredictorConfig()
	return Config{
		Rope: RopeConfig{
			ChunkSize:        rope.DefaultChunkSize,
			RebuildThreshold: rope.DefaultRebuildThreshold,
		},
		Cache: CacheConfig{
			WindowPadding:      lc.WindowPadding,
			MaxCachedLines:     lc.MaxCachedLines,
			PrefetchRecencyMS:  int(pc.Recency / time.Millisecond),
			BasePadding:        pc.BasePadding,
			VelocityMultiplier: pc.VelocityMultiplier,
			MaxVelocityPadding: pc.MaxVelocityPadding,
		},
		History: HistoryConfig{MaxEntries: history.DefaultMaxEntries},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a TOML or YAML file over the defaults and validates the
// result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load over an arbitrary file system.
func LoadFS(fsys loader.FileSystem, path string) (Config, error) {
	cfg := Default()
	if _, err := loader.LoadFile(fsys, path, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes data in the named format ("toml", "yaml" or "yml") over
// the defaults and validates the result.
func Parse(format string, data []byte) (Config, error) {
	f, err := loader.ParseFormat(format)
	if err != nil {
		return Default(), err
	}
	cfg := Default()
	if err := loader.Decode(f, "<input>", data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every setting and reports all failures at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Rope.ChunkSize >= MinChunkSize, "rope.chunk_size must be at least %d, got %d", MinChunkSize, c.Rope.ChunkSize)
	check(c.Rope.RebuildThreshold >= 0, "rope.rebuild_threshold must not be negative, got %d", c.Rope.RebuildThreshold)
	check(c.Cache.WindowPadding > 0, "cache.window_padding must be positive, got %d", c.Cache.WindowPadding)
	check(c.Cache.MaxCachedLines > 0, "cache.max_cached_lines must be positive, got %d", c.Cache.MaxCachedLines)
	check(c.Cache.PrefetchRecencyMS >= 0, "cache.prefetch_recency_ms must not be negative, got %d", c.Cache.PrefetchRecencyMS)
	check(c.Cache.BasePadding >= 0, "cache.base_padding must not be negative, got %d", c.Cache.BasePadding)
	check(c.Cache.VelocityMultiplier >= 0, "cache.velocity_multiplier must not be negative, got %g", c.Cache.VelocityMultiplier)
	check(c.Cache.MaxVelocityPadding >= 0, "cache.max_velocity_padding must not be negative, got %d", c.Cache.MaxVelocityPadding)
	check(c.History.MaxEntries > 0, "history.max_entries must be positive, got %d", c.History.MaxEntries)
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ApplyEnv overrides settings from environment variables named
// PREFIX_SECTION_SETTING and validates the result. On error c is left
// unchanged.
func (c *Config) ApplyEnv(prefix string) error {
	return c.apply(loader.NewEnvLoader(prefix).Load())
}

// Set overrides a single setting by its dotted path, such as
// "cache.window_padding".
func (c *Config) Set(path, value string) error {
	return c.apply(map[string]string{path: value})
}

func (c *Config) apply(values map[string]string) error {
	next := *c
	var errs []error
	for _, path := range slices.Sorted(maps.Keys(values)) {
		set, ok := setters[path]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrSettingNotFound, path))
			continue
		}
		if err := set(&next, values[path]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

var setters = map[string]func(*Config, string) error{
	"rope.chunk_size":            intSetter(func(c *Config) *int { return &c.Rope.ChunkSize }),
	"rope.rebuild_threshold":     intSetter(func(c *Config) *int { return &c.Rope.RebuildThreshold }),
	"cache.window_padding":       intSetter(func(c *Config) *int { return &c.Cache.WindowPadding }),
	"cache.max_cached_lines":     intSetter(func(c *Config) *int { return &c.Cache.MaxCachedLines }),
	"cache.prefetch_recency_ms":  intSetter(func(c *Config) *int { return &c.Cache.PrefetchRecencyMS }),
	"cache.base_padding":         intSetter(func(c *Config) *int { return &c.Cache.BasePadding }),
	"cache.max_velocity_padding": intSetter(func(c *Config) *int { return &c.Cache.MaxVelocityPadding }),
	"history.max_entries":        intSetter(func(c *Config) *int { return &c.History.MaxEntries }),
	"cache.velocity_multiplier": func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, v)
		}
		c.Cache.VelocityMultiplier = f
		return nil
	},
	"log.level": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, v)
		}
		*field(c) = n
		return nil
	}
}

// RopeOptions returns the rope construction options.
func (c Config) RopeOptions() []rope.Option {
	return []rope.Option{
		rope.WithChunkSize(c.Rope.ChunkSize),
		rope.WithRebuildThreshold(c.Rope.RebuildThreshold),
	}
}

// LineCacheConfig returns the line cache tuning.
func (c Config) LineCacheConfig() linecache.Config {
	return linecache.Config{
		WindowPadding:  c.Cache.WindowPadding,
		MaxCachedLines: c.Cache.MaxCachedLines,
	}
}

// PredictorConfig returns the scroll predictor tuning.
func (c Config) PredictorConfig() linecache.PredictorConfig {
	return linecache.PredictorConfig{
		BasePadding:        c.Cache.BasePadding,
		VelocityMultiplier: c.Cache.VelocityMultiplier,
		MaxVelocityPadding: c.Cache.MaxVelocityPadding,
		Recency:            time.Duration(c.Cache.PrefetchRecencyMS) * time.Millisecond,
	}
}

// BufferOptions returns the options that apply this configuration to a
// buffer.
func (c Config) BufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithRopeOptions(c.RopeOptions()...),
		buffer.WithCacheConfig(c.LineCacheConfig()),
		buffer.WithPolicy(linecache.NewScrollPredictor(c.PredictorConfig())),
	}
}

// LogLevel returns the configured level, or info if it does not parse.
func (c Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
