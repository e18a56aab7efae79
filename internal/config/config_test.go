package config

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ropecore/internal/engine/history"
	"github.com/dshills/ropecore/internal/logging"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	pc := cfg.PredictorConfig()
	if pc.BasePadding != 100 || pc.VelocityMultiplier != 2 || pc.MaxVelocityPadding != 300 {
		t.Errorf("unexpected predictor defaults %+v", pc)
	}
	if pc.Recency != 500*time.Millisecond {
		t.Errorf("recency = %v, want 500ms", pc.Recency)
	}
	if lc := cfg.LineCacheConfig(); lc.WindowPadding != 200 || lc.MaxCachedLines != 10000 {
		t.Errorf("unexpected cache defaults %+v", lc)
	}
	if cfg.LogLevel() != logging.LevelInfo {
		t.Errorf("log level = %s", cfg.LogLevel())
	}
	if cfg.History.MaxEntries != history.DefaultMaxEntries {
		t.Errorf("history.max_entries = %d, want %d", cfg.History.MaxEntries, history.DefaultMaxEntries)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{"toml", `
[cache]
window_padding = 50
velocity_multiplier = 1.5

[history]
max_entries = 20

[log]
level = "debug"
`},
		{"yaml", `
cache:
  window_padding: 50
  velocity_multiplier: 1.5
history:
  max_entries: 20
log:
  level: debug
`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg, err := Parse(tt.format, []byte(tt.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			want := Default()
			want.Cache.WindowPadding = 50
			want.Cache.VelocityMultiplier = 1.5
			want.History.MaxEntries = 20
			want.Log.Level = "debug"
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	var pe *ParseError
	if _, err := Parse("toml", []byte("[cache]\nunknown = 1\n")); !errors.As(err, &pe) {
		t.Errorf("expected *ParseError, got %v", err)
	}
	if _, err := Parse("toml", []byte("[history]\nmax_entries = 0\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Parse("ini", nil); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Rope.ChunkSize = 4
	cfg.Cache.MaxCachedLines = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, logging.ErrUnknownLevel) {
		t.Error("expected the log level failure to be wrapped")
	}
	for _, want := range []string{"rope.chunk_size", "cache.max_cached_lines", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ropecore.yml": &fstest.MapFile{Data: []byte("rope:\n  chunk_size: 256\n")},
	}

	cfg, err := LoadFS(fsys, "ropecore.yml")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if cfg.Rope.ChunkSize != 256 {
		t.Errorf("chunk_size = %d", cfg.Rope.ChunkSize)
	}

	cfg, err = LoadFS(fsys, "missing.toml")
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir() + "/none.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != Default().History.MaxEntries {
		t.Error("expected defaults")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RCTEST_CACHE_WINDOW_PADDING", "64")
	t.Setenv("RCTEST_LOG_LEVEL", "warn")

	cfg := Default()
	if err := cfg.ApplyEnv("RCTEST_"); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Cache.WindowPadding != 64 {
		t.Errorf("window_padding = %d", cfg.Cache.WindowPadding)
	}
	if cfg.LogLevel() != logging.LevelWarn {
		t.Errorf("log level = %s", cfg.LogLevel())
	}
}

func TestApplyEnvErrorsLeaveConfigUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown setting", "RCBAD_CACHE_SIZE", "1", ErrSettingNotFound},
		{"not an integer", "RCBAD_HISTORY_MAX_ENTRIES", "many", ErrTypeMismatch},
		{"not a number", "RCBAD_CACHE_VELOCITY_MULTIPLIER", "fast", ErrTypeMismatch},
		{"fails validation", "RCBAD_ROPE_CHUNK_SIZE", "1", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg := Default()
			err := cfg.ApplyEnv("RCBAD")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if diff := cmp.Diff(Default(), cfg); diff != "" {
				t.Errorf("config changed on error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := Default()
	if err := cfg.Set("rope.rebuild_threshold", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Rope.RebuildThreshold != 0 {
		t.Errorf("rebuild_threshold = %d", cfg.Rope.RebuildThreshold)
	}
	if len(cfg.RopeOptions()) != 2 || len(cfg.BufferOptions()) != 3 {
		t.Error("unexpected option counts")
	}
}
