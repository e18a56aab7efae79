// Package config provides tuning configuration for the editing engine.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Settings a file leaves out keep their default values. Unknown keys are
// rejected so typos surface instead of being ignored.
//
// # Basic Usage
//
//	cfg, err := config.Load("ropecore.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv("ROPECORE_"); err != nil {
//	    return err
//	}
//	ed := engine.New(engine.WithConfig(cfg))
//
// A file looks like:
//
//	[rope]
//	chunk_size = 1024
//	rebuild_threshold = 1048576
//
//	[cache]
//	window_padding = 200
//	max_cached_lines = 10000
//	prefetch_recency_ms = 500
//
//	[history]
//	max_entries = 1000
//
//	[log]
//	level = "info"
//
// # Environment Variables
//
// ApplyEnv maps PREFIX_SECTION_SETTING to section.setting, so
// ROPECORE_CACHE_WINDOW_PADDING=64 sets cache.window_padding.
package config
