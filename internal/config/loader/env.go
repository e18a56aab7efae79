package loader

import (
	"os"
	"strings"
)

// EnvLoader collects environment variables that share a prefix and maps
// them to dotted setting paths: with prefix "ROPECORE_",
// ROPECORE_CACHE_WINDOW_PADDING becomes "cache.window_padding".
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader. A trailing
// underscore is added to the prefix if missing.
func NewEnvLoader(prefix string) *EnvLoader {
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// Load returns the prefixed variables keyed by setting path.
// Empty values are kept; they are valid values, not unset.
func (l *EnvLoader) Load() map[string]string {
	values := make(map[string]string)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if path := l.envToPath(name); path != "" {
			values[path] = value
		}
	}
	return values
}

// envToPath converts ROPECORE_CACHE_WINDOW_PADDING to cache.window_padding.
// Variables without a setting part map to "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}
