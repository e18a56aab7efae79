package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

type sample struct {
	Cache struct {
		WindowPadding int `toml:"window_padding" yaml:"window_padding"`
	} `toml:"cache" yaml:"cache"`
	Log struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"config.toml", FormatTOML, false},
		{"dir/config.yaml", FormatYAML, false},
		{"CONFIG.YML", FormatYAML, false},
		{"config.json", "", true},
		{"config", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.err {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, "[cache]\nwindow_padding = 50\n\n[log]\nlevel = \"debug\"\n"},
		{"yaml", FormatYAML, "cache:\n  window_padding: 50\nlog:\n  level: debug\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			if err := Decode(tt.format, "<input>", []byte(tt.data), &got); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Cache.WindowPadding != 50 || got.Log.Level != "debug" {
				t.Errorf("decoded %+v", got)
			}
		})
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	var got sample
	got.Log.Level = "warn"
	if err := Decode(FormatYAML, "<input>", nil, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Log.Level != "warn" {
		t.Error("empty document should leave the value untouched")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		data     string
		wantLine int
		contains string
	}{
		{"toml syntax", FormatTOML, "[cache]\nwindow_padding = = 3\n", 2, ""},
		{"toml unknown key", FormatTOML, "[cache]\nwindow_padding = 3\nbogus = 1\n", 3, "unknown key cache.bogus"},
		{"yaml unknown key", FormatYAML, "cache:\n  bogus: 1\n", 2, "bogus"},
		{"yaml syntax", FormatYAML, "cache:\n  window_padding: [1\n", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := Decode(tt.format, "test."+string(tt.format), []byte(tt.data), &got)

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if pe.Path != "test."+string(tt.format) {
				t.Errorf("Path = %q", pe.Path)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tt.wantLine, err)
			}
			if tt.contains != "" && !strings.Contains(pe.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", pe.Error(), tt.contains)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/editor.toml": &fstest.MapFile{Data: []byte("[log]\nlevel = \"error\"\n")},
	}

	var got sample
	found, err := LoadFile(fsys, "conf/editor.toml", &got)
	if err != nil || !found {
		t.Fatalf("LoadFile = %v, %v", found, err)
	}
	if got.Log.Level != "error" {
		t.Errorf("level = %q", got.Log.Level)
	}

	found, err = LoadFile(fsys, "conf/missing.yaml", &got)
	if err != nil || found {
		t.Errorf("missing file: found=%v err=%v", found, err)
	}

	if _, err := LoadFile(fsys, "conf/editor.ini", &got); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

type failingFS struct{}

func (failingFS) ReadFile(string) ([]byte, error) {
	return nil, fs.ErrPermission
}

func TestLoadFileReadError(t *testing.T) {
	var got sample
	_, err := LoadFile(failingFS{}, "x.toml", &got)
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected permission error, got %v", err)
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("ROPECORE")
	l.environ = func() []string {
		return []string{
			"ROPECORE_CACHE_WINDOW_PADDING=64",
			"ROPECORE_LOG_LEVEL=",
			"ROPECORE_ORPHAN=1",
			"OTHER_CACHE_SIZE=2",
			"PATH=/usr/bin",
		}
	}

	want := map[string]string{
		"cache.window_padding": "64",
		"log.level":            "",
	}
	if diff := cmp.Diff(want, l.Load()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoaderReadsProcessEnvironment(t *testing.T) {
	t.Setenv("ROPECORE_TEST_HISTORY_MAX_ENTRIES", "12")

	got := NewEnvLoader("ROPECORE_TEST_").Load()
	if got["history.max_entries"] != "12" {
		t.Errorf("history.max_entries = %q", got["history.max_entries"])
	}
}
