package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/engine"
)

func isCode(err error, code string) bool {
	return stderrors.Is(err, errors.New(code))
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Lookahead != engine.DefaultLookahead {
		t.Errorf("Lookahead = %d, want %d", cfg.Lookahead, engine.DefaultLookahead)
	}
	if cfg.SoftKeyPrefix != "~" {
		t.Errorf("SoftKeyPrefix = %q, want %q", cfg.SoftKeyPrefix, "~")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultMetricsNamespace)
	}
	if cfg.Validation {
		t.Error("Validation should default to false")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !isCode(err, "V100") {
		t.Errorf("Load on empty dir = %v, want V100", err)
	}

	configJSON := `{
  "validate": true,
  "lookahead": 2,
  "softKeyPrefix": "",
  "metrics": {
    "enabled": true,
    "namespace": "app"
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, "vdom.json"), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Validation {
		t.Error("Validation should be true")
	}
	if cfg.Lookahead != 2 {
		t.Errorf("Lookahead = %d, want 2", cfg.Lookahead)
	}
	if cfg.SoftKeyPrefix != "" {
		t.Errorf("SoftKeyPrefix = %q, want empty", cfg.SoftKeyPrefix)
	}
	if cfg.Metrics.Namespace != "app" {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, "app")
	}
	// Omitted fields keep their defaults
	if cfg.ClassPrefix != "vs" {
		t.Errorf("ClassPrefix = %q, want %q", cfg.ClassPrefix, "vs")
	}
	if cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing.TracerName = %q, want %q", cfg.Tracing.TracerName, DefaultTracerName)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `validate: true
lookahead: 0
logLevel: debug
tracing:
  tracerName: demo
`
	if err := os.WriteFile(filepath.Join(tmpDir, "vdom.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Lookahead != 0 {
		t.Errorf("Lookahead = %d, want 0", cfg.Lookahead)
	}
	if cfg.Tracing.TracerName != "demo" {
		t.Errorf("Tracing.TracerName = %q, want %q", cfg.Tracing.TracerName, "demo")
	}
	if cfg.SoftKeyPrefix != "~" {
		t.Errorf("SoftKeyPrefix = %q, want default", cfg.SoftKeyPrefix)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "vdom.json"), []byte(`{"lookahead": 1}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, "vdom.yaml"), []byte("lookahead: 3\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Lookahead != 1 {
		t.Errorf("Lookahead = %d, want 1 from vdom.json", cfg.Lookahead)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vdom.json")

	if err := os.WriteFile(configPath, []byte("{\n  \"lookahead\": ,\n}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if !isCode(err, "V101") {
		t.Fatalf("LoadFile = %v, want V101", err)
	}
	var ve *errors.Error
	if !stderrors.As(err, &ve) || ve.Location == nil {
		t.Fatalf("expected a located error, got %v", err)
	}
	if ve.Location.Line != 2 {
		t.Errorf("Location.Line = %d, want 2", ve.Location.Line)
	}
}

func TestLoadFile_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	for name, body := range map[string]string{
		"vdom.json": `{"lookahed": 2}`,
		"vdom.yml":  "lookahed: 2\n",
	} {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); !isCode(err, "V101") {
			t.Errorf("%s: LoadFile = %v, want V101", name, err)
		}
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vdom.toml")
	if err := os.WriteFile(path, []byte("lookahead = 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !isCode(err, "V103") {
		t.Errorf("LoadFile = %v, want V103", err)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"vdom.json", "vdom.yaml"} {
		cfg := New()
		cfg.Validation = true
		cfg.Lookahead = 7
		cfg.Metrics.Enabled = true

		path := filepath.Join(tmpDir, name)
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("%s: SaveTo failed: %v", name, err)
		}
		if cfg.Path() != path {
			t.Errorf("%s: Path() = %q, want %q", name, cfg.Path(), path)
		}

		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: LoadFile failed: %v", name, err)
		}
		if !loaded.Validation || loaded.Lookahead != 7 || !loaded.Metrics.Enabled {
			t.Errorf("%s: round trip lost values: %+v", name, loaded)
		}
	}

	if err := New().SaveTo(filepath.Join(tmpDir, "vdom.ini")); !isCode(err, "V103") {
		t.Errorf("SaveTo .ini = %v, want V103", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero lookahead", func(c *Config) { c.Lookahead = 0 }, true},
		{"negative lookahead", func(c *Config) { c.Lookahead = -1 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"upper case level", func(c *Config) { c.LogLevel = "WARN" }, true},
		{"class prefix with space", func(c *Config) { c.ClassPrefix = "a b" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !isCode(err, "V102") {
				t.Errorf("Validate = %v, want V102", err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	cfg := New()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := New()
	if got := len(cfg.EngineOptions(nil, nil)); got != 5 {
		t.Errorf("len(EngineOptions) = %d, want 5", got)
	}

	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "cfgtest"
	reg := prometheus.NewRegistry()
	opts := cfg.EngineOptions(cfg.Logger(&bytes.Buffer{}), reg)
	if len(opts) != 7 {
		t.Errorf("len(EngineOptions) = %d, want 7", len(opts))
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "cfgtest_") {
			found = true
		}
	}
	// Vectors without observations are not gathered; plain counters are.
	if !found {
		t.Error("expected collectors registered under the configured namespace")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should return false for empty dir")
	}

	os.WriteFile(filepath.Join(tmpDir, "vdom.yml"), []byte("validate: true\n"), 0644)

	if !Exists(tmpDir) {
		t.Error("Exists should return true after creating vdom.yml")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()

	// Create nested directories
	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	// No config anywhere
	if _, err := FindProjectRoot(nested); !isCode(err, "V100") {
		t.Errorf("FindProjectRoot = %v, want V100", err)
	}

	// Create config at root
	os.WriteFile(filepath.Join(tmpDir, "vdom.json"), []byte("{}"), 0644)

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot failed: %v", err)
	}

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
	actualRoot, _ := filepath.EvalSymlinks(root)
	if actualRoot != expectedRoot {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\ne")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 3, 1},
		{100, 3, 2},
	}
	for _, tt := range tests {
		line, col := position(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
