package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/engine"
	"github.com/vango-dev/vdom/pkg/style"
)

// ConfigFileNames are the file names looked up in a directory, in order.
var ConfigFileNames = []string{"vdom.json", "vdom.yaml", "vdom.yml"}

const (
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "vdom"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/vdom/engine"
)

// Config represents the engine configuration file.
type Config struct {
	// Validation enables the consistency checks between logical and host trees.
	Validation bool `json:"validate" yaml:"validate"`

	// Lookahead is the neighborhood radius for unkeyed children.
	Lookahead int `json:"lookahead" yaml:"lookahead"`

	// SoftKeyPrefix marks soft keys. Empty disables them.
	SoftKeyPrefix string `json:"softKeyPrefix" yaml:"softKeyPrefix"`

	// ClassPrefix prefixes generated style classes.
	ClassPrefix string `json:"classPrefix,omitempty" yaml:"classPrefix,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the engine collectors.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName names the tracer taken from the global provider.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Lookahead:     engine.DefaultLookahead,
		SoftKeyPrefix: engine.DefaultSoftKeyPrefix,
		ClassPrefix:   style.DefaultPrefix,
		LogLevel:      DefaultLogLevel,
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for the first of ConfigFileNames in the directory.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("V100").
		WithDetail("No configuration file found in " + dir).
		WithSuggestion("Run 'vdom config init' to write one with the defaults")
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("V100").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("V101").Wrap(err)
	}

	cfg := New()
	if err := cfg.decode(path, data); err != nil {
		return nil, err
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			e := errors.New("V101").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
			var syntax *json.SyntaxError
			if stderrors.As(err, &syntax) {
				line, col := position(data, syntax.Offset)
				e = e.WithLocation(path, line, col)
			}
			return e
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && err != io.EOF {
			return errors.New("V101").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	default:
		return errors.New("V103").WithLocation(path, 0, 0)
	}
	return nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	default:
		return errors.New("V103").WithLocation(path, 0, 0)
	}
	if err != nil {
		return errors.New("V101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("V101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.ClassPrefix == "" {
		c.ClassPrefix = style.DefaultPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Lookahead < 0 {
		return errors.New("V102").
			WithDetail(fmt.Sprintf("lookahead must not be negative, got %d", c.Lookahead))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.New("V102").
			WithDetail(err.Error()).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if strings.ContainsAny(c.ClassPrefix, " .#") {
		return errors.New("V102").
			WithDetail(fmt.Sprintf("classPrefix %q is not a valid class name prefix", c.ClassPrefix))
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// EngineOptions converts the configuration into mount options. Metrics,
// when enabled, are registered with reg; a nil reg means the default
// registerer.
func (c *Config) EngineOptions(logger *slog.Logger, reg prometheus.Registerer) []engine.Option {
	opts := []engine.Option{
		engine.WithValidation(c.Validation),
		engine.WithLookahead(c.Lookahead),
		engine.WithSoftKeyPrefix(c.SoftKeyPrefix),
		engine.WithClassPrefix(c.ClassPrefix),
		engine.WithTracer(otel.Tracer(c.Tracing.TracerName)),
	}
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}
	if c.Metrics.Enabled {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		opts = append(opts, engine.WithMetrics(engine.NewMetrics(
			engine.WithNamespace(c.Metrics.Namespace),
			engine.WithRegistry(reg),
		)))
	}
	return opts
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("V100").
				WithDetail("No configuration file found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'vdom config init' to write one with the defaults")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest parent that has one. Without any configuration
// file the defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
