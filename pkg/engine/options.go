package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdom/pkg/style"
)

// DefaultLookahead is how far, in sibling positions, unkeyed children look
// for a reusable old node before a new one is created.
const DefaultLookahead = 5

// DefaultSoftKeyPrefix marks keys that prefer but do not require an exact
// match.
const DefaultSoftKeyPrefix = "~"

const defaultTracerName = "github.com/vango-dev/vdom/engine"

// Timer is a pending scheduled refresh.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc fits; tests substitute a
// manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

// Config holds the resolved mount options.
type Config struct {
	// Validate enables the consistency checks between logical and host
	// trees. Costs extra host reads.
	Validate bool

	// Lookahead is the neighborhood radius for unkeyed children.
	Lookahead int

	// SoftKeyPrefix marks soft keys. Empty disables soft keys.
	SoftKeyPrefix string

	// ClassPrefix prefixes generated style classes (default: "vs").
	ClassPrefix string

	// Injector receives generated stylesheets. nil drops them.
	Injector style.Injector

	Logger  *slog.Logger
	Metrics *Metrics
	Tracer  trace.Tracer

	AfterFunc AfterFunc

	// Context is handed to work started with Instance.Go and canceled on
	// unmount.
	Context context.Context
}

// Option configures a mount.
type Option func(*Config)

// WithValidation enables or disables validation mode.
func WithValidation(enabled bool) Option {
	return func(c *Config) {
		c.Validate = enabled
	}
}

// WithLookahead sets the neighborhood radius for unkeyed children.
// Negative values are treated as zero.
func WithLookahead(n int) Option {
	return func(c *Config) {
		if n < 0 {
			n = 0
		}
		c.Lookahead = n
	}
}

// WithSoftKeyPrefix sets the soft key marker.
func WithSoftKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.SoftKeyPrefix = prefix
	}
}

// WithClassPrefix sets the prefix of generated style classes.
func WithClassPrefix(prefix string) Option {
	return func(c *Config) {
		c.ClassPrefix = prefix
	}
}

// WithInjector sets the stylesheet injector.
func WithInjector(inj style.Injector) Option {
	return func(c *Config) {
		c.Injector = inj
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics records pass and event metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer used for pass and dispatch spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithAfterFunc replaces the timer used by Refresh.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Config) {
		c.AfterFunc = f
	}
}

// WithContext sets the parent context of the instance.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// defaultConfig returns the default mount configuration.
func defaultConfig() Config {
	return Config{
		Lookahead:     DefaultLookahead,
		SoftKeyPrefix: DefaultSoftKeyPrefix,
		ClassPrefix:   style.DefaultPrefix,
		AfterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		Context: context.Background(),
	}
}

func newConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(defaultTracerName)
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return cfg
}
