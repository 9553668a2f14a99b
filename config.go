package crucible

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/xraph/crucible/logger"
	"github.com/xraph/crucible/metrics"
)

// Config configures a container built with NewFromConfig.
type Config struct {
	Logging logger.Config  `yaml:"logging"`
	Metrics metrics.Config `yaml:"metrics"`
	Tracing TracingConfig  `yaml:"tracing"`
}

// TracingConfig controls per-resolution span recording.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracer_name"`
}

// DefaultConfig returns the default container configuration.
func DefaultConfig() Config {
	return Config{
		Logging: logger.Config{Level: "info"},
		Metrics: metrics.DefaultConfig(),
		Tracing: TracingConfig{TracerName: "crucible"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
// Environment variable references like ${VAR} are expanded before
// decoding, and unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// NewFromConfig builds a container wired with the configured logger,
// metrics, and tracing.
func NewFromConfig(cfg Config) Container {
	opts := []Option{
		WithLogger(logger.New(cfg.Logging)),
	}

	if cfg.Metrics.Enabled {
		opts = append(opts, WithMetrics(metrics.NewPrometheus(cfg.Metrics)))
	}

	if cfg.Tracing.Enabled {
		name := cfg.Tracing.TracerName
		if name == "" {
			name = "crucible"
		}
		opts = append(opts, WithTracer(otel.Tracer(name)))
	}

	return New(opts...)
}
