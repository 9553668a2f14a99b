// Package metrics provides the telemetry interface used by the container,
// with a Prometheus-backed implementation and a no-op fallback.
package metrics

import (
	"net/http"
	"time"
)

// Metrics provides telemetry collection.
//
// Labels are provided as key-value pairs: "key1", "value1", "key2", "value2".
// A given metric name must always be used with the same label keys in the
// same order.
type Metrics interface {
	// Counter metrics (monotonically increasing)
	Counter(name string, labels ...string) Counter

	// Gauge metrics (can go up or down)
	Gauge(name string, labels ...string) Gauge

	// Histogram metrics (distributions)
	Histogram(name string, labels ...string) Histogram

	// Handler exposes the scrape endpoint for the backing registry
	Handler() http.Handler
}

// Counter tracks monotonically increasing values
type Counter interface {
	Inc()
	Add(delta float64)
}

// Gauge tracks values that can go up or down
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// Histogram tracks distributions of values
type Histogram interface {
	Observe(value float64)
	ObserveDuration(start time.Time)
}

// Config represents metrics configuration
type Config struct {
	Enabled   bool      `yaml:"enabled"`
	Namespace string    `yaml:"namespace"`
	Path      string    `yaml:"path"`
	Buckets   []float64 `yaml:"buckets"`
}

// DefaultConfig returns the default metrics configuration
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "crucible",
		Path:      "/metrics",
	}
}

// labelPairs splits alternating key-value labels into names and values.
// An incomplete trailing pair is dropped.
func labelPairs(labels []string) (names, values []string) {
	n := len(labels) / 2 * 2
	for i := 0; i < n; i += 2 {
		names = append(names, labels[i])
		values = append(values, labels[i+1])
	}
	return names, values
}
