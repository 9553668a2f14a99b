package metrics

import (
	"net/http"
	"time"
)

// noop implements Metrics with no collection at all
type noop struct{}

// NewNoop creates a metrics collector that discards everything
func NewNoop() Metrics {
	return noop{}
}

func (noop) Counter(name string, labels ...string) Counter     { return noopCounter{} }
func (noop) Gauge(name string, labels ...string) Gauge         { return noopGauge{} }
func (noop) Histogram(name string, labels ...string) Histogram { return noopHistogram{} }
func (noop) Handler() http.Handler                             { return http.NotFoundHandler() }

type noopCounter struct{}

func (noopCounter) Inc()              {}
func (noopCounter) Add(delta float64) {}

type noopGauge struct{}

func (noopGauge) Set(value float64) {}
func (noopGauge) Inc()              {}
func (noopGauge) Dec()              {}

type noopHistogram struct{}

func (noopHistogram) Observe(value float64)           {}
func (noopHistogram) ObserveDuration(start time.Time) {}
