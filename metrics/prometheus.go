package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements Metrics on top of a dedicated prometheus.Registry
type Prometheus struct {
	config     Config
	registry   *prometheus.Registry
	collectors map[string]prometheus.Collector
	mu         sync.Mutex
}

// NewPrometheus creates a Prometheus-backed metrics collector with its own
// registry, plus the standard Go and process collectors.
func NewPrometheus(config Config) *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	return &Prometheus{
		config:     config,
		registry:   registry,
		collectors: make(map[string]prometheus.Collector),
	}
}

// Registry returns the backing registry for callers that register their own
// collectors alongside the container's.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Counter returns a counter handle for the given name and label pairs
func (p *Prometheus) Counter(name string, labels ...string) Counter {
	names, values := labelPairs(labels)

	p.mu.Lock()
	collector, ok := p.collectors[name]
	if !ok {
		collector = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.config.Namespace,
			Name:      name,
			Help:      name,
		}, names)
		p.registry.MustRegister(collector)
		p.collectors[name] = collector
	}
	p.mu.Unlock()

	vec, ok := collector.(*prometheus.CounterVec)
	if !ok {
		return noopCounter{}
	}
	return promCounter{counter: vec.WithLabelValues(values...)}
}

// Gauge returns a gauge handle for the given name and label pairs
func (p *Prometheus) Gauge(name string, labels ...string) Gauge {
	names, values := labelPairs(labels)

	p.mu.Lock()
	collector, ok := p.collectors[name]
	if !ok {
		collector = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.config.Namespace,
			Name:      name,
			Help:      name,
		}, names)
		p.registry.MustRegister(collector)
		p.collectors[name] = collector
	}
	p.mu.Unlock()

	vec, ok := collector.(*prometheus.GaugeVec)
	if !ok {
		return noopGauge{}
	}
	return promGauge{gauge: vec.WithLabelValues(values...)}
}

// Histogram returns a histogram handle for the given name and label pairs
func (p *Prometheus) Histogram(name string, labels ...string) Histogram {
	names, values := labelPairs(labels)

	p.mu.Lock()
	collector, ok := p.collectors[name]
	if !ok {
		collector = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.config.Namespace,
			Name:      name,
			Help:      name,
			Buckets:   p.config.Buckets,
		}, names)
		p.registry.MustRegister(collector)
		p.collectors[name] = collector
	}
	p.mu.Unlock()

	vec, ok := collector.(*prometheus.HistogramVec)
	if !ok {
		return noopHistogram{}
	}
	return promHistogram{histogram: vec.WithLabelValues(values...)}
}

// Handler returns the scrape handler for the backing registry
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

type promCounter struct {
	counter prometheus.Counter
}

func (c promCounter) Inc()              { c.counter.Inc() }
func (c promCounter) Add(delta float64) { c.counter.Add(delta) }

type promGauge struct {
	gauge prometheus.Gauge
}

func (g promGauge) Set(value float64) { g.gauge.Set(value) }
func (g promGauge) Inc()              { g.gauge.Inc() }
func (g promGauge) Dec()              { g.gauge.Dec() }

type promHistogram struct {
	histogram prometheus.Observer
}

func (h promHistogram) Observe(value float64) { h.histogram.Observe(value) }
func (h promHistogram) ObserveDuration(start time.Time) {
	h.histogram.Observe(time.Since(start).Seconds())
}
