package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ngwp"

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// DurationObserver records how long something took.
type DurationObserver interface {
	Observe(d time.Duration, val ...string)
}

type Histogram struct {
	Name string
	Help string

	vec *prometheus.HistogramVec
}

// Observe records d in seconds.
func (h *Histogram) Observe(d time.Duration, val ...string) {
	h.vec.WithLabelValues(val...).Observe(d.Seconds())
}

// NewHistogramWithRegistry registers a duration histogram with the default buckets.
func NewHistogramWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) DurationObserver {
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
		Buckets:   prometheus.DefBuckets,
	}, labels)

	reg.MustRegister(hist)

	return &Histogram{
		Name: name,
		Help: help,
		vec:  hist,
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
