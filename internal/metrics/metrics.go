// Package metrics exposes Prometheus instrumentation for the queue engine and
// the appointment lifecycle.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the use cases report to.
type Recorder interface {
	ObserveRenumber(scopeKind string, size int, d time.Duration, err error)
	IncLifecycle(action string)
}

type Collector struct {
	renumberTotal    *prometheus.CounterVec
	renumberDuration *prometheus.HistogramVec
	scopeSize        *prometheus.HistogramVec
	lifecycle        *prometheus.CounterVec
}

// NewCollector registers the metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renumberTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_queue_renumber_total",
			Help: "Renumbering passes by scope kind and result.",
		}, []string{"scope", "result"}),
		renumberDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_queue_renumber_duration_seconds",
			Help:    "Duration of a renumbering pass including the scope lock wait.",
			Buckets: prometheus.DefBuckets,
		}, []string{"scope"}),
		scopeSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_queue_scope_size",
			Help:    "Confirmed appointments renumbered in one pass.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"scope"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_appointments_total",
			Help: "Appointment lifecycle operations by action.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		c.renumberTotal,
		c.renumberDuration,
		c.scopeSize,
		c.lifecycle,
	)

	return c
}

func (c *Collector) ObserveRenumber(scopeKind string, size int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.renumberTotal.WithLabelValues(scopeKind, result).Inc()
	c.renumberDuration.WithLabelValues(scopeKind).Observe(d.Seconds())
	if err == nil {
		c.scopeSize.WithLabelValues(scopeKind).Observe(float64(size))
	}
}

func (c *Collector) IncLifecycle(action string) {
	c.lifecycle.WithLabelValues(action).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveRenumber(string, int, time.Duration, error) {}
func (Nop) IncLifecycle(string)                               {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
