package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments an Async wrapper's queue, grounded on the example
// corpus's dispatcher/sink gauges (e.g. DispatcherQueueDepth,
// SinkQueueUtilization). Its methods are safe on a nil *Metrics, which
// records nothing, so passing nil to NewAsync opts out of instrumentation.
type Metrics struct {
	depth     prometheus.Gauge
	dropped   prometheus.Counter
	delivered prometheus.Counter
}

// NewMetrics registers (via promauto, against the default registry) a queue
// depth gauge and dropped/delivered counters labeled by name, so multiple
// Async wrappers in one process don't collide.
func NewMetrics(name string) *Metrics {
	labels := prometheus.Labels{"sink": name}
	return &Metrics{
		depth: promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
			Namespace:   "corelog",
			Subsystem:   "async_sink",
			Name:        "queue_depth",
			Help:        "Number of records currently queued for asynchronous delivery.",
			ConstLabels: labels,
		}),
		dropped: promauto.With(prometheus.DefaultRegisterer).NewCounter(prometheus.CounterOpts{
			Namespace:   "corelog",
			Subsystem:   "async_sink",
			Name:        "dropped_total",
			Help:        "Records dropped because the queue was full and the overflow policy gave up.",
			ConstLabels: labels,
		}),
		delivered: promauto.With(prometheus.DefaultRegisterer).NewCounter(prometheus.CounterOpts{
			Namespace:   "corelog",
			Subsystem:   "async_sink",
			Name:        "delivered_total",
			Help:        "Records successfully handed to the wrapped sink.",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) observeEnqueue() {
	if m == nil {
		return
	}
	m.depth.Inc()
}

func (m *Metrics) observeDequeue() {
	if m == nil {
		return
	}
	m.depth.Dec()
}

func (m *Metrics) observeDrop() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

func (m *Metrics) observeDelivered() {
	if m == nil {
		return
	}
	m.delivered.Inc()
}
