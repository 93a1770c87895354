package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersCreated prometheus.Counter
	OrdersDeleted prometheus.Counter
	StatusUpdates *prometheus.CounterVec
	EventsFailed  prometheus.Counter
}

// New registers all collectors on a fresh registry, so several instances can
// live in one process (tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parcel",
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"route"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parcel",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders created.",
		}),
		OrdersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parcel",
			Subsystem: "orders",
			Name:      "deleted_total",
			Help:      "Orders deleted.",
		}),
		StatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel",
			Subsystem: "orders",
			Name:      "status_updates_total",
			Help:      "Status updates by new status.",
		}, []string{"status"}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parcel",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Order events that could not be published.",
		}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.OrdersCreated, m.OrdersDeleted, m.StatusUpdates, m.EventsFailed)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
