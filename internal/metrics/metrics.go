// Package metrics exposes Prometheus collectors for the HTTP layer and the order workflow.
package metrics

import (
	"net/http" // Exposition handler
	"strconv"  // Status labels
	"time"     // Request latency

	"github.com/gin-gonic/gin"                                  // Gin web framework
	"github.com/prometheus/client_golang/prometheus"            // Collectors
	"github.com/prometheus/client_golang/prometheus/collectors" // Go runtime and process collectors
	"github.com/prometheus/client_golang/prometheus/promhttp"   // /metrics handler
)

const namespace = "stock" // Metric name prefix

// Metrics holds the collectors and the registry they are registered on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry // Private registry, nothing global

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Order workflow
	OrdersPlaced   prometheus.Counter
	OrdersRejected *prometheus.CounterVec
	OrdersDeleted  prometheus.Counter
	StockRestored  prometheus.Counter
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders created",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Order creations refused by the workflow",
		}, []string{"reason"}),
		OrdersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "deleted_total",
			Help:      "Orders deleted",
		}),
		StockRestored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "products",
			Name:      "stock_restored_total",
			Help:      "Stock units returned by order deletion",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersPlaced,
		m.OrdersRejected,
		m.OrdersDeleted,
		m.StockRestored,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next() // Run the handler chain first
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched" // Keep label cardinality bounded for 404s
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// OrderPlaced counts a created order
func (m *Metrics) OrderPlaced() {
	if m != nil {
		m.OrdersPlaced.Inc()
	}
}

// OrderRejected counts a refused creation; reason is a short label such as "out_of_stock"
func (m *Metrics) OrderRejected(reason string) {
	if m != nil {
		m.OrdersRejected.WithLabelValues(reason).Inc()
	}
}

// OrderDeleted counts a deleted order and, when restored, the unit given back
func (m *Metrics) OrderDeleted(restored bool) {
	if m == nil {
		return
	}
	m.OrdersDeleted.Inc()
	if restored {
		m.StockRestored.Inc()
	}
}
