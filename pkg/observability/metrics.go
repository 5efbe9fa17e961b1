// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the server.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
)

// MetricsConfig configures the metrics collector
type MetricsConfig struct {
	ServiceName    string
	ServiceVersion string

	// Namespace is the Prometheus namespace (default: uniprot_mcp)
	Namespace string

	// ListenAddr serves /metrics when non-empty (e.g. ":9090"). The
	// endpoint runs on its own listener since stdout belongs to the
	// protocol and there is no other HTTP surface.
	ListenAddr string

	// HistogramBuckets for call latency, in seconds
	HistogramBuckets []float64

	// Logger receives diagnostics from the metrics endpoint
	Logger logging.Logger
}

// Metrics collects tool call and upstream request metrics
type Metrics struct {
	registry *prometheus.Registry
	server   *http.Server
	logger   logging.Logger

	toolCallDuration *prometheus.HistogramVec
	toolCallTotal    *prometheus.CounterVec
	errorTotal       *prometheus.CounterVec

	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the metric collectors
func NewMetrics(config MetricsConfig) (*Metrics, error) {
	if config.Namespace == "" {
		config.Namespace = "uniprot_mcp"
	}
	if config.HistogramBuckets == nil {
		config.HistogramBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	}
	if config.Logger == nil {
		config.Logger = logging.NewNop()
	}

	constLabels := prometheus.Labels{
		"service": config.ServiceName,
		"version": config.ServiceVersion,
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   config.Logger,
		toolCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "tool_call_duration_seconds",
			Help:        "Duration of tool calls",
			Buckets:     config.HistogramBuckets,
			ConstLabels: constLabels,
		}, []string{"tool", "status"}),
		toolCallTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "tool_calls_total",
			Help:        "Total number of tool calls",
			ConstLabels: constLabels,
		}, []string{"tool", "status"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "errors_total",
			Help:        "Total number of errors by code",
			ConstLabels: constLabels,
		}, []string{"code", "category"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "upstream_request_duration_seconds",
			Help:        "Duration of UniProt REST requests",
			Buckets:     config.HistogramBuckets,
			ConstLabels: constLabels,
		}, []string{"database", "operation", "status"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "upstream_requests_total",
			Help:        "Total number of UniProt REST requests",
			ConstLabels: constLabels,
		}, []string{"database", "operation", "status"}),
	}

	collectors := []prometheus.Collector{
		m.toolCallDuration,
		m.toolCallTotal,
		m.errorTotal,
		m.upstreamDuration,
		m.upstreamTotal,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	if config.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
		m.server = &http.Server{
			Addr:              config.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return m, nil
}

// ObserveToolCall records one tool invocation
func (m *Metrics) ObserveToolCall(tool string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		code := mcperrors.CodeInternalError
		category := mcperrors.CategoryInternal
		if mcpErr, ok := mcperrors.AsMCPError(err); ok {
			code = mcpErr.Code()
			category = mcpErr.Category()
		}
		m.errorTotal.WithLabelValues(strconv.Itoa(code), string(category)).Inc()
	}

	m.toolCallDuration.WithLabelValues(tool, status).Observe(duration.Seconds())
	m.toolCallTotal.WithLabelValues(tool, status).Inc()
}

// ObserveUpstreamRequest records one UniProt REST request
func (m *Metrics) ObserveUpstreamRequest(database, operation, status string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(database, operation, status).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(database, operation, status).Inc()
}

// Start serves the metrics endpoint when one is configured. It returns
// immediately.
func (m *Metrics) Start(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("metrics endpoint failed", logging.ErrorField(err))
		}
	}()
	return nil
}

// Shutdown stops the metrics endpoint
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
