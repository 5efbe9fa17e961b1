package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(MetricsConfig{
		ServiceName:    "uniprot-mcp-test",
		ServiceVersion: "0.0.0",
	})
	require.NoError(t, err)
	return m
}

func TestObserveToolCallSuccess(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveToolCall("uniprot_search", 25*time.Millisecond, nil)
	m.ObserveToolCall("uniprot_search", 30*time.Millisecond, nil)

	count := testutil.ToFloat64(m.toolCallTotal.WithLabelValues("uniprot_search", "success"))
	assert.Equal(t, float64(2), count)
}

func TestObserveToolCallErrorRecordsCode(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveToolCall("uniprot_search", time.Millisecond,
		mcperrors.InvalidCursor("xyz", "malformed encoding"))

	errCount := testutil.ToFloat64(m.toolCallTotal.WithLabelValues("uniprot_search", "error"))
	assert.Equal(t, float64(1), errCount)

	codeCount := testutil.ToFloat64(m.errorTotal.WithLabelValues("-32801", "pagination"))
	assert.Equal(t, float64(1), codeCount)
}

func TestObserveUpstreamRequest(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveUpstreamRequest("uniprotkb", "search", "200", 50*time.Millisecond)
	m.ObserveUpstreamRequest("uniprotkb", "fetch", "404", 10*time.Millisecond)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.upstreamTotal.WithLabelValues("uniprotkb", "search", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.upstreamTotal.WithLabelValues("uniprotkb", "fetch", "404")))
}

func TestMetricsStartWithoutListener(t *testing.T) {
	m := newTestMetrics(t)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
}

func TestNewTracingProviderWithoutEndpoint(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{
		ServiceName:    "uniprot-mcp-test",
		ServiceVersion: "0.0.0",
	})
	require.NoError(t, err)
	require.NotNil(t, tp.Tracer())

	_, span := tp.Tracer().Start(context.Background(), "test")
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
}
