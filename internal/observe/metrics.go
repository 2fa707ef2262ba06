// Package observe provides the OpenTelemetry metrics and tracing used by the
// tool dispatcher.
//
// Metrics are recorded through the OpenTelemetry Metrics API. InitProvider
// installs a Prometheus exporter bridge so the server binary can expose them
// on a /metrics endpoint. Tests should call NewMetrics with their own
// metric.MeterProvider to avoid sharing global state.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all toolkit metrics.
const meterName = "github.com/wagiedev/toolkit-mcp-go"

// Call outcomes recorded on the status attribute.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
	StatusBlocked  = "blocked"
)

// Metrics holds the metric instruments for tool dispatch.
type Metrics struct {
	// ToolCalls counts dispatches by tool and status.
	ToolCalls metric.Int64Counter

	// ToolDuration tracks handler latency in seconds by tool and status.
	ToolDuration metric.Float64Histogram

	// HTTPRequestDuration tracks streamable HTTP request latency in seconds.
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates the instruments using mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)

	var err error

	met := &Metrics{}

	if met.ToolCalls, err = m.Int64Counter("toolkit.tool.calls",
		metric.WithDescription("Total tool dispatches by tool name and status."),
	); err != nil {
		return nil, err
	}

	if met.ToolDuration, err = m.Float64Histogram("toolkit.tool.duration",
		metric.WithDescription("Latency of tool dispatch."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("toolkit.http.request.duration",
		metric.WithDescription("Latency of HTTP requests to the tool server."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level Metrics built on the global meter
// provider. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error

		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})

	return defaultMetrics
}

// RecordToolCall records one dispatch of tool with the given status and
// elapsed time.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)

	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolDuration.Record(ctx, elapsed.Seconds(), attrs)
}
