package observe

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)

	return m, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}

	return nil
}

func TestRecordToolCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "add", StatusOK, 2*time.Millisecond)
	m.RecordToolCall(ctx, "add", StatusOK, 3*time.Millisecond)
	m.RecordToolCall(ctx, "nope", StatusNotFound, time.Millisecond)

	t.Run("counter", func(t *testing.T) {
		got := findMetric(t, reader, "toolkit.tool.calls")
		require.NotNil(t, got)

		sum, ok := got.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		counts := make(map[string]int64)
		for _, dp := range sum.DataPoints {
			tool, _ := dp.Attributes.Value(attribute.Key("tool"))
			status, _ := dp.Attributes.Value(attribute.Key("status"))
			counts[tool.AsString()+"/"+status.AsString()] = dp.Value
		}

		require.Equal(t, map[string]int64{"add/ok": 2, "nope/not_found": 1}, counts)
	})

	t.Run("histogram", func(t *testing.T) {
		got := findMetric(t, reader, "toolkit.tool.duration")
		require.NotNil(t, got)

		hist, ok := got.Data.(metricdata.Histogram[float64])
		require.True(t, ok)

		var total uint64
		for _, dp := range hist.DataPoints {
			total += dp.Count
		}

		require.Equal(t, uint64(3), total)
	})
}

func TestProviderHandler(t *testing.T) {
	p, err := InitProvider(context.Background(), ProviderConfig{ServiceVersion: "test"})
	require.NoError(t, err)

	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	m, err := NewMetrics(otel.GetMeterProvider())
	require.NoError(t, err)

	m.RecordToolCall(context.Background(), "add", StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "toolkit_tool_calls")
}
