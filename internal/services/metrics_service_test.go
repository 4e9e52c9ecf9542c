package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpapulse/internal/config"
	"fpapulse/internal/metrics"
)

func newTestMetricsService(f *fakeFetcher) *MetricsService {
	cfg := config.Default().Sheets
	cfg.DefaultTab = "Orders"
	return NewMetricsService(newTestSheetService(f), cfg, discardLogger(), nil)
}

func TestMetricsServiceSummary(t *testing.T) {
	svc := newTestMetricsService(&fakeFetcher{
		values: map[string][][]any{"Orders": ordersRows()},
	})

	t.Run("full window", func(t *testing.T) {
		summary, err := svc.Summary(context.Background(), AggregationRequest{})
		require.NoError(t, err)

		assert.InDelta(t, 1334.56, summary.TotalAmount, 0.001)
		assert.Equal(t, 3, summary.OrderCount)
		assert.InDelta(t, 444.8533, summary.AverageOrderValue, 0.001)
		assert.Equal(t, "Orders!A1:Z50", summary.Source)
	})

	t.Run("windowed", func(t *testing.T) {
		summary, err := svc.Summary(context.Background(), AggregationRequest{
			From: "2024-03-16",
			To:   "2024-03-16",
		})
		require.NoError(t, err)

		assert.InDelta(t, 100, summary.TotalAmount, 0.001)
		assert.Equal(t, 2, summary.OrderCount)
		assert.Equal(t, "2024-03-16", summary.WindowStart)
		assert.Equal(t, "2024-03-16", summary.WindowEnd)
	})

	t.Run("missing columns surface the engine error", func(t *testing.T) {
		bad := newTestMetricsService(&fakeFetcher{
			values: map[string][][]any{"Orders": {
				{"Order ID", "Customer"},
				{"1", "acme"},
			}},
		})

		_, err := bad.Summary(context.Background(), AggregationRequest{})
		var missing *metrics.MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.ElementsMatch(t, []metrics.Role{metrics.RolePrice, metrics.RoleTimestamp}, missing.Roles)
	})

	t.Run("unknown tab", func(t *testing.T) {
		svc := newTestMetricsService(&fakeFetcher{values: map[string][][]any{}})
		_, err := svc.Summary(context.Background(), AggregationRequest{Tab: "Nope"})
		assert.ErrorIs(t, err, ErrTabNotFound)
	})
}

func TestMetricsServiceTimeSeries(t *testing.T) {
	svc := newTestMetricsService(&fakeFetcher{
		values: map[string][][]any{"Orders": ordersRows()},
	})

	series, err := svc.TimeSeries(context.Background(), AggregationRequest{})
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "2024-03-15", series[0].Date)
	assert.InDelta(t, 1234.56, series[0].Value, 0.001)
	assert.Equal(t, "2024-03-16", series[1].Date)
	assert.InDelta(t, 100, series[1].Value, 0.001)
}

func TestMetricsServiceReport(t *testing.T) {
	svc := newTestMetricsService(&fakeFetcher{
		values: map[string][][]any{"Orders": ordersRows()},
	})

	report, err := svc.Report(context.Background(), AggregationRequest{Tab: "Orders", Range: "A1:C10"})
	require.NoError(t, err)

	assert.Equal(t, "Orders!A1:C10", report.Summary.Source)
	assert.Equal(t, 3, report.Summary.OrderCount)
	require.Len(t, report.Series, 2)

	// Series totals reconcile with the summary
	var sum float64
	for _, p := range report.Series {
		sum += p.Value
	}
	assert.InDelta(t, report.Summary.TotalAmount, sum, 0.001)
}
