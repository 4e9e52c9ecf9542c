package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fpapulse/internal/config"
	"fpapulse/internal/exporter"
	"fpapulse/internal/infrastructure"
	"fpapulse/internal/metrics"
	"fpapulse/internal/sheets"
)

// AggregationRequest names the tab, range and date window to aggregate.
// Empty fields fall back to configured defaults.
type AggregationRequest struct {
	Tab   string
	Range string
	From  string
	To    string
}

// MetricsService drives the aggregation engine over spreadsheet data.
type MetricsService struct {
	sheets   *SheetService
	cfg      config.SheetsConfig
	location *time.Location
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
}

// NewMetricsService creates a new metrics service
func NewMetricsService(sheetService *SheetService, cfg config.SheetsConfig, logger *slog.Logger, bm *infrastructure.BusinessMetrics) *MetricsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsService{
		sheets:   sheetService,
		cfg:      cfg,
		location: cfg.Location(),
		logger:   logger.With(slog.String("component", "metrics_service")),
		metrics:  bm,
	}
}

// Summary aggregates the requested window into a single summary.
func (ms *MetricsService) Summary(ctx context.Context, req AggregationRequest) (metrics.Summary, error) {
	table, cols, window, err := ms.prepare(ctx, req)
	if err != nil {
		return metrics.Summary{}, err
	}

	summary := metrics.Summarize(table, cols, window, ms.location)
	summary.Source = ms.source(req)
	ms.recordAggregation(ctx, "summary", len(table.Body()), summary.OrderCount)
	return summary, nil
}

// TimeSeries aggregates the requested window into per-day totals,
// sorted by date ascending.
func (ms *MetricsService) TimeSeries(ctx context.Context, req AggregationRequest) ([]metrics.SeriesPoint, error) {
	table, cols, window, err := ms.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	series := metrics.BuildTimeSeries(table, cols, window, ms.location)
	// Accepted-row counts are only produced by Summarize, so the drop
	// counter is not recorded here.
	ms.recordAggregation(ctx, "timeseries", len(table.Body()), -1)
	return series, nil
}

// Report builds the combined summary plus daily series used by the
// export endpoint.
func (ms *MetricsService) Report(ctx context.Context, req AggregationRequest) (exporter.Report, error) {
	table, cols, window, err := ms.prepare(ctx, req)
	if err != nil {
		return exporter.Report{}, err
	}

	summary := metrics.Summarize(table, cols, window, ms.location)
	summary.Source = ms.source(req)
	series := metrics.BuildTimeSeries(table, cols, window, ms.location)
	ms.recordAggregation(ctx, "report", len(table.Body()), summary.OrderCount)
	return exporter.NewReport(summary, series), nil
}

// prepare fetches the rows, resolves the role columns and parses the
// window. All three aggregation entry points share it.
func (ms *MetricsService) prepare(ctx context.Context, req AggregationRequest) (metrics.Table, metrics.ColumnMap, metrics.Window, error) {
	tab := req.Tab
	if tab == "" {
		tab = ms.cfg.DefaultTab
	}

	data, err := ms.sheets.GetValues(ctx, tab, req.Range)
	if err != nil {
		return nil, nil, metrics.Window{}, err
	}

	table := metrics.Table(data.Rows)
	specs := metrics.DefaultRoleSpecs(ms.cfg.AmountHeader, ms.cfg.TimestampHeader)
	cols, err := metrics.ResolveColumns(table.Header(), specs)
	if err != nil {
		return nil, nil, metrics.Window{}, fmt.Errorf("resolve columns for %q: %w", tab, err)
	}

	window := metrics.ParseWindow(req.From, req.To, ms.location)
	return table, cols, window, nil
}

func (ms *MetricsService) source(req AggregationRequest) string {
	tab := req.Tab
	if tab == "" {
		tab = ms.cfg.DefaultTab
	}
	rng := req.Range
	if rng == "" {
		rng = sheets.DefaultRange
	}
	return fmt.Sprintf("%s!%s", tab, rng)
}

// recordAggregation logs and counts one aggregation run. A negative
// accepted count means the operation does not track per-row acceptance.
func (ms *MetricsService) recordAggregation(ctx context.Context, operation string, bodyRows, accepted int) {
	attrs := []any{
		slog.String("operation", operation),
		slog.Int("body_rows", bodyRows),
	}
	dropped := -1
	if accepted >= 0 {
		dropped = bodyRows - accepted
		if dropped < 0 {
			dropped = 0
		}
		attrs = append(attrs, slog.Int("accepted", accepted), slog.Int("dropped", dropped))
	}
	ms.logger.InfoContext(ctx, "aggregation completed", attrs...)

	if ms.metrics == nil {
		return
	}
	metricAttrs := metric.WithAttributes(attribute.String("operation", operation))
	ms.metrics.AggregationsTotal.Add(ctx, 1, metricAttrs)
	ms.metrics.AggregationRowsTotal.Add(ctx, int64(bodyRows), metricAttrs)
	if dropped >= 0 {
		ms.metrics.AggregationRowsDropped.Add(ctx, int64(dropped), metricAttrs)
	}
}
