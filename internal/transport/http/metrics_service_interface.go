package http

import (
	"context"

	"fpapulse/internal/exporter"
	"fpapulse/internal/metrics"
	"fpapulse/internal/services"
)

// MetricsServiceInterface defines the interface for aggregation operations
type MetricsServiceInterface interface {
	Summary(ctx context.Context, req services.AggregationRequest) (metrics.Summary, error)
	TimeSeries(ctx context.Context, req services.AggregationRequest) ([]metrics.SeriesPoint, error)
	Report(ctx context.Context, req services.AggregationRequest) (exporter.Report, error)
}

// AnalysisServiceInterface defines the interface for LLM analysis
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req services.AnalysisRequest) (services.AnalysisResult, error)
}
