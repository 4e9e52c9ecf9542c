package exporter

import (
	"fpapulse/internal/metrics"
)

// Report bundles a summary and its daily series for rendering.
type Report struct {
	Summary metrics.Summary
	Series  []metrics.SeriesPoint
}

// NewReport creates a report from aggregation results.
func NewReport(summary metrics.Summary, series []metrics.SeriesPoint) Report {
	return Report{Summary: summary, Series: series}
}

// summaryRows returns the summary section as label/value pairs.
func (r Report) summaryRows() [][]string {
	return [][]string{
		{"Total Amount", formatFloat(r.Summary.TotalAmount)},
		{"Order Count", formatInt(int64(r.Summary.OrderCount))},
		{"Average Order Value", formatFloat(r.Summary.AverageOrderValue)},
		{"Window Start", r.Summary.WindowStart},
		{"Window End", r.Summary.WindowEnd},
		{"Source", r.Summary.Source},
	}
}
