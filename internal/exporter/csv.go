package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReportWriter renders reports as CSV.
type ReportWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding
	BOMPrefix bool
}

// NewReportWriter creates a CSV report writer with the BOM enabled.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{BOMPrefix: true}
}

// WriteCSV writes the report to w. The summary section comes first,
// followed by a blank record and the daily totals section.
func (rw *ReportWriter) WriteCSV(w io.Writer, report Report) error {
	if rw.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range report.summaryRows() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write summary record %d: %w", i, err)
		}
	}

	if len(report.Series) > 0 {
		if err := writer.Write([]string{}); err != nil {
			return fmt.Errorf("failed to write section separator: %w", err)
		}
		if err := writer.Write([]string{"Date", "Total"}); err != nil {
			return fmt.Errorf("failed to write series headers: %w", err)
		}
		for i, point := range report.Series {
			if err := writer.Write([]string{point.Date, formatFloat(point.Value)}); err != nil {
				return fmt.Errorf("failed to write series record %d: %w", i, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
