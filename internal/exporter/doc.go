// Package exporter renders aggregation results as downloadable reports.
//
// This package contains two main components:
//
// ReportWriter: Core CSV writing functionality with support for headers
// and UTF-8 BOM for Excel compatibility, writing to any io.Writer so
// reports can stream straight into an HTTP response.
//
// WorkbookWriter: Generates XLSX workbooks via excelize with a summary
// sheet and a daily totals sheet.
//
// Example usage:
//
//	report := exporter.NewReport(summary, series)
//
//	// Stream CSV into an HTTP response
//	err := exporter.NewReportWriter().WriteCSV(w, report)
//
//	// Or build an XLSX workbook
//	err = exporter.NewWorkbookWriter().WriteXLSX(w, report)
package exporter
