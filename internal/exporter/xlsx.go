package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily Totals"
)

// WorkbookWriter renders reports as XLSX workbooks.
type WorkbookWriter struct{}

// NewWorkbookWriter creates an XLSX report writer.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// WriteXLSX writes the report to w as a two-sheet workbook.
func (ww *WorkbookWriter) WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Metric", "Value"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, record := range report.summaryRows() {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &[]any{record[0], record[1]}); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("failed to create daily sheet: %w", err)
	}
	if err := f.SetSheetRow(dailySheet, "A1", &[]any{"Date", "Total"}); err != nil {
		return fmt.Errorf("failed to write daily header: %w", err)
	}
	for i, point := range report.Series {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(dailySheet, cell, &[]any{point.Date, point.Value}); err != nil {
			return fmt.Errorf("failed to write daily row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
