package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fpapulse/internal/infrastructure"
	"fpapulse/internal/sheets"
)

// SheetFetcher is the subset of the sheets client the services need.
// Defined here so tests can substitute a stub.
type SheetFetcher interface {
	ListTabs(ctx context.Context) ([]string, error)
	Values(ctx context.Context, tab, a1Range string) ([][]any, error)
	BatchValues(ctx context.Context, tabs []string, rows int, cols string) (map[string][][]any, error)
	Ping(ctx context.Context) error
}

// TabData holds the raw rows fetched from one tab.
type TabData struct {
	Tab    string  `json:"tab"`
	Range  string  `json:"range"`
	Rows   [][]any `json:"rows"`
	Source string  `json:"source"`
}

// SheetService provides spreadsheet access functionality
type SheetService struct {
	client  SheetFetcher
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// NewSheetService creates a new sheet service
func NewSheetService(client SheetFetcher, logger *slog.Logger, bm *infrastructure.BusinessMetrics) *SheetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetService{
		client:  client,
		logger:  logger.With(slog.String("component", "sheet_service")),
		metrics: bm,
	}
}

// ListTabs returns the tab titles of the configured spreadsheet.
func (s *SheetService) ListTabs(ctx context.Context) ([]string, error) {
	start := time.Now()
	tabs, err := s.client.ListTabs(ctx)
	s.recordFetch(ctx, "list_tabs", time.Since(start), len(tabs), err)
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	return tabs, nil
}

// GetValues fetches one tab over the given A1 range. An empty range
// falls back to the client default.
func (s *SheetService) GetValues(ctx context.Context, tab, a1Range string) (TabData, error) {
	if tab == "" {
		return TabData{}, fmt.Errorf("%w: tab name is required", ErrInvalidInput)
	}
	if a1Range == "" {
		a1Range = sheets.DefaultRange
	}

	start := time.Now()
	rows, err := s.client.Values(ctx, tab, a1Range)
	s.recordFetch(ctx, "values", time.Since(start), len(rows), err)
	if err != nil {
		if isUnableToParse(err) {
			return TabData{}, fmt.Errorf("tab %q: %w", tab, ErrTabNotFound)
		}
		return TabData{}, fmt.Errorf("get values: %w", err)
	}

	return TabData{
		Tab:    tab,
		Range:  a1Range,
		Rows:   rows,
		Source: fmt.Sprintf("%s!%s", tab, a1Range),
	}, nil
}

// GetAllSheets fetches the top-left rows×cols preview of every tab in
// the spreadsheet in one batch call.
func (s *SheetService) GetAllSheets(ctx context.Context, rows int, cols string) ([]TabData, error) {
	tabs, err := s.ListTabs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	byTab, err := s.client.BatchValues(ctx, tabs, rows, cols)
	fetched := 0
	for _, v := range byTab {
		fetched += len(v)
	}
	s.recordFetch(ctx, "batch_values", time.Since(start), fetched, err)
	if err != nil {
		return nil, fmt.Errorf("batch values: %w", err)
	}

	// Preserve document order
	result := make([]TabData, 0, len(tabs))
	for _, tab := range tabs {
		data := byTab[tab]
		if data == nil {
			data = [][]any{}
		}
		rangeSpec := fmt.Sprintf("A1:%s%d", strings.ToUpper(cols), rows)
		result = append(result, TabData{
			Tab:    tab,
			Range:  rangeSpec,
			Rows:   data,
			Source: fmt.Sprintf("%s!%s", tab, rangeSpec),
		})
	}
	return result, nil
}

// Ping verifies the spreadsheet is reachable.
func (s *SheetService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SheetService) recordFetch(ctx context.Context, operation string, d time.Duration, rows int, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	s.logger.InfoContext(ctx, "sheet fetch completed",
		slog.String("operation", operation),
		slog.String("status", status),
		slog.Int("rows", rows),
		slog.Duration("duration", d),
	)

	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	s.metrics.SheetFetchesTotal.Add(ctx, 1, attrs)
	s.metrics.SheetFetchDuration.Record(ctx, d.Seconds(), attrs)
	if err == nil {
		s.metrics.SheetRowsFetched.Add(ctx, int64(rows), attrs)
	}
}

// isUnableToParse reports whether the Sheets API rejected the range,
// which is how it signals a tab that does not exist.
func isUnableToParse(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Unable to parse range") || strings.Contains(msg, "notFound")
}
