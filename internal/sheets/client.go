// Package sheets wraps the Google Sheets API for read-only access to
// the configured spreadsheet. It is the row-retrieval collaborator for
// the metrics engine; all normalization happens downstream.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultRange is used when the caller does not supply an A1 range.
const DefaultRange = "A1:Z50"

// Client provides read access to one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewClient builds a Sheets client from service-account credentials.
// The credentials JSON comes from configuration; the client only ever
// requests read scope.
func NewClient(ctx context.Context, spreadsheetID string, credentialsJSON []byte, logger *slog.Logger) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("service account credentials are empty")
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger.With(slog.String("component", "sheets_client")),
	}, nil
}

// SpreadsheetID returns the configured document ID.
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// ListTabs returns the titles of all sheets in the document, in
// document order.
func (c *Client) ListTabs(ctx context.Context) ([]string, error) {
	meta, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title != "" {
			titles = append(titles, s.Properties.Title)
		}
	}

	c.logger.InfoContext(ctx, "listed spreadsheet tabs",
		slog.String("spreadsheet_id", c.spreadsheetID),
		slog.Int("count", len(titles)),
	)
	return titles, nil
}

// Values reads one tab over the given A1 range and returns the raw
// rows. An empty range falls back to DefaultRange. A tab with no data
// in the range yields an empty (non-nil) table.
func (c *Client) Values(ctx context.Context, tab, a1Range string) ([][]any, error) {
	if tab == "" {
		return nil, fmt.Errorf("tab name is required")
	}
	if a1Range == "" {
		a1Range = DefaultRange
	}

	fullRange := fmt.Sprintf("%s!%s", QuoteTab(tab), a1Range)
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, fullRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", fullRange, err)
	}

	rows := resp.Values
	if rows == nil {
		rows = [][]any{}
	}

	c.logger.InfoContext(ctx, "fetched sheet values",
		slog.String("tab", tab),
		slog.String("range", a1Range),
		slog.Int("rows", len(rows)),
	)
	return rows, nil
}

// BatchValues reads the top-left rows×cols corner of every given tab in
// a single API round trip. The result maps tab title to raw rows; tabs
// with no data map to an empty table.
func (c *Client) BatchValues(ctx context.Context, tabs []string, rows int, cols string) (map[string][][]any, error) {
	if len(tabs) == 0 {
		return map[string][][]any{}, nil
	}
	if rows < 1 {
		rows = 1
	}
	if cols == "" {
		cols = "Z"
	}
	cols = strings.ToUpper(cols)

	ranges := make([]string, len(tabs))
	for i, tab := range tabs {
		ranges[i] = fmt.Sprintf("%s!A1:%s%d", QuoteTab(tab), cols, rows)
	}

	resp, err := c.service.Spreadsheets.Values.BatchGet(c.spreadsheetID).
		Ranges(ranges...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch read %d tabs: %w", len(tabs), err)
	}

	result := make(map[string][][]any, len(tabs))
	for i, vr := range resp.ValueRanges {
		if i >= len(tabs) {
			break
		}
		values := vr.Values
		if values == nil {
			values = [][]any{}
		}
		result[tabs[i]] = values
	}

	c.logger.InfoContext(ctx, "batch fetched sheet values",
		slog.Int("tabs", len(tabs)),
		slog.Int("rows_per_tab", rows),
	)
	return result, nil
}

// Ping verifies the spreadsheet is reachable with the configured
// credentials. Used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.service.Spreadsheets.Get(c.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("spreadsheet unreachable: %w", err)
	}
	return nil
}

var plainTabName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// QuoteTab wraps a tab title in single quotes when A1 notation requires
// it (anything beyond letters, digits and underscores). Embedded single
// quotes are escaped by doubling.
func QuoteTab(title string) string {
	if plainTabName.MatchString(title) {
		return title
	}
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
