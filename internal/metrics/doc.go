// Package metrics implements the tabular aggregation engine over raw
// spreadsheet rows.
//
// The engine takes a loosely-typed table (header row plus body rows as
// returned by the Sheets API), locates the semantic columns it needs,
// normalizes cell values into canonical amounts and calendar dates, and
// produces KPI summaries and chronologically ordered daily series.
//
// # Core Components
//
//   - normalize.go: cell-level amount and date normalization
//   - columns.go: header-to-role resolution with whitespace/case folding
//   - window.go: inclusive calendar-date windows used to filter rows
//   - aggregate.go: single-pass summary and per-day series aggregation
//   - project.go: lossy CSV projection of raw rows for display and prompts
//
// All operations are pure and request-scoped: the engine performs no I/O,
// holds no state between calls, and is safe for concurrent use. Malformed
// input never raises beyond column resolution; a row with an unparseable
// date is dropped and a row with an unparseable amount contributes zero.
package metrics
