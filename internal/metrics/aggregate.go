package metrics

import (
	"sort"
	"time"
)

// cellAt returns the cell at index i, or nil when the row is too short.
// Short rows are routine in spreadsheet data, never an error.
func cellAt(row []any, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

// acceptRow applies the shared row-acceptance predicate: the timestamp
// cell must normalize to a calendar date inside the window. Summarize
// and BuildTimeSeries use the same predicate so their underlying row
// sets are identical.
func acceptRow(row []any, cols ColumnMap, w Window, loc *time.Location) (string, bool) {
	date, ok := NormalizeDate(cellAt(row, cols[RoleTimestamp]), loc)
	if !ok {
		return "", false
	}
	if !w.Contains(date) {
		return "", false
	}
	return date, true
}

// Summarize folds the body rows into scalar KPIs. Rows whose date fails
// to normalize or falls outside the window are dropped; rows whose
// amount fails to normalize contribute zero but still count as orders.
// The fold is a single left-to-right pass so floating-point results are
// reproducible regardless of how the caller assembled the table.
func Summarize(table Table, cols ColumnMap, w Window, loc *time.Location) Summary {
	var total float64
	var orders int

	for _, row := range table.Body() {
		if _, ok := acceptRow(row, cols, w, loc); !ok {
			continue
		}
		total += NormalizeAmount(cellAt(row, cols[RolePrice]))
		orders++
	}

	avg := 0.0
	if orders > 0 {
		avg = total / float64(orders)
	}

	return Summary{
		TotalAmount:       total,
		OrderCount:        orders,
		AverageOrderValue: avg,
		WindowStart:       w.Start,
		WindowEnd:         w.End,
	}
}

// BuildTimeSeries groups accepted rows by calendar date and sums their
// amounts, emitting points in ascending date order with no duplicate
// dates. Dates with no accepted rows do not appear; there is no
// interpolation. Auxiliary space is bounded by the number of unique
// dates, not the row count.
func BuildTimeSeries(table Table, cols ColumnMap, w Window, loc *time.Location) []SeriesPoint {
	byDate := make(map[string]float64)

	for _, row := range table.Body() {
		date, ok := acceptRow(row, cols, w, loc)
		if !ok {
			continue
		}
		byDate[date] += NormalizeAmount(cellAt(row, cols[RolePrice]))
	}

	points := make([]SeriesPoint, 0, len(byDate))
	for date, value := range byDate {
		points = append(points, SeriesPoint{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}
