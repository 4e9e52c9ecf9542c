package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultProjectionRows caps CSV projections when the caller does not
// supply a limit.
const DefaultProjectionRows = 200

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ProjectCSV renders the first maxRows raw rows as comma-joined lines.
// Cells pass through unmodified except that newlines inside string
// cells become single spaces, keeping one output line per input row.
// This is a display-oriented projection, not a CSV encoder: embedded
// commas are not quoted or escaped.
func ProjectCSV(rows [][]any, maxRows int) string {
	if maxRows <= 0 {
		maxRows = DefaultProjectionRows
	}
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = projectCell(cell)
		}
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\n")
}

func projectCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return newlineReplacer.Replace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
