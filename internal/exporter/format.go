package exporter

import (
	"fmt"
)

// formatFloat formats a float64 value for report output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Values like 13.4 should appear as 13.40 in reports
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for report output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
