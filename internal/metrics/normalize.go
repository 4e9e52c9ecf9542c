package metrics

import (
	"strconv"
	"strings"
	"time"
)

// CanonicalDateFormat is the calendar-date form all dates are reduced to.
// Lexical ordering on this form equals chronological ordering.
const CanonicalDateFormat = "2006-01-02"

// dateLayouts are tried in order when normalizing textual dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"2 January 2006",
}

// sheetsEpoch is day zero of the Sheets/Lotus serial date system.
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NormalizeAmount converts a raw cell into a numeric amount. Numeric
// cells pass through unchanged. Textual cells are reduced to digits,
// commas, periods and minus signs, then read with the European
// convention: periods are thousands separators and the comma is the
// decimal separator, so "1.234,56" becomes 1234.56. Anything that still
// fails to parse yields 0. The function never returns an error.
func NormalizeAmount(cell any) float64 {
	switch v := cell.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountText(v)
	default:
		return 0
	}
}

func parseAmountText(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// NormalizeDate reduces a raw cell to a canonical YYYY-MM-DD calendar
// date in the given location. Textual cells are tried against a fixed
// layout list; numeric cells are read as Sheets serial dates. The
// location defaults to UTC so results are reproducible across
// deployments. Returns ok=false when the cell cannot be read as a date;
// callers drop such rows.
func NormalizeDate(cell any, loc *time.Location) (string, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := cell.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				// Layouts carrying a zone parse in that offset; the
				// calendar date must come from loc.
				return t.In(loc).Format(CanonicalDateFormat), true
			}
		}
		return "", false
	case float64:
		return serialToDate(v)
	case int:
		return serialToDate(float64(v))
	case int64:
		return serialToDate(float64(v))
	default:
		return "", false
	}
}

// serialToDate converts a Sheets serial day number to a calendar date.
// Serial values are day counts since 1899-12-30; fractional parts carry
// the time of day and are irrelevant at day granularity.
func serialToDate(serial float64) (string, bool) {
	if serial <= 0 || serial > 500000 {
		return "", false
	}
	t := sheetsEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return t.Format(CanonicalDateFormat), true
}
