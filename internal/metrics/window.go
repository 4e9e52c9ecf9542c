package metrics

import "time"

const (
	// DefaultWindowStart is the open lower bound.
	DefaultWindowStart = "1970-01-01"
	// DefaultWindowEnd is the open upper bound.
	DefaultWindowEnd = "2999-12-31"
)

// Window is an inclusive [Start, End] calendar-date interval, both
// bounds in canonical YYYY-MM-DD form. Comparison happens at day
// granularity on the canonical strings, so no clock arithmetic is
// involved once the bounds are normalized.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultWindow returns the effectively unbounded window.
func DefaultWindow() Window {
	return Window{Start: DefaultWindowStart, End: DefaultWindowEnd}
}

// ParseWindow builds a window from caller-supplied bound strings. Each
// bound is normalized with the same parser used for row dates; a bound
// that is empty or unparseable degrades to the corresponding default
// rather than failing.
func ParseWindow(from, to string, loc *time.Location) Window {
	w := DefaultWindow()
	if d, ok := NormalizeDate(from, loc); ok {
		w.Start = d
	}
	if d, ok := NormalizeDate(to, loc); ok {
		w.End = d
	}
	return w
}

// Contains reports whether the canonical date lies inside the window.
// Lexical comparison on YYYY-MM-DD is equivalent to chronological
// comparison.
func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}
