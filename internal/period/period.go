package period

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Window is the tracking period all dashboard statistics are computed over.
// Both bounds are inclusive, midnight UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Clock supplies "today" so the calculators can be driven with an arbitrary
// as-of date in tests.
type Clock func() time.Time

// Day truncates t to midnight UTC. All date arithmetic in the stats layer
// assumes this normalization.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Year returns the calendar-year window containing t.
func Year(t time.Time) Window {
	return Window{
		Start: time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Clamp pulls today inside the window. A date past the end is treated as the
// last tracked day; a date before the start stays before it, which the stats
// layer reports as zero elapsed days.
func (w Window) Clamp(today time.Time) time.Time {
	d := Day(today)
	if d.After(w.End) {
		return w.End
	}
	return d
}

// FromEnv builds the tracking window from TRACKING_START/TRACKING_END
// (YYYY-MM-DD), or TRACKING_YEAR, falling back to the current calendar year.
func FromEnv(now Clock) (Window, error) {
	startStr, endStr := os.Getenv("TRACKING_START"), os.Getenv("TRACKING_END")
	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return Window{}, fmt.Errorf("TRACKING_START and TRACKING_END must be set together")
		}
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return Window{}, fmt.Errorf("invalid TRACKING_START: %w", err)
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return Window{}, fmt.Errorf("invalid TRACKING_END: %w", err)
		}
		if end.Before(start) {
			return Window{}, fmt.Errorf("TRACKING_END is before TRACKING_START")
		}
		return Window{Start: Day(start), End: Day(end)}, nil
	}

	if yearStr := os.Getenv("TRACKING_YEAR"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return Window{}, fmt.Errorf("invalid TRACKING_YEAR: %w", err)
		}
		return Year(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)), nil
	}

	return Year(now()), nil
}
