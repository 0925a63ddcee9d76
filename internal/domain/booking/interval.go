package booking

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	// MinutesPerDay bounds every interval; intervals never cross midnight.
	MinutesPerDay = 24 * 60

	// DateLayout is the wire format for calendar dates. All dates are local
	// wall-clock in the operating timezone, no UTC conversion.
	DateLayout = "2006-01-02"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// Interval is a half-open [Start, End) range in minutes of day.
type Interval struct {
	Start int
	End   int
}

// ToMinutes converts "HH:MM" wall-clock to a minute of day in [0, 1439].
// The hour must be zero-padded; time.Parse alone would accept "9:30".
func ToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeOfDay
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FromMinutes renders a minute of day as zero-padded "HH:MM".
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Expand widens an interval symmetrically by buffer minutes, clamped to the
// day. Used only on the query side of conflict checks; stored intervals are
// never mutated.
func Expand(start, end, buffer int) (int, int) {
	start -= buffer
	if start < 0 {
		start = 0
	}
	end += buffer
	if end > MinutesPerDay {
		end = MinutesPerDay
	}
	return start, end
}

// FreeWindows returns the ordered open sub-intervals of [open, close) that do
// not intersect any busy interval. Busy intervals may overlap each other and
// arrive unordered.
func FreeWindows(open, close int, busy []Interval) []Interval {
	if open >= close {
		return nil
	}

	sorted := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if b.End <= open || b.Start >= close {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	free := make([]Interval, 0, len(sorted)+1)
	cursor := open
	for _, b := range sorted {
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < close {
		free = append(free, Interval{Start: cursor, End: close})
	}
	return free
}
