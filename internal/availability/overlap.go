package availability

import "time"

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps treats both intervals as half-open, so touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapsAny reports whether [start, end) overlaps any of busy. busy need not be sorted.
func OverlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
