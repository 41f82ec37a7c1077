// Package availability computes candidate start times and interval conflicts.
package availability

import (
	"time"

	"mizdooni/pkg/model"
)

// Policy is shared by slot generation and conflict checking so both agree on the
// length of a reservation.
type Policy struct {
	ServiceDuration time.Duration
	SlotStep        time.Duration
}

// Window returns the half-open interval a reservation starting at start occupies.
func (p Policy) Window(start time.Time) Interval {
	return Interval{Start: start, End: start.Add(p.ServiceDuration)}
}

// StartTimes returns every candidate start from opening up to closing minus the service
// duration inclusive, spaced by the slot step. The result is empty when the restaurant is
// open for less than one service duration.
func StartTimes(opening, closing model.TimeOfDay, p Policy) []model.TimeOfDay {
	if p.ServiceDuration <= 0 || p.SlotStep <= 0 {
		return nil
	}
	last := closing.Add(-p.ServiceDuration)

	slots := make([]model.TimeOfDay, 0)
	for t := opening; t <= last; t = t.Add(p.SlotStep) {
		slots = append(slots, t)
	}
	return slots
}
