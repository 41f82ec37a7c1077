package errors

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrTableNotFound = errors.New("table not found")

	ErrInvalidHours = errors.New("opening time must be before closing time")

	// ErrHoursLocked is returned when operating hours change while reservations are still active.
	ErrHoursLocked = errors.New("operating hours cannot change while reservations are active")
)
