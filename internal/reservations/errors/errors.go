package errors

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")

	ErrNoTableAvailable = errors.New("no table available")

	ErrDateTimeInPast = errors.New("reservation time is in the past")

	ErrDateInPast = errors.New("date is in the past")

	// ErrInvalidWorkingTime is returned when a reservation would start outside the bookable window.
	ErrInvalidWorkingTime = errors.New("reservation time is outside working hours")

	ErrBadPeopleNumber = errors.New("people number must be at least 1")

	ErrMissingUser = errors.New("user id is required")
)
