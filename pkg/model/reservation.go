package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	Number       int64      `json:"reservation_number"`
	UserID       string     `json:"user_id"`
	RestaurantID int64      `json:"restaurant_id"`
	TableNumber  int        `json:"table_number"`
	People       int        `json:"people"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// Covers reports whether the instant at falls inside [Start, End).
func (r *Reservation) Covers(at time.Time) bool {
	return !at.Before(r.Start) && at.Before(r.End)
}

// OnDate reports whether the reservation starts on the calendar date of day, in day's location.
func (r *Reservation) OnDate(day time.Time) bool {
	y1, m1, d1 := r.Start.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ReservationRequest is the body of a reservation call. People is range-checked by the booking engine.
type ReservationRequest struct {
	People   int    `json:"people" validate:"lte=1000"`
	DateTime string `json:"datetime" validate:"required,datetime=2006-01-02 15:04"`
}
