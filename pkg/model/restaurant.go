package model

import "time"

type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Opening   TimeOfDay `json:"opening_time"`
	Closing   TimeOfDay `json:"closing_time"`
	Tables    []*Table  `json:"tables"`
	MaxSeats  int       `json:"max_seats"`
	CreatedAt time.Time `json:"created_at"`
}

// LastStart is the latest start time at which a reservation of duration d still ends by closing.
func (r *Restaurant) LastStart(d time.Duration) TimeOfDay {
	return r.Closing.Add(-d)
}

// Accepts reports whether a reservation of duration d starting at t fits the opening hours.
func (r *Restaurant) Accepts(t TimeOfDay, d time.Duration) bool {
	return t >= r.Opening && t <= r.LastStart(d)
}

type RestaurantCreate struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Opening string `json:"opening_time" validate:"required,time_of_day"`
	Closing string `json:"closing_time" validate:"required,time_of_day"`
}

type HoursUpdate struct {
	Opening string `json:"opening_time" validate:"required,time_of_day"`
	Closing string `json:"closing_time" validate:"required,time_of_day"`
}

type TableCreate struct {
	Seats int `json:"seats_number" validate:"required,min=1,max=100"`
}
