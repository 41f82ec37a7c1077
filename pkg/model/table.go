package model

import (
	"sort"
	"sync"
	"time"
)

// Table owns the index of its confirmed reservations, kept sorted by start.
// Writers take the exclusive lock across check and insert; readers copy under the shared lock.
type Table struct {
	Number       int   `json:"table_number"`
	RestaurantID int64 `json:"restaurant_id"`
	Seats        int   `json:"seats_number"`

	mu    sync.RWMutex
	index []*Reservation
}

func NewTable(restaurantID int64, number, seats int) *Table {
	return &Table{
		Number:       number,
		RestaurantID: restaurantID,
		Seats:        seats,
	}
}

func (t *Table) Lock()    { t.mu.Lock() }
func (t *Table) Unlock()  { t.mu.Unlock() }
func (t *Table) RLock()   { t.mu.RLock() }
func (t *Table) RUnlock() { t.mu.RUnlock() }

// FreeLocked reports whether no indexed reservation overlaps [start, end).
// The caller must hold the lock.
func (t *Table) FreeLocked(start, end time.Time) bool {
	// Entries never overlap each other, so sorting by start also sorts by end and
	// only the last entry starting before end can reach past start.
	i := sort.Search(len(t.index), func(i int) bool {
		return !t.index[i].Start.Before(end)
	})
	if i == 0 {
		return true
	}
	return !t.index[i-1].End.After(start)
}

// InsertLocked adds r at its sorted position. The caller must hold the exclusive lock
// and have checked FreeLocked.
func (t *Table) InsertLocked(r *Reservation) {
	i := sort.Search(len(t.index), func(i int) bool {
		return t.index[i].Start.After(r.Start)
	})
	t.index = append(t.index, nil)
	copy(t.index[i+1:], t.index[i:])
	t.index[i] = r
}

// RemoveLocked drops the reservation with the given number. The caller must hold the exclusive lock.
func (t *Table) RemoveLocked(number int64) bool {
	for i, r := range t.index {
		if r.Number == number {
			t.index = append(t.index[:i], t.index[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Table) IsFree(start, end time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.FreeLocked(start, end)
}

// IsReserved reports whether a confirmed reservation covers the instant at.
func (t *Table) IsReserved(at time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := sort.Search(len(t.index), func(i int) bool {
		return t.index[i].Start.After(at)
	})
	return i > 0 && t.index[i-1].Covers(at)
}

// ReservationsOn returns copies of the reservations starting on day's calendar date, ascending.
func (t *Table) ReservationsOn(day time.Time) []Reservation {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Reservation, 0)
	for _, r := range t.index {
		if r.OnDate(day) {
			out = append(out, *r)
		}
	}
	return out
}

// HasActiveAfter reports whether any reservation ends after now.
func (t *Table) HasActiveAfter(now time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.index) == 0 {
		return false
	}
	return t.index[len(t.index)-1].End.After(now)
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.index)
}
