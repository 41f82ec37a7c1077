package repository

import (
	"sync"
	"time"

	"mizdooni/pkg/model"
)

// Ledger indexes reservations by customer and by number. Per-table indices live on the tables.
// Callers that also hold a table lock must take it before the ledger lock.
type Ledger struct {
	mu       sync.RWMutex
	byUser   map[string][]*model.Reservation
	byNumber map[int64]*model.Reservation
}

func NewLedger() *Ledger {
	return &Ledger{
		byUser:   make(map[string][]*model.Reservation),
		byNumber: make(map[int64]*model.Reservation),
	}
}

// Add records r in both indices.
func (l *Ledger) Add(r *model.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.byNumber[r.Number] = r
	l.byUser[r.UserID] = append(l.byUser[r.UserID], r)
}

// Cancel marks the reservation cancelled and drops it from its customer's list.
func (l *Ledger) Cancel(number int64, at time.Time) (model.Reservation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.byNumber[number]
	if !ok || r.IsCancelled() {
		return model.Reservation{}, false
	}

	r.Status = model.StatusCancelled
	r.CancelledAt = &at

	list := l.byUser[r.UserID]
	for i, candidate := range list {
		if candidate.Number == number {
			l.byUser[r.UserID] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(l.byUser[r.UserID]) == 0 {
		delete(l.byUser, r.UserID)
	}
	return *r, true
}

func (l *Ledger) Get(number int64) (model.Reservation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.byNumber[number]
	if !ok {
		return model.Reservation{}, false
	}
	return *r, true
}

// ByUser returns copies of the customer's confirmed reservations in insertion order.
func (l *Ledger) ByUser(userID string) []model.Reservation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := l.byUser[userID]
	out := make([]model.Reservation, 0, len(list))
	for _, r := range list {
		out = append(out, *r)
	}
	return out
}

// HasReserved reports whether the customer holds a confirmed reservation at the restaurant
// that started at or before now.
func (l *Ledger) HasReserved(userID string, restaurantID int64, now time.Time) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.byUser[userID] {
		if r.RestaurantID == restaurantID && !r.Start.After(now) {
			return true
		}
	}
	return false
}

// Len counts every recorded reservation, cancelled ones included.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byNumber)
}
