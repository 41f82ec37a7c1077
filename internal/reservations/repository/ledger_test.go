package repository

import (
	"testing"
	"time"

	"mizdooni/pkg/model"
)

func reservation(number int64, user string, restaurantID int64, start time.Time) *model.Reservation {
	return &model.Reservation{
		Number:       number,
		UserID:       user,
		RestaurantID: restaurantID,
		TableNumber:  1,
		People:       2,
		Start:        start,
		End:          start.Add(2 * time.Hour),
		Status:       model.StatusConfirmed,
	}
}

func TestLedger_ByUserKeepsInsertionOrder(t *testing.T) {
	l := NewLedger()
	base := time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)

	l.Add(reservation(1, "ali", 1, base.Add(6*time.Hour)))
	l.Add(reservation(2, "sara", 1, base))
	l.Add(reservation(3, "ali", 2, base))

	got := l.ByUser("ali")
	if len(got) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 3 {
		t.Errorf("expected insertion order [1 3], got [%d %d]", got[0].Number, got[1].Number)
	}

	if got := l.ByUser("nobody"); got == nil || len(got) != 0 {
		t.Errorf("expected an empty non-nil slice for an unknown user, got %v", got)
	}
}

func TestLedger_Cancel(t *testing.T) {
	l := NewLedger()
	start := time.Date(2030, time.May, 1, 19, 0, 0, 0, time.UTC)
	l.Add(reservation(1, "ali", 1, start))
	l.Add(reservation(2, "ali", 1, start.Add(24*time.Hour)))

	cancelledAt := start.Add(-time.Hour)
	r, ok := l.Cancel(1, cancelledAt)
	if !ok {
		t.Fatal("expected cancel to succeed")
	}
	if !r.IsCancelled() || r.CancelledAt == nil || !r.CancelledAt.Equal(cancelledAt) {
		t.Errorf("unexpected cancelled reservation: %+v", r)
	}

	if _, ok := l.Cancel(1, cancelledAt); ok {
		t.Error("second cancel should fail")
	}
	if _, ok := l.Cancel(99, cancelledAt); ok {
		t.Error("cancel of an unknown number should fail")
	}

	mine := l.ByUser("ali")
	if len(mine) != 1 || mine[0].Number != 2 {
		t.Errorf("cancelled reservation should leave the customer list, got %+v", mine)
	}

	got, ok := l.Get(1)
	if !ok || !got.IsCancelled() {
		t.Errorf("cancelled reservation should stay retrievable by number")
	}
	if l.Len() != 2 {
		t.Errorf("expected Len 2, got %d", l.Len())
	}
}

func TestLedger_GetReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Add(reservation(1, "ali", 1, time.Date(2030, time.May, 1, 19, 0, 0, 0, time.UTC)))

	got, _ := l.Get(1)
	got.Status = model.StatusCancelled

	again, _ := l.Get(1)
	if again.IsCancelled() {
		t.Error("mutating a returned copy must not touch the ledger")
	}
}

func TestLedger_HasReserved(t *testing.T) {
	l := NewLedger()
	start := time.Date(2030, time.May, 1, 19, 0, 0, 0, time.UTC)
	l.Add(reservation(1, "ali", 1, start))
	l.Add(reservation(2, "sara", 1, start))
	l.Cancel(2, start.Add(-time.Hour))

	tests := []struct {
		name         string
		user         string
		restaurantID int64
		now          time.Time
		want         bool
	}{
		{"before start", "ali", 1, start.Add(-time.Minute), false},
		{"at start", "ali", 1, start, true},
		{"after end", "ali", 1, start.Add(5 * time.Hour), true},
		{"other restaurant", "ali", 2, start.Add(time.Hour), false},
		{"cancelled", "sara", 1, start.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.HasReserved(tt.user, tt.restaurantID, tt.now); got != tt.want {
				t.Errorf("HasReserved() = %v, want %v", got, tt.want)
			}
		})
	}
}
