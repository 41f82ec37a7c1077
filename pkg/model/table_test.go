package model

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func reservation(number int64, start time.Time) *Reservation {
	return &Reservation{
		Number: number,
		Start:  start,
		End:    start.Add(2 * time.Hour),
		Status: StatusConfirmed,
	}
}

func TestTable_FreeLocked(t *testing.T) {
	table := NewTable(1, 1, 4)
	table.Lock()
	table.InsertLocked(reservation(1, at(12, 0)))
	table.InsertLocked(reservation(2, at(18, 0)))
	table.Unlock()

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"before everything", at(9, 0), at(11, 0), true},
		{"ends when first starts", at(10, 0), at(12, 0), true},
		{"starts when first ends", at(14, 0), at(16, 0), true},
		{"overlaps first tail", at(13, 30), at(15, 30), false},
		{"overlaps second head", at(16, 30), at(18, 30), false},
		{"contained in first", at(12, 30), at(13, 0), false},
		{"contains second", at(17, 0), at(21, 0), false},
		{"after everything", at(20, 0), at(22, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.IsFree(tt.start, tt.end); got != tt.want {
				t.Errorf("IsFree(%s, %s) = %v, want %v", tt.start.Format("15:04"), tt.end.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestTable_InsertKeepsOrder(t *testing.T) {
	table := NewTable(1, 1, 4)
	table.Lock()
	table.InsertLocked(reservation(3, at(18, 0)))
	table.InsertLocked(reservation(1, at(9, 0)))
	table.InsertLocked(reservation(2, at(12, 0)))
	table.Unlock()

	got := table.ReservationsOn(at(0, 0))
	if len(got) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(got))
	}
	for i, want := range []int64{1, 2, 3} {
		if got[i].Number != want {
			t.Errorf("position %d: expected reservation %d, got %d", i, want, got[i].Number)
		}
	}
}

func TestTable_RemoveLocked(t *testing.T) {
	table := NewTable(1, 1, 4)
	table.Lock()
	table.InsertLocked(reservation(1, at(12, 0)))
	removed := table.RemoveLocked(1)
	missing := table.RemoveLocked(99)
	table.Unlock()

	if !removed {
		t.Errorf("expected reservation 1 to be removed")
	}
	if missing {
		t.Errorf("removing an unknown number should report false")
	}
	if !table.IsFree(at(12, 0), at(14, 0)) {
		t.Errorf("slot should be free after removal")
	}
}

func TestTable_IsReserved(t *testing.T) {
	table := NewTable(1, 1, 4)
	table.Lock()
	table.InsertLocked(reservation(1, at(12, 0)))
	table.Unlock()

	if !table.IsReserved(at(12, 0)) {
		t.Errorf("start instant should be reserved")
	}
	if !table.IsReserved(at(13, 59)) {
		t.Errorf("instant inside the reservation should be reserved")
	}
	if table.IsReserved(at(14, 0)) {
		t.Errorf("end instant is exclusive")
	}
	if table.IsReserved(at(11, 59)) {
		t.Errorf("instant before the reservation should be free")
	}
}

func TestTable_ReservationsOnFiltersByDate(t *testing.T) {
	table := NewTable(1, 1, 4)
	table.Lock()
	table.InsertLocked(reservation(1, at(12, 0)))
	table.InsertLocked(reservation(2, at(12, 0).AddDate(0, 0, 1)))
	table.Unlock()

	got := table.ReservationsOn(at(0, 0).AddDate(0, 0, 1))
	if len(got) != 1 || got[0].Number != 2 {
		t.Fatalf("expected only reservation 2 on the next day, got %+v", got)
	}
}

func TestTable_HasActiveAfter(t *testing.T) {
	table := NewTable(1, 1, 4)
	if table.HasActiveAfter(at(0, 0)) {
		t.Errorf("empty table has no active reservations")
	}

	table.Lock()
	table.InsertLocked(reservation(1, at(12, 0)))
	table.Unlock()

	if !table.HasActiveAfter(at(13, 0)) {
		t.Errorf("reservation ending at 14:00 is active at 13:00")
	}
	if table.HasActiveAfter(at(14, 0)) {
		t.Errorf("reservation ending at 14:00 is over at 14:00")
	}
}
