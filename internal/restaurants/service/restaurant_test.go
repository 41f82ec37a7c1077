package service

import (
	"context"
	"errors"
	"testing"
	"time"

	restauranterrors "mizdooni/internal/restaurants/errors"
	"mizdooni/internal/restaurants/repository"
	"mizdooni/internal/restaurants/validator"
	"mizdooni/pkg/config"
	apperrors "mizdooni/pkg/errors"
	"mizdooni/pkg/model"
	"mizdooni/pkg/sequence"
)

// ────────────────────────────────────────────────
// Mock store for testing
// ────────────────────────────────────────────────

type mockStore struct {
	saveRestaurantFunc func(ctx context.Context, r *model.Restaurant) error
	saveTableFunc      func(ctx context.Context, t *model.Table) error
	loadAllFunc        func(ctx context.Context) ([]*model.Restaurant, error)
}

func (m *mockStore) SaveRestaurant(ctx context.Context, r *model.Restaurant) error {
	if m.saveRestaurantFunc != nil {
		return m.saveRestaurantFunc(ctx, r)
	}
	return nil
}

func (m *mockStore) SaveTable(ctx context.Context, t *model.Table) error {
	if m.saveTableFunc != nil {
		return m.saveTableFunc(ctx, t)
	}
	return nil
}

func (m *mockStore) LoadAll(ctx context.Context) ([]*model.Restaurant, error) {
	if m.loadAllFunc != nil {
		return m.loadAllFunc(ctx)
	}
	return nil, nil
}

func newTestService(store repository.Store) (*restaurantService, *repository.Registry) {
	registry := repository.NewRegistry()
	svc := NewRestaurantService(registry, store, sequence.NewAtomic(1), validator.NewRestaurantValidator(), config.Default(nil))
	return svc.(*restaurantService), registry
}

func register(t *testing.T, svc RestaurantService) *model.Restaurant {
	t.Helper()
	r, err := svc.Register(context.Background(), &model.RestaurantCreate{
		Name:    "  Shandiz   Grill ",
		Opening: "09:00",
		Closing: "22:00",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return r
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestRegister_NormalizesAndAssignsIDs(t *testing.T) {
	svc, _ := newTestService(&mockStore{})

	first := register(t, svc)
	second := register(t, svc)

	if first.Name != "Shandiz Grill" {
		t.Errorf("expected normalized name, got %q", first.Name)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.Opening.String() != "09:00" || first.Closing.String() != "22:00" {
		t.Errorf("unexpected hours %s-%s", first.Opening, first.Closing)
	}
}

func TestRegister_InvalidHours(t *testing.T) {
	svc, _ := newTestService(&mockStore{})

	_, err := svc.Register(context.Background(), &model.RestaurantCreate{
		Name:    "Late Night",
		Opening: "22:00",
		Closing: "09:00",
	})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(svc.registry.List()) != 0 {
		t.Errorf("a rejected restaurant must not be registered")
	}
}

func TestRegister_StoreFailureLeavesRegistryUntouched(t *testing.T) {
	svc, registry := newTestService(&mockStore{
		saveRestaurantFunc: func(ctx context.Context, r *model.Restaurant) error {
			return errors.New("connection refused")
		},
	})

	_, err := svc.Register(context.Background(), &model.RestaurantCreate{Name: "Shandiz", Opening: "09:00", Closing: "22:00"})
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Fatalf("expected an internal error, got %v", err)
	}
	if len(registry.List()) != 0 {
		t.Errorf("registry should be empty after a failed write")
	}
}

func TestAddTable_SequentialNumbers(t *testing.T) {
	svc, _ := newTestService(&mockStore{})
	r := register(t, svc)
	ctx := context.Background()

	for i, seats := range []int{4, 10, 6} {
		table, err := svc.AddTable(ctx, r.ID, seats)
		if err != nil {
			t.Fatalf("AddTable failed: %v", err)
		}
		if table.Number != i+1 {
			t.Errorf("expected table number %d, got %d", i+1, table.Number)
		}
	}

	maxSeats, err := svc.MaxSeats(ctx, r.ID)
	if err != nil {
		t.Fatalf("MaxSeats failed: %v", err)
	}
	if maxSeats != 10 {
		t.Errorf("expected max seats 10, got %d", maxSeats)
	}

	fitting, err := svc.TablesOfCapacityAtLeast(ctx, r.ID, 5)
	if err != nil {
		t.Fatalf("TablesOfCapacityAtLeast failed: %v", err)
	}
	if len(fitting) != 2 {
		t.Errorf("expected 2 tables with at least 5 seats, got %d", len(fitting))
	}
}

func TestAddTable_Failures(t *testing.T) {
	svc, _ := newTestService(&mockStore{})
	r := register(t, svc)
	ctx := context.Background()

	if _, err := svc.AddTable(ctx, 999, 4); !errors.Is(err, restauranterrors.ErrRestaurantNotFound) {
		t.Errorf("expected ErrRestaurantNotFound, got %v", err)
	}
	if _, err := svc.AddTable(ctx, r.ID, 0); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("expected a validation error for zero seats, got %v", err)
	}
}

func TestAddTable_StoreFailureDoesNotConsumeNumber(t *testing.T) {
	fail := true
	svc, _ := newTestService(&mockStore{
		saveTableFunc: func(ctx context.Context, tbl *model.Table) error {
			if fail {
				return errors.New("write conflict")
			}
			return nil
		},
	})
	r := register(t, svc)

	if _, err := svc.AddTable(context.Background(), r.ID, 4); err == nil {
		t.Fatalf("expected the store failure to surface")
	}
	fail = false
	table, err := svc.AddTable(context.Background(), r.ID, 4)
	if err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}
	if table.Number != 1 {
		t.Errorf("expected table number 1 after a failed attempt, got %d", table.Number)
	}
}

func TestFindTable(t *testing.T) {
	svc, _ := newTestService(&mockStore{})
	r := register(t, svc)
	ctx := context.Background()
	if _, err := svc.AddTable(ctx, r.ID, 2); err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}

	table, err := svc.FindTable(ctx, r.ID, 1)
	if err != nil || table.Seats != 2 {
		t.Fatalf("expected table 1 with 2 seats, got %+v (%v)", table, err)
	}

	_, err = svc.FindTable(ctx, r.ID, 7)
	if !errors.Is(err, restauranterrors.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND code, got %v", err)
	}
}

func TestUpdateHours_BlockedByActiveReservation(t *testing.T) {
	svc, _ := newTestService(&mockStore{})
	now := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	r := register(t, svc)
	ctx := context.Background()
	table, err := svc.AddTable(ctx, r.ID, 4)
	if err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}

	start := now.Add(3 * time.Hour)
	table.Lock()
	table.InsertLocked(&model.Reservation{Number: 1, Start: start, End: start.Add(2 * time.Hour), Status: model.StatusConfirmed})
	table.Unlock()

	_, err = svc.UpdateHours(ctx, r.ID, &model.HoursUpdate{Opening: "10:00", Closing: "20:00"})
	if !errors.Is(err, restauranterrors.ErrHoursLocked) {
		t.Fatalf("expected ErrHoursLocked, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT code, got %v", err)
	}

	got, _ := svc.Get(ctx, r.ID)
	if got.Opening.String() != "09:00" {
		t.Errorf("hours must not change on rejection, got opening %s", got.Opening)
	}

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	updated, err := svc.UpdateHours(ctx, r.ID, &model.HoursUpdate{Opening: "10:00", Closing: "20:00"})
	if err != nil {
		t.Fatalf("expected update to succeed once the reservation has ended, got %v", err)
	}
	if updated.Opening.String() != "10:00" || updated.Closing.String() != "20:00" {
		t.Errorf("unexpected hours %s-%s", updated.Opening, updated.Closing)
	}
}

func TestRestore_AdvancesIDs(t *testing.T) {
	stored := []*model.Restaurant{
		{ID: 7, Name: "Stored", Opening: model.MustTimeOfDay("12:00"), Closing: model.MustTimeOfDay("23:00"),
			Tables: []*model.Table{model.NewTable(7, 1, 4)}, MaxSeats: 4},
	}
	svc, _ := newTestService(&mockStore{
		loadAllFunc: func(ctx context.Context) ([]*model.Restaurant, error) { return stored, nil },
	})

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, err := svc.FindTable(context.Background(), 7, 1); err != nil {
		t.Errorf("restored table should be found: %v", err)
	}

	next := register(t, svc)
	if next.ID != 8 {
		t.Errorf("expected next id 8 after restore, got %d", next.ID)
	}
}
