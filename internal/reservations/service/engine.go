package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"mizdooni/internal/availability"
	reservationerrors "mizdooni/internal/reservations/errors"
	"mizdooni/internal/reservations/events"
	"mizdooni/internal/reservations/repository"
	restauranterrors "mizdooni/internal/restaurants/errors"
	restaurantrepo "mizdooni/internal/restaurants/repository"
	"mizdooni/pkg/config"
	apperrors "mizdooni/pkg/errors"
	"mizdooni/pkg/model"
	"mizdooni/pkg/sanitizer"
	"mizdooni/pkg/sequence"
)

type ReserveRequest struct {
	UserID       string
	RestaurantID int64
	People       int
	Start        time.Time
}

type BookingEngine interface {
	AvailableTimes(ctx context.Context, restaurantID int64, people int, date time.Time) ([]model.TimeOfDay, error)
	ReserveTable(ctx context.Context, req ReserveRequest) (*model.Reservation, error)
	CancelReservation(ctx context.Context, number int64) (*model.Reservation, error)

	Reservations(ctx context.Context, restaurantID int64, tableNumber int, date time.Time) ([]model.Reservation, error)
	CustomerReservations(ctx context.Context, userID string) ([]model.Reservation, error)
	GetReservation(ctx context.Context, number int64) (*model.Reservation, error)
	HasReserved(ctx context.Context, userID string, restaurantID int64) (bool, error)

	Restore(ctx context.Context) error
}

type Option func(*bookingEngine)

// WithClock replaces the wall clock used for past-time checks and cancellation stamps.
func WithClock(now func() time.Time) Option {
	return func(e *bookingEngine) {
		e.now = now
	}
}

type bookingEngine struct {
	registry  *restaurantrepo.Registry
	ledger    *repository.Ledger
	store     repository.Store
	publisher events.Publisher
	numbers   sequence.Generator
	policy    availability.Policy
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingEngine(
	registry *restaurantrepo.Registry,
	ledger *repository.Ledger,
	store repository.Store,
	publisher events.Publisher,
	numbers sequence.Generator,
	cfg *config.Config,
	opts ...Option,
) BookingEngine {
	e := &bookingEngine{
		registry:  registry,
		ledger:    ledger,
		store:     store,
		publisher: publisher,
		numbers:   numbers,
		policy: availability.Policy{
			ServiceDuration: cfg.ServiceDuration,
			SlotStep:        cfg.SlotStep,
		},
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *bookingEngine) location() *time.Location {
	if e.cfg.Location != nil {
		return e.cfg.Location
	}
	return time.UTC
}

// AvailableTimes lists the start times on date at which at least one table seating people is free.
// Only the calendar date is checked against today; earlier slots of today are still listed.
func (e *bookingEngine) AvailableTimes(ctx context.Context, restaurantID int64, people int, date time.Time) ([]model.TimeOfDay, error) {
	if people < 1 {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrBadPeopleNumber, "Number of people must be at least 1")
	}

	loc := e.location()
	day := midnight(date.In(loc))
	if day.Before(midnight(e.now().In(loc))) {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrDateInPast, "Date is in the past")
	}

	var slots []model.TimeOfDay
	err := e.registry.Read(restaurantID, func(r *model.Restaurant) error {
		tables := restaurantrepo.TablesFitting(r, people)
		slots = make([]model.TimeOfDay, 0)
		if len(tables) == 0 {
			return nil
		}

		for _, candidate := range availability.StartTimes(r.Opening, r.Closing, e.policy) {
			window := e.policy.Window(candidate.On(day))
			for _, t := range tables {
				if t.IsFree(window.Start, window.End) {
					slots = append(slots, candidate)
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, e.mapRegistryError(err, restaurantID, 0)
	}
	return slots, nil
}

// ReserveTable books the smallest free table that seats the party. The store write happens
// while the chosen table is locked, so a failed write leaves no trace in memory.
func (e *bookingEngine) ReserveTable(ctx context.Context, req ReserveRequest) (*model.Reservation, error) {
	userID := sanitizer.NormalizeUserID(req.UserID)
	if userID == "" {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrMissingUser, "User id is required")
	}
	if req.People < 1 {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrBadPeopleNumber, "Number of people must be at least 1")
	}

	now := e.now()
	start := req.Start.In(e.location())
	if start.Before(now) {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrDateTimeInPast, "Reservation time is in the past")
	}
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrInvalidWorkingTime, "Reservation time must be a whole minute")
	}
	window := e.policy.Window(start)

	var reservation model.Reservation
	err := e.registry.Read(req.RestaurantID, func(r *model.Restaurant) error {
		if !r.Accepts(model.TimeOfDayOf(start), e.policy.ServiceDuration) {
			return apperrors.WrapInvalidInput(reservationerrors.ErrInvalidWorkingTime,
				fmt.Sprintf("Reservations must start between %s and %s", r.Opening, r.LastStart(e.policy.ServiceDuration)))
		}

		candidates := restaurantrepo.TablesFitting(r, req.People)
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Seats != candidates[j].Seats {
				return candidates[i].Seats < candidates[j].Seats
			}
			return candidates[i].Number < candidates[j].Number
		})

		for _, t := range candidates {
			booked, err := e.tryBook(ctx, t, userID, req.People, window, now)
			if err != nil {
				return err
			}
			if booked != nil {
				reservation = *booked
				return nil
			}
		}
		return apperrors.NoAvailability(reservationerrors.ErrNoTableAvailable, "No table is available for the requested time")
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			e.cfg.Log.Warn("Reservation rejected",
				"user_id", userID,
				"restaurant_id", req.RestaurantID,
				"people", req.People,
				"start", start,
				"error", err,
			)
			return nil, err
		}
		return nil, e.mapRegistryError(err, req.RestaurantID, 0)
	}

	e.cfg.Log.Info("Reservation created",
		"reservation_number", reservation.Number,
		"user_id", reservation.UserID,
		"restaurant_id", reservation.RestaurantID,
		"table_number", reservation.TableNumber,
		"start", reservation.Start,
	)
	e.announce(ctx, reservation, e.publisher.ReservationCreated)
	return &reservation, nil
}

// tryBook returns nil without error when t is taken for the window.
func (e *bookingEngine) tryBook(ctx context.Context, t *model.Table, userID string, people int, window availability.Interval, now time.Time) (*model.Reservation, error) {
	t.Lock()
	defer t.Unlock()

	if !t.FreeLocked(window.Start, window.End) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeTimeout, "Request ended before the reservation was committed", http.StatusGatewayTimeout)
	}

	r := &model.Reservation{
		Number:       e.numbers.Next(),
		UserID:       userID,
		RestaurantID: t.RestaurantID,
		TableNumber:  t.Number,
		People:       people,
		Start:        window.Start,
		End:          window.End,
		Status:       model.StatusConfirmed,
		CreatedAt:    now.UTC(),
	}
	if err := e.store.Insert(ctx, r); err != nil {
		e.cfg.Log.Error("Failed to persist reservation",
			"reservation_number", r.Number,
			"restaurant_id", r.RestaurantID,
			"table_number", r.TableNumber,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to persist reservation", err)
	}

	t.InsertLocked(r)
	e.ledger.Add(r)
	cp := *r
	return &cp, nil
}

func (e *bookingEngine) CancelReservation(ctx context.Context, number int64) (*model.Reservation, error) {
	current, ok := e.ledger.Get(number)
	if !ok || current.IsCancelled() {
		return nil, notFound(number)
	}

	t, err := e.registry.FindTable(current.RestaurantID, current.TableNumber)
	if err != nil {
		e.cfg.Log.Error("Reservation points at a missing table",
			"reservation_number", number,
			"restaurant_id", current.RestaurantID,
			"table_number", current.TableNumber,
		)
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}

	cancelled, err := e.cancelOn(ctx, t, number)
	if err != nil {
		return nil, err
	}

	e.cfg.Log.Info("Reservation cancelled",
		"reservation_number", number,
		"user_id", cancelled.UserID,
		"restaurant_id", cancelled.RestaurantID,
	)
	e.announce(ctx, cancelled, e.publisher.ReservationCancelled)
	return &cancelled, nil
}

func (e *bookingEngine) cancelOn(ctx context.Context, t *model.Table, number int64) (model.Reservation, error) {
	t.Lock()
	defer t.Unlock()

	// A concurrent cancel may have won while the table lock was contended.
	if current, ok := e.ledger.Get(number); !ok || current.IsCancelled() {
		return model.Reservation{}, notFound(number)
	}
	if err := ctx.Err(); err != nil {
		return model.Reservation{}, apperrors.Wrap(err, apperrors.CodeTimeout, "Request ended before the cancellation was committed", http.StatusGatewayTimeout)
	}

	at := e.now().UTC()
	if err := e.store.MarkCancelled(ctx, number, at); err != nil {
		if errors.Is(err, reservationerrors.ErrReservationNotFound) {
			return model.Reservation{}, notFound(number)
		}
		e.cfg.Log.Error("Failed to persist cancellation",
			"reservation_number", number,
			"error", err,
		)
		return model.Reservation{}, apperrors.Internal("Failed to cancel reservation", err)
	}

	cancelled, _ := e.ledger.Cancel(number, at)
	t.RemoveLocked(number)
	return cancelled, nil
}

func (e *bookingEngine) Reservations(ctx context.Context, restaurantID int64, tableNumber int, date time.Time) ([]model.Reservation, error) {
	t, err := e.registry.FindTable(restaurantID, tableNumber)
	if err != nil {
		return nil, e.mapRegistryError(err, restaurantID, tableNumber)
	}
	return t.ReservationsOn(midnight(date.In(e.location()))), nil
}

func (e *bookingEngine) CustomerReservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	userID = sanitizer.NormalizeUserID(userID)
	if userID == "" {
		return nil, apperrors.WrapInvalidInput(reservationerrors.ErrMissingUser, "User id is required")
	}
	return e.ledger.ByUser(userID), nil
}

// GetReservation also returns cancelled reservations so callers can see their status.
func (e *bookingEngine) GetReservation(ctx context.Context, number int64) (*model.Reservation, error) {
	r, ok := e.ledger.Get(number)
	if !ok {
		return nil, notFound(number)
	}
	return &r, nil
}

func (e *bookingEngine) HasReserved(ctx context.Context, userID string, restaurantID int64) (bool, error) {
	userID = sanitizer.NormalizeUserID(userID)
	if userID == "" {
		return false, apperrors.WrapInvalidInput(reservationerrors.ErrMissingUser, "User id is required")
	}
	if _, err := e.registry.Get(restaurantID); err != nil {
		return false, e.mapRegistryError(err, restaurantID, 0)
	}
	return e.ledger.HasReserved(userID, restaurantID, e.now()), nil
}

// Restore rebuilds the table indices and the ledger from the store and moves the number
// sequence past every stored reservation, cancelled ones included.
func (e *bookingEngine) Restore(ctx context.Context) error {
	maxNumber, err := e.store.MaxNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to read reservation sequence: %w", err)
	}
	e.numbers.Advance(maxNumber)

	stored, err := e.store.LoadConfirmed(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reservations: %w", err)
	}

	restored := 0
	for _, r := range stored {
		t, err := e.registry.FindTable(r.RestaurantID, r.TableNumber)
		if err != nil {
			e.cfg.Log.Warn("Skipping reservation for unknown table",
				"reservation_number", r.Number,
				"restaurant_id", r.RestaurantID,
				"table_number", r.TableNumber,
			)
			continue
		}
		if e.restoreOn(t, r) {
			restored++
		}
	}

	e.cfg.Log.Info("Reservations restored",
		"restored", restored,
		"skipped", len(stored)-restored,
		"next_number", e.numbers.Current()+1,
	)
	return nil
}

func (e *bookingEngine) restoreOn(t *model.Table, r *model.Reservation) bool {
	t.Lock()
	defer t.Unlock()

	if !t.FreeLocked(r.Start, r.End) {
		e.cfg.Log.Warn("Skipping overlapping stored reservation",
			"reservation_number", r.Number,
			"restaurant_id", r.RestaurantID,
			"table_number", r.TableNumber,
		)
		return false
	}
	t.InsertLocked(r)
	e.ledger.Add(r)
	return true
}

// announce publishes after the commit. Delivery is best effort and never fails the request.
func (e *bookingEngine) announce(ctx context.Context, r model.Reservation, publish func(context.Context, model.Reservation) error) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.WriteTimeout)
	defer cancel()

	if err := publish(pubCtx, r); err != nil {
		e.cfg.Log.Warn("Failed to publish reservation event",
			"reservation_number", r.Number,
			"status", r.Status,
			"error", err,
		)
	}
}

func (e *bookingEngine) mapRegistryError(err error, restaurantID int64, tableNumber int) error {
	switch {
	case errors.Is(err, restauranterrors.ErrRestaurantNotFound):
		return apperrors.WrapNotFound(err, "Restaurant", strconv.FormatInt(restaurantID, 10))
	case errors.Is(err, restauranterrors.ErrTableNotFound):
		return apperrors.WrapNotFound(err, "Table", strconv.Itoa(tableNumber))
	default:
		e.cfg.Log.Error("Reservation operation failed",
			"restaurant_id", restaurantID,
			"error", err,
		)
		return apperrors.Internal("Failed to process reservation request", err)
	}
}

func notFound(number int64) error {
	return apperrors.WrapNotFound(reservationerrors.ErrReservationNotFound, "Reservation", strconv.FormatInt(number, 10))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
