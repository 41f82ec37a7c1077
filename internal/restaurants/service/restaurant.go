package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	restauranterrors "mizdooni/internal/restaurants/errors"
	"mizdooni/internal/restaurants/repository"
	"mizdooni/internal/restaurants/validator"
	"mizdooni/pkg/config"
	apperrors "mizdooni/pkg/errors"
	"mizdooni/pkg/model"
	"mizdooni/pkg/sanitizer"
	"mizdooni/pkg/sequence"
)

type RestaurantService interface {
	Register(ctx context.Context, req *model.RestaurantCreate) (*model.Restaurant, error)
	Get(ctx context.Context, id int64) (*model.Restaurant, error)
	List(ctx context.Context) ([]*model.Restaurant, error)
	UpdateHours(ctx context.Context, id int64, req *model.HoursUpdate) (*model.Restaurant, error)

	AddTable(ctx context.Context, restaurantID int64, seats int) (*model.Table, error)
	FindTable(ctx context.Context, restaurantID int64, number int) (*model.Table, error)
	Tables(ctx context.Context, restaurantID int64) ([]*model.Table, error)
	TablesOfCapacityAtLeast(ctx context.Context, restaurantID int64, people int) ([]*model.Table, error)
	MaxSeats(ctx context.Context, restaurantID int64) (int, error)

	Restore(ctx context.Context) error
}

type restaurantService struct {
	registry  *repository.Registry
	store     repository.Store
	ids       sequence.Generator
	validator *validator.RestaurantValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewRestaurantService(
	registry *repository.Registry,
	store repository.Store,
	ids sequence.Generator,
	validator *validator.RestaurantValidator,
	cfg *config.Config,
) RestaurantService {
	return &restaurantService{
		registry:  registry,
		store:     store,
		ids:       ids,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *restaurantService) Register(ctx context.Context, req *model.RestaurantCreate) (*model.Restaurant, error) {
	req.Name = sanitizer.NormalizeName(req.Name)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Restaurant validation failed",
			"name", req.Name,
			"error", err,
		)
		return nil, validationError("Restaurant validation failed", err)
	}

	opening, _ := model.ParseTimeOfDay(req.Opening)
	closing, _ := model.ParseTimeOfDay(req.Closing)
	restaurant := &model.Restaurant{
		ID:        s.ids.Next(),
		Name:      req.Name,
		Opening:   opening,
		Closing:   closing,
		Tables:    []*model.Table{},
		CreatedAt: s.now().UTC(),
	}

	err := s.registry.Register(restaurant, func(r *model.Restaurant) error {
		return s.store.SaveRestaurant(ctx, r)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to register restaurant",
			"name", req.Name,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to register restaurant", err)
	}

	s.cfg.Log.Info("Restaurant registered successfully",
		"restaurant_id", restaurant.ID,
		"name", restaurant.Name,
		"opening_time", restaurant.Opening.String(),
		"closing_time", restaurant.Closing.String(),
	)

	return s.registry.Get(restaurant.ID)
}

func (s *restaurantService) Get(ctx context.Context, id int64) (*model.Restaurant, error) {
	r, err := s.registry.Get(id)
	if err != nil {
		return nil, s.mapError(err, id, 0)
	}
	return r, nil
}

func (s *restaurantService) List(ctx context.Context) ([]*model.Restaurant, error) {
	return s.registry.List(), nil
}

func (s *restaurantService) UpdateHours(ctx context.Context, id int64, req *model.HoursUpdate) (*model.Restaurant, error) {
	if err := s.validator.ValidateHours(req); err != nil {
		s.cfg.Log.Warn("Operating hours validation failed",
			"restaurant_id", id,
			"error", err,
		)
		return nil, validationError("Operating hours validation failed", err)
	}

	opening, _ := model.ParseTimeOfDay(req.Opening)
	closing, _ := model.ParseTimeOfDay(req.Closing)
	now := s.now()

	updated, err := s.registry.UpdateHours(id, opening, closing, func(r *model.Restaurant) error {
		for _, t := range r.Tables {
			if t.HasActiveAfter(now) {
				return apperrors.Wrap(restauranterrors.ErrHoursLocked, apperrors.CodeConflict,
					"Operating hours cannot change while reservations are active", http.StatusConflict)
			}
		}
		return s.store.SaveRestaurant(ctx, r)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			s.cfg.Log.Warn("Operating hours update rejected",
				"restaurant_id", id,
				"error", err,
			)
			return nil, err
		}
		return nil, s.mapError(err, id, 0)
	}

	s.cfg.Log.Info("Operating hours updated",
		"restaurant_id", id,
		"opening_time", updated.Opening.String(),
		"closing_time", updated.Closing.String(),
	)
	return updated, nil
}

func (s *restaurantService) AddTable(ctx context.Context, restaurantID int64, seats int) (*model.Table, error) {
	if err := s.validator.ValidateTable(&model.TableCreate{Seats: seats}); err != nil {
		s.cfg.Log.Warn("Table validation failed",
			"restaurant_id", restaurantID,
			"seats", seats,
			"error", err,
		)
		return nil, validationError("Table validation failed", err)
	}

	table, err := s.registry.AddTable(restaurantID, seats, func(t *model.Table) error {
		return s.store.SaveTable(ctx, t)
	})
	if err != nil {
		return nil, s.mapError(err, restaurantID, 0)
	}

	s.cfg.Log.Info("Table added",
		"restaurant_id", restaurantID,
		"table_number", table.Number,
		"seats", table.Seats,
	)
	return table, nil
}

func (s *restaurantService) FindTable(ctx context.Context, restaurantID int64, number int) (*model.Table, error) {
	t, err := s.registry.FindTable(restaurantID, number)
	if err != nil {
		return nil, s.mapError(err, restaurantID, number)
	}
	return t, nil
}

func (s *restaurantService) Tables(ctx context.Context, restaurantID int64) ([]*model.Table, error) {
	tables, err := s.registry.Tables(restaurantID)
	if err != nil {
		return nil, s.mapError(err, restaurantID, 0)
	}
	return tables, nil
}

func (s *restaurantService) TablesOfCapacityAtLeast(ctx context.Context, restaurantID int64, people int) ([]*model.Table, error) {
	tables, err := s.registry.TablesOfCapacityAtLeast(restaurantID, people)
	if err != nil {
		return nil, s.mapError(err, restaurantID, 0)
	}
	return tables, nil
}

func (s *restaurantService) MaxSeats(ctx context.Context, restaurantID int64) (int, error) {
	r, err := s.registry.Get(restaurantID)
	if err != nil {
		return 0, s.mapError(err, restaurantID, 0)
	}
	return r.MaxSeats, nil
}

// Restore loads every stored restaurant into the registry and moves the id sequence past them.
func (s *restaurantService) Restore(ctx context.Context) error {
	restaurants, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load restaurants: %w", err)
	}

	tables := 0
	for _, r := range restaurants {
		if err := s.registry.Register(r, nil); err != nil {
			return fmt.Errorf("failed to restore restaurant %d: %w", r.ID, err)
		}
		s.ids.Advance(r.ID)
		tables += len(r.Tables)
	}

	s.cfg.Log.Info("Restaurants restored",
		"restaurants", len(restaurants),
		"tables", tables,
	)
	return nil
}

func (s *restaurantService) mapError(err error, restaurantID int64, tableNumber int) error {
	switch {
	case errors.Is(err, restauranterrors.ErrRestaurantNotFound):
		return apperrors.WrapNotFound(err, "Restaurant", strconv.FormatInt(restaurantID, 10))
	case errors.Is(err, restauranterrors.ErrTableNotFound):
		return apperrors.WrapNotFound(err, "Table", strconv.Itoa(tableNumber))
	default:
		s.cfg.Log.Error("Restaurant operation failed",
			"restaurant_id", restaurantID,
			"error", err,
		)
		return apperrors.Internal("Failed to process restaurant request", err)
	}
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, map[string]any{"errors": verrs})
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
