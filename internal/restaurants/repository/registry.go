package repository

import (
	"sort"
	"sync"

	restauranterrors "mizdooni/internal/restaurants/errors"
	"mizdooni/pkg/model"
)

type entry struct {
	mu         sync.RWMutex
	restaurant *model.Restaurant
}

// Registry is the authoritative in-memory set of restaurants and their tables.
// Lock order is registry, then restaurant entry, then table.
type Registry struct {
	mu          sync.RWMutex
	restaurants map[int64]*entry
}

func NewRegistry() *Registry {
	return &Registry{
		restaurants: make(map[int64]*entry),
	}
}

func (r *Registry) lookup(id int64) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.restaurants[id]
	if !ok {
		return nil, restauranterrors.ErrRestaurantNotFound
	}
	return e, nil
}

// Register stores restaurant once commit succeeds. commit runs while the registry is locked.
func (r *Registry) Register(restaurant *model.Restaurant, commit func(*model.Restaurant) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if commit != nil {
		if err := commit(restaurant); err != nil {
			return err
		}
	}
	r.restaurants[restaurant.ID] = &entry{restaurant: restaurant}
	return nil
}

// Get returns a snapshot of the restaurant. Table pointers are shared.
func (r *Registry) Get(id int64) (*model.Restaurant, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot(e.restaurant), nil
}

// List returns snapshots ordered by id.
func (r *Registry) List() []*model.Restaurant {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.restaurants))
	for _, e := range r.restaurants {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]*model.Restaurant, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		out = append(out, snapshot(e.restaurant))
		e.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Read runs fn with the live restaurant while its hours and table list are pinned.
// fn must not modify the restaurant.
func (r *Registry) Read(id int64, fn func(*model.Restaurant) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.restaurant)
}

// AddTable appends a table numbered one past the current last table once commit succeeds.
func (r *Registry) AddTable(restaurantID int64, seats int, commit func(*model.Table) error) (*model.Table, error) {
	e, err := r.lookup(restaurantID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table := model.NewTable(restaurantID, len(e.restaurant.Tables)+1, seats)
	if commit != nil {
		if err := commit(table); err != nil {
			return nil, err
		}
	}
	e.restaurant.Tables = append(e.restaurant.Tables, table)
	e.restaurant.MaxSeats = max(e.restaurant.MaxSeats, seats)
	return table, nil
}

func (r *Registry) FindTable(restaurantID int64, number int) (*model.Table, error) {
	e, err := r.lookup(restaurantID)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return findTable(e.restaurant, number)
}

func (r *Registry) Tables(restaurantID int64) ([]*model.Table, error) {
	e, err := r.lookup(restaurantID)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*model.Table(nil), e.restaurant.Tables...), nil
}

// TablesOfCapacityAtLeast returns the tables seating at least people, in no particular order.
func (r *Registry) TablesOfCapacityAtLeast(restaurantID int64, people int) ([]*model.Table, error) {
	e, err := r.lookup(restaurantID)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return TablesFitting(e.restaurant, people), nil
}

// UpdateHours changes the operating hours once commit accepts the updated snapshot.
// The restaurant stays write-locked for the duration, so no reservation commits in between.
func (r *Registry) UpdateHours(id int64, opening, closing model.TimeOfDay, commit func(*model.Restaurant) error) (*model.Restaurant, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	updated := snapshot(e.restaurant)
	updated.Opening = opening
	updated.Closing = closing
	if commit != nil {
		if err := commit(updated); err != nil {
			return nil, err
		}
	}
	e.restaurant.Opening = opening
	e.restaurant.Closing = closing
	return updated, nil
}

// TablesFitting filters the tables of a pinned restaurant by capacity.
func TablesFitting(restaurant *model.Restaurant, people int) []*model.Table {
	out := make([]*model.Table, 0, len(restaurant.Tables))
	for _, t := range restaurant.Tables {
		if t.Seats >= people {
			out = append(out, t)
		}
	}
	return out
}

func findTable(restaurant *model.Restaurant, number int) (*model.Table, error) {
	if number >= 1 && number <= len(restaurant.Tables) {
		if t := restaurant.Tables[number-1]; t.Number == number {
			return t, nil
		}
	}
	for _, t := range restaurant.Tables {
		if t.Number == number {
			return t, nil
		}
	}
	return nil, restauranterrors.ErrTableNotFound
}

func snapshot(r *model.Restaurant) *model.Restaurant {
	cp := *r
	cp.Tables = make([]*model.Table, len(r.Tables))
	copy(cp.Tables, r.Tables)
	return &cp
}
