package repository

import (
	"context"

	"mizdooni/pkg/model"
)

// Store persists restaurants and tables behind the in-memory Registry.
type Store interface {
	SaveRestaurant(ctx context.Context, r *model.Restaurant) error
	SaveTable(ctx context.Context, t *model.Table) error
	// LoadAll returns every stored restaurant with its tables attached in number order.
	LoadAll(ctx context.Context) ([]*model.Restaurant, error)
}

type nopStore struct{}

// NewNopStore returns a Store that keeps nothing, used with the memory backend.
func NewNopStore() Store {
	return nopStore{}
}

func (nopStore) SaveRestaurant(context.Context, *model.Restaurant) error { return nil }
func (nopStore) SaveTable(context.Context, *model.Table) error           { return nil }
func (nopStore) LoadAll(context.Context) ([]*model.Restaurant, error)    { return nil, nil }
