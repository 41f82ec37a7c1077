package repository

import (
	"context"
	"time"

	"mizdooni/pkg/model"
)

// Store persists reservations behind the in-memory Ledger.
type Store interface {
	Insert(ctx context.Context, r *model.Reservation) error
	MarkCancelled(ctx context.Context, number int64, at time.Time) error
	// LoadConfirmed returns every confirmed reservation ordered by number.
	LoadConfirmed(ctx context.Context) ([]*model.Reservation, error)
	// MaxNumber returns the highest reservation number ever stored, cancelled ones included.
	MaxNumber(ctx context.Context) (int64, error)
}

type nopStore struct{}

// NewNopStore returns a Store that keeps nothing, used with the memory backend.
func NewNopStore() Store {
	return nopStore{}
}

func (nopStore) Insert(context.Context, *model.Reservation) error            { return nil }
func (nopStore) MarkCancelled(context.Context, int64, time.Time) error       { return nil }
func (nopStore) LoadConfirmed(context.Context) ([]*model.Reservation, error) { return nil, nil }
func (nopStore) MaxNumber(context.Context) (int64, error)                    { return 0, nil }
