// Package memory is an in-process storage driver with the same conditional
// update semantics as the postgres driver. It backs local runs without a
// database and the concurrent dispatch tests.
//
// A unit of work holds the store exclusively from Begin until Commit or
// Rollback, so transactions are serialized. Reads outside a unit of work take
// the store briefly and see committed state only.
package memory

import (
	"context"
	"maps"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type state struct {
	couriers map[uuid.UUID]courier.Snapshot
	orders   map[uuid.UUID]order.Snapshot
	earnings []*courier.Earning
}

func (s *state) clone() *state {
	return &state{
		couriers: maps.Clone(s.couriers),
		orders:   maps.Clone(s.orders),
		earnings: append([]*courier.Earning(nil), s.earnings...),
	}
}

// Store is the shared state behind every memory unit of work.
type Store struct {
	sem     chan struct{}
	data    *state
	sellers map[uuid.UUID]*kernel.Location
}

func NewStore() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		data: &state{
			couriers: make(map[uuid.UUID]courier.Snapshot),
			orders:   make(map[uuid.UUID]order.Snapshot),
		},
		sellers: make(map[uuid.UUID]*kernel.Location),
	}
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return storageErr(ctx.Err())
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// PutSeller registers a seller's pickup location; nil means unknown.
func (s *Store) PutSeller(ctx context.Context, sellerID kernel.UUID, location *kernel.Location) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	s.sellers[sellerID.Bytes()] = location
	return nil
}

// GetSellerLocation implements ports.SellerLocationProvider.
func (s *Store) GetSellerLocation(ctx context.Context, sellerID kernel.UUID) (*kernel.Location, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	loc := s.sellers[sellerID.Bytes()]
	if loc == nil {
		return nil, nil
	}
	out := *loc
	return &out, nil
}
