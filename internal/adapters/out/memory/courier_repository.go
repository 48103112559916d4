package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"
)

type courierRepository struct {
	uow *UnitOfWork
}

func (r *courierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(ctx, func(s *state) error {
		id := aggregate.ID().Bytes()
		if _, ok := s.couriers[id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("courier", fmt.Errorf("%s already exists", aggregate.ID()))
		}
		s.couriers[id] = aggregate.Snapshot()
		return nil
	})
}

// Update keeps the stored delivery counters; they move only through the
// capacity ledger.
func (r *courierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(ctx, func(s *state) error {
		id := aggregate.ID().Bytes()
		stored, ok := s.couriers[id]
		if !ok {
			return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
		}

		next := aggregate.Snapshot()
		next.CurrentDeliveries = stored.CurrentDeliveries
		next.TotalDeliveries = stored.TotalDeliveries
		s.couriers[id] = next
		return nil
	})
}

func (r *courierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var out *courier.Courier
	err := r.uow.do(ctx, func(s *state) error {
		snap, ok := s.couriers[id.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("courier", id.String())
		}
		c, err := courier.RestoreCourier(snap)
		out = c
		return err
	})
	return out, err
}

func (r *courierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	return r.list(ctx, func(courier.Snapshot) bool { return true })
}

func (r *courierRepository) GetAllEligible(ctx context.Context, maxConcurrent int) ([]*courier.Courier, error) {
	return r.list(ctx, func(s courier.Snapshot) bool {
		return s.IsOnline && s.Status == courier.Active && s.CurrentDeliveries < maxConcurrent
	})
}

func (r *courierRepository) list(ctx context.Context, keep func(courier.Snapshot) bool) ([]*courier.Courier, error) {
	var out []*courier.Courier
	err := r.uow.do(ctx, func(s *state) error {
		for _, snap := range s.couriers {
			if !keep(snap) {
				continue
			}
			c, err := courier.RestoreCourier(snap)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *courier.Courier) int {
		if n := strings.Compare(a.Name(), b.Name()); n != 0 {
			return n
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out, nil
}

type capacityLedger struct {
	uow *UnitOfWork
}

func (l *capacityLedger) Adjust(ctx context.Context, courierID kernel.UUID, delta int, limit ports.CapacityLimit) (int, error) {
	var count int
	err := l.uow.do(ctx, func(s *state) error {
		snap, ok := s.couriers[courierID.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("courier", courierID.String())
		}

		switch {
		case delta > 0:
			if limit.Max > 0 && snap.CurrentDeliveries+delta > limit.Max {
				return ports.ErrCapacityConflict
			}
			if limit.RequireAvailable && (!snap.IsOnline || snap.Status != courier.Active) {
				return ports.ErrCapacityConflict
			}
			snap.CurrentDeliveries += delta
		case delta < 0:
			snap.CurrentDeliveries = max(0, snap.CurrentDeliveries+delta)
		}

		s.couriers[courierID.Bytes()] = snap
		count = snap.CurrentDeliveries
		return nil
	})
	return count, err
}

func (l *capacityLedger) Complete(ctx context.Context, courierID kernel.UUID) (int, error) {
	var count int
	err := l.uow.do(ctx, func(s *state) error {
		snap, ok := s.couriers[courierID.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("courier", courierID.String())
		}

		snap.CurrentDeliveries = max(0, snap.CurrentDeliveries-1)
		snap.TotalDeliveries++
		s.couriers[courierID.Bytes()] = snap
		count = snap.CurrentDeliveries
		return nil
	})
	return count, err
}
