package memory

import (
	"context"
	"fmt"
	"slices"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(ctx, func(s *state) error {
		id := aggregate.ID().Bytes()
		if _, ok := s.orders[id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("%s already exists", aggregate.ID()))
		}
		s.orders[id] = aggregate.Snapshot()
		return nil
	})
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order, expected ports.OrderPrecondition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(ctx, func(s *state) error {
		id := aggregate.ID().Bytes()
		stored, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}

		if stored.Status != expected.Status || !sameCourier(stored.CourierID, expected.CourierID) {
			return fmt.Errorf("%w: order %s is %s", ports.ErrOrderStateConflict, aggregate.ID(), stored.Status)
		}

		s.orders[id] = aggregate.Snapshot()
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var out *order.Order
	err := r.uow.do(ctx, func(s *state) error {
		snap, ok := s.orders[id.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		o, err := order.RestoreOrder(snap)
		out = o
		return err
	})
	return out, err
}

func (r *orderRepository) GetAllReadyUnassigned(ctx context.Context, limit int) ([]*order.Order, error) {
	out, err := r.list(ctx, func(s order.Snapshot) bool {
		return s.Status == order.Ready && s.CourierID == nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *orderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, func(s order.Snapshot) bool {
		return !s.Status.IsTerminal()
	})
}

func (r *orderRepository) list(ctx context.Context, keep func(order.Snapshot) bool) ([]*order.Order, error) {
	var out []*order.Order
	err := r.uow.do(ctx, func(s *state) error {
		for _, snap := range s.orders {
			if !keep(snap) {
				continue
			}
			o, err := order.RestoreOrder(snap)
			if err != nil {
				return err
			}
			out = append(out, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *order.Order) int {
		if n := a.CreatedAt().Compare(b.CreatedAt()); n != 0 {
			return n
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

func sameCourier(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}

func compareIDs(a, b kernel.UUID) int {
	switch as, bs := a.String(), b.String(); {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
