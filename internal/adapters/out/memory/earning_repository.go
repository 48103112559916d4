package memory

import (
	"context"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
)

type earningRepository struct {
	uow *UnitOfWork
}

func (r *earningRepository) Add(ctx context.Context, earning *courier.Earning) error {
	return r.uow.do(ctx, func(s *state) error {
		s.earnings = append(s.earnings, earning)
		return nil
	})
}

func (r *earningRepository) GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Earning, error) {
	var out []*courier.Earning
	err := r.uow.do(ctx, func(s *state) error {
		for _, e := range s.earnings {
			if e.CourierID().IsEqual(courierID) {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}
