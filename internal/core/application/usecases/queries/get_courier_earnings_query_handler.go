package queries

import (
	"context"

	"fooddispatch/internal/core/ports"
)

type GetCourierEarningsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetCourierEarningsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetCourierEarningsQueryHandler {
	return GetCourierEarningsQueryHandler{uowFactory: uowFactory}
}

func (h GetCourierEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierEarningsQuery,
) (GetCourierEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	// Resolves unknown couriers to a not-found error instead of an empty list.
	if _, err := uow.CourierRepository().Get(ctx, query.CourierID()); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	earnings, err := uow.EarningRepository().GetAllByCourier(ctx, query.CourierID())
	if err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	result := GetCourierEarningsQueryResponse{
		CourierID: query.CourierID(),
		Earnings:  make([]CourierEarning, 0, len(earnings)),
	}
	for _, e := range earnings {
		result.Total += e.Amount()
		result.Earnings = append(result.Earnings, CourierEarning{
			ID:        e.ID(),
			OrderID:   e.OrderID(),
			Amount:    e.Amount(),
			FeeType:   e.FeeType(),
			Status:    e.Status(),
			CreatedAt: e.CreatedAt(),
		})
	}

	return result, nil
}
