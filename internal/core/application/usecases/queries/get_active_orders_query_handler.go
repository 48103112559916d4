package queries

import (
	"context"

	"fooddispatch/internal/core/ports"
)

type GetActiveOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetActiveOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{uowFactory: uowFactory}
}

func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]GetActiveOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, GetActiveOrdersQueryResponse{
			ID:              o.ID(),
			SellerID:        o.SellerID(),
			CustomerID:      o.CustomerID(),
			Status:          o.Status().String(),
			CourierID:       o.CourierID(),
			DeliveryAddress: o.DeliveryAddress(),
			TotalAmount:     o.TotalAmount(),
			CourierFee:      o.CourierFee(),
			CreatedAt:       o.CreatedAt(),
			AssignedAt:      o.AssignedAt(),
		})
	}

	return result, nil
}
