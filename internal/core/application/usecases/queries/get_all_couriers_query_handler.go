package queries

import (
	"context"

	"fooddispatch/internal/core/ports"
)

// GetAllCouriersQueryHandler returns couriers sorted by name.
type GetAllCouriersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetAllCouriersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{uowFactory: uowFactory}
}

func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers, err := h.uowFactory.Create().CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]GetAllCouriersQueryResponse, 0, len(couriers))
	for _, c := range couriers {
		result = append(result, GetAllCouriersQueryResponse{
			ID:                c.ID(),
			Name:              c.Name(),
			Phone:             c.Phone(),
			IsOnline:          c.IsOnline(),
			Status:            c.Status().String(),
			CurrentDeliveries: c.CurrentDeliveries(),
			TotalDeliveries:   c.TotalDeliveries(),
			Rating:            c.Rating(),
			Location:          c.Location(),
		})
	}

	return result, nil
}
