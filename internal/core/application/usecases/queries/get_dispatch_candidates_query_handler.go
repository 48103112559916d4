package queries

import (
	"context"
	"fmt"

	"fooddispatch/internal/core/domain/services"
	"fooddispatch/internal/core/ports"
)

type GetDispatchCandidatesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	sellers    ports.SellerLocationProvider
	dispatcher services.OrderDispatcher
}

func NewGetDispatchCandidatesQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	sellers ports.SellerLocationProvider,
	maxConcurrent int,
) GetDispatchCandidatesQueryHandler {
	return GetDispatchCandidatesQueryHandler{
		uowFactory: uowFactory,
		sellers:    sellers,
		dispatcher: services.NewOrderDispatcher(maxConcurrent),
	}
}

// Handle returns ports.ErrOrderStateConflict for delivered or cancelled
// orders; any other status is ranked so operators can plan a reassignment.
func (h GetDispatchCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchCandidatesQuery,
) (GetDispatchCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchCandidatesQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetDispatchCandidatesQueryResponse{}, err
	}
	if o.Status().IsTerminal() {
		return GetDispatchCandidatesQueryResponse{}, fmt.Errorf("%w: order %s is %s", ports.ErrOrderStateConflict, o.ID(), o.Status())
	}

	origin, err := h.sellers.GetSellerLocation(ctx, o.SellerID())
	if err != nil {
		return GetDispatchCandidatesQueryResponse{}, err
	}

	pool, err := uow.CourierRepository().GetAllEligible(ctx, h.dispatcher.MaxConcurrent())
	if err != nil {
		return GetDispatchCandidatesQueryResponse{}, err
	}

	ranked := h.dispatcher.Rank(pool, origin)
	candidates := make([]DispatchCandidate, 0, len(ranked))
	for _, r := range ranked {
		candidates = append(candidates, DispatchCandidate{
			CourierID:         r.Courier.ID(),
			Name:              r.Courier.Name(),
			DistanceKm:        r.DistanceKm,
			CurrentDeliveries: r.Courier.CurrentDeliveries(),
			TotalDeliveries:   r.Courier.TotalDeliveries(),
			Rating:            r.Courier.Rating(),
			Score:             r.Score,
		})
	}

	return GetDispatchCandidatesQueryResponse{
		OrderID:    o.ID(),
		Status:     o.Status().String(),
		Origin:     origin,
		Candidates: candidates,
	}, nil
}
