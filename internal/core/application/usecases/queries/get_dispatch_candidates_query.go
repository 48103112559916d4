package queries

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/services"
	"fooddispatch/internal/pkg/guard"
)

var ErrGetDispatchCandidatesQueryIsNotConstructed = errors.New(
	"GetDispatchCandidatesQuery must be created via NewGetDispatchCandidatesQuery constructor",
)

// GetDispatchCandidatesQuery ranks the couriers that could take an order,
// best first, with the score broken down per factor. It backs the manual
// override screen and changes nothing.
//
// Example:
//
//	query, _ := NewGetDispatchCandidatesQuery(orderID)
//	view, err := handler.Handle(ctx, query)
//	for _, c := range view.Candidates {
//	    fmt.Printf("%s %.1f (%.2f km)\n", c.Name, c.Score.Total, c.DistanceKm)
//	}
type GetDispatchCandidatesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDispatchCandidatesQuery(orderID kernel.UUID) (GetDispatchCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDispatchCandidatesQuery{}, err
	}
	return GetDispatchCandidatesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchCandidatesQueryIsNotConstructed)
}

func (q GetDispatchCandidatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetDispatchCandidatesQueryResponse struct {
	OrderID kernel.UUID
	Status  string
	// Origin is the seller location; nil when unknown, in which case every
	// candidate carries services.UnknownDistanceKm.
	Origin     *kernel.Location
	Candidates []DispatchCandidate
}

type DispatchCandidate struct {
	CourierID         kernel.UUID
	Name              string
	DistanceKm        float64
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            float64
	Score             services.ScoreBreakdown
}
