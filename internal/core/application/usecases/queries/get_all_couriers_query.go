// Package queries contains read operations for operator and panel screens.
// Queries never open a transaction; they read committed state through the
// repository ports so every storage driver serves them.
package queries

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrGetAllCouriersQueryIsNotConstructed = errors.New(
		"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
	)
)

// GetAllCouriersQuery lists every registered courier with availability and
// load, for the operator courier board.
//
// Example:
//
//	query := NewGetAllCouriersQuery()
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
//	for _, c := range couriers {
//	    fmt.Printf("%s %d/%d\n", c.Name, c.CurrentDeliveries, maxConcurrent)
//	}
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse is the courier board read model. Location is
// nil when the courier never reported a position.
type GetAllCouriersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	IsOnline          bool
	Status            string
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            float64
	Location          *kernel.Location
}
