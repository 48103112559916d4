package queries

import (
	"errors"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists orders that are neither delivered nor
// cancelled, oldest first.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	SellerID        kernel.UUID
	CustomerID      kernel.UUID
	Status          string
	CourierID       *kernel.UUID
	DeliveryAddress string
	TotalAmount     int64
	CourierFee      int64
	CreatedAt       time.Time
	AssignedAt      *time.Time
}
