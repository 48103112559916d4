package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
)

// OrderPrecondition is the state an order row must still be in for a
// conditional update to apply.
type OrderPrecondition struct {
	Status    order.Status
	CourierID *kernel.UUID
}

// ExpectOrder captures the aggregate's current status and courier before it
// is mutated.
func ExpectOrder(o *order.Order) OrderPrecondition {
	return OrderPrecondition{Status: o.Status(), CourierID: o.CourierID()}
}

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored row still matches
	// expected; otherwise it returns ErrOrderStateConflict and writes nothing.
	Update(ctx context.Context, aggregate *order.Order, expected OrderPrecondition) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyUnassigned returns up to limit ready orders without a
	// courier, oldest first.
	GetAllReadyUnassigned(ctx context.Context, limit int) ([]*order.Order, error)

	// GetAllActive returns every order that is neither delivered nor cancelled.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
