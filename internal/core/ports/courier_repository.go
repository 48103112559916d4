package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
)

// CourierRepository persists courier profiles. Update writes availability,
// rating and location only; the delivery counters belong to CapacityLedger.
type CourierRepository interface {
	Add(ctx context.Context, aggregate *courier.Courier) error

	Update(ctx context.Context, aggregate *courier.Courier) error

	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllEligible returns online, active couriers with fewer than
	// maxConcurrent deliveries in flight.
	GetAllEligible(ctx context.Context, maxConcurrent int) ([]*courier.Courier, error)
}
