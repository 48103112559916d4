package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
)

// CapacityLimit bounds an increment. Max <= 0 disables the cap, which is the
// manual override path. RequireAvailable additionally demands that the
// courier is still online and active at write time.
type CapacityLimit struct {
	Max              int
	RequireAvailable bool
}

// CapacityLedger owns couriers' in-flight delivery counters. Every call must
// run inside the unit of work that performs the matching order mutation.
type CapacityLedger interface {
	// Adjust applies delta (+1 or -1) and returns the new count.
	//
	// An increment that violates limit matches no row and fails with
	// ErrCapacityConflict. Decrements ignore limit and floor at zero.
	Adjust(ctx context.Context, courierID kernel.UUID, delta int, limit CapacityLimit) (int, error)

	// Complete releases one unit of capacity and counts a finished delivery.
	Complete(ctx context.Context, courierID kernel.UUID) (int, error)
}
