package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
)

// SellerLocationProvider resolves the pickup origin of a seller. A nil
// location with a nil error means the position is unknown, which is valid.
type SellerLocationProvider interface {
	GetSellerLocation(ctx context.Context, sellerID kernel.UUID) (*kernel.Location, error)
}
