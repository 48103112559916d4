package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
)

type EarningRepository interface {
	Add(ctx context.Context, earning *courier.Earning) error

	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Earning, error)
}
