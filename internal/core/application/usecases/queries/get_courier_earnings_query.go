package queries

import (
	"errors"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrGetCourierEarningsQueryIsNotConstructed = errors.New(
	"GetCourierEarningsQuery must be created via NewGetCourierEarningsQuery constructor",
)

type GetCourierEarningsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCourierEarningsQuery(courierID kernel.UUID) (GetCourierEarningsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierEarningsQuery{}, err
	}
	return GetCourierEarningsQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierEarningsQueryIsNotConstructed)
}

func (q GetCourierEarningsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierEarningsQueryResponse lists a courier's fee records; Total is in
// minor currency units.
type GetCourierEarningsQueryResponse struct {
	CourierID kernel.UUID
	Total     int64
	Earnings  []CourierEarning
}

type CourierEarning struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Amount    int64
	FeeType   string
	Status    string
	CreatedAt time.Time
}
