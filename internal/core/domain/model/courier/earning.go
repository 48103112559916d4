package courier

import (
	"errors"
	"fmt"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
)

const (
	FeeTypeDelivery = "delivery_fee"

	EarningStatusPending = "pending"
)

// Earning is the payout owed to a courier for one delivered order. It is
// written in the same unit of work that marks the order delivered.
type Earning struct {
	id        kernel.UUID
	courierID kernel.UUID
	orderID   kernel.UUID
	amount    int64
	feeType   string
	status    string
	createdAt time.Time
}

// NewDeliveryEarning records the courier fee of a delivered order as a
// pending payout.
func NewDeliveryEarning(id, courierID, orderID kernel.UUID, amount int64, createdAt time.Time) (*Earning, error) {
	if err := errors.Join(id.Validate(), courierID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}

	return &Earning{
		id:        id,
		courierID: courierID,
		orderID:   orderID,
		amount:    amount,
		feeType:   FeeTypeDelivery,
		status:    EarningStatusPending,
		createdAt: createdAt,
	}, nil
}

// RestoreEarning rebuilds an earning from storage, keeping its fee type and
// payout status.
func RestoreEarning(id, courierID, orderID kernel.UUID, amount int64, feeType, status string, createdAt time.Time) (*Earning, error) {
	e, err := NewDeliveryEarning(id, courierID, orderID, amount, createdAt)
	if err != nil {
		return nil, err
	}
	if feeType == "" || status == "" {
		return nil, errs.NewValueIsRequiredError("fee type and status")
	}
	e.feeType = feeType
	e.status = status
	return e, nil
}

func (e *Earning) ID() kernel.UUID { return e.id }
func (e *Earning) CourierID() kernel.UUID { return e.courierID }
func (e *Earning) OrderID() kernel.UUID { return e.orderID }
func (e *Earning) Amount() int64 { return e.amount }
func (e *Earning) FeeType() string { return e.feeType }
func (e *Earning) Status() string { return e.status }
func (e *Earning) CreatedAt() time.Time { return e.createdAt }
