package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoCourierAssigned is returned by operations that need the assigned courier.
	ErrNoCourierAssigned = errors.New("order has no courier assigned")

	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// Order is the aggregate root of the delivery lifecycle. It owns the status
// state machine and the courier reference; the courier capacity counter lives
// on the courier and is adjusted by the application layer in the same unit of
// work as every order mutation that changes the courier reference.
//
// Invariant: the order references a courier exactly when its status is
// assigned, on_the_way or delivered.
type Order struct {
	id         kernel.UUID
	sellerID   kernel.UUID
	customerID kernel.UUID

	deliveryAddress string

	// totalAmount and courierFee are in minor currency units.
	totalAmount int64
	courierFee  int64

	status    Status
	courierID *kernel.UUID

	createdAt          time.Time
	assignedAt         *time.Time
	pickedUpAt         *time.Time
	deliveredAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string

	guard guard.ConstructorGuard
}

// NewOrder places an order in the pending status.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), sellerID, customerID, "Bagdat Cd. 12", 45000, 1500, time.Now())
func NewOrder(
	id, sellerID, customerID kernel.UUID,
	deliveryAddress string,
	totalAmount, courierFee int64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(sellerID, customerID),
		o.setDeliveryAddress(deliveryAddress),
		o.setAmounts(totalAmount, courierFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the persisted state of an order. It is used by storage
// adapters to rebuild the aggregate through RestoreOrder.
type Snapshot struct {
	ID                 kernel.UUID
	SellerID           kernel.UUID
	CustomerID         kernel.UUID
	DeliveryAddress    string
	TotalAmount        int64
	CourierFee         int64
	Status             Status
	CourierID          *kernel.UUID
	CreatedAt          time.Time
	AssignedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// RestoreOrder rebuilds an order from storage, re-checking every invariant
// NewOrder enforces plus the status/courier consistency rule.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:          s.CreatedAt,
		assignedAt:         s.AssignedAt,
		pickedUpAt:         s.PickedUpAt,
		deliveredAt:        s.DeliveredAt,
		cancelledAt:        s.CancelledAt,
		cancellationReason: s.CancellationReason,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setParties(s.SellerID, s.CustomerID),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setAmounts(s.TotalAmount, s.CourierFee),
		o.setStatus(s.Status, s.CourierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns the state RestoreOrder accepts.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		SellerID:           o.sellerID,
		CustomerID:         o.customerID,
		DeliveryAddress:    o.deliveryAddress,
		TotalAmount:        o.totalAmount,
		CourierFee:         o.courierFee,
		Status:             o.status,
		CourierID:          o.CourierID(),
		CreatedAt:          o.createdAt,
		AssignedAt:         o.assignedAt,
		PickedUpAt:         o.pickedUpAt,
		DeliveredAt:        o.deliveredAt,
		CancelledAt:        o.cancelledAt,
		CancellationReason: o.cancellationReason,
	}
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) SellerID() kernel.UUID { return o.sellerID }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) TotalAmount() int64 { return o.totalAmount }
func (o *Order) CourierFee() int64 { return o.courierFee }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }
func (o *Order) CancellationReason() string { return o.cancellationReason }

// CourierID returns the assigned courier, or nil.
func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// IsAwaitingDispatch reports whether the dispatch engine may assign a courier.
func (o *Order) IsAwaitingDispatch() bool {
	return o.status == Ready && o.courierID == nil
}

// Confirm records that the seller accepted the order.
func (o *Order) Confirm() error {
	return o.moveTo(Confirmed)
}

// StartPreparing records that the kitchen started on the order.
func (o *Order) StartPreparing() error {
	return o.moveTo(Preparing)
}

// MarkReady makes the order eligible for dispatch.
func (o *Order) MarkReady() error {
	return o.moveTo(Ready)
}

// AssignCourier attaches a courier to a ready order.
func (o *Order) AssignCourier(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status != Ready {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Assigned)
	}
	if err := o.moveTo(Assigned); err != nil {
		return err
	}

	o.courierID = &courierID
	o.assignedAt = &now
	return nil
}

// Reassign hands an assigned order to a different courier and returns the
// courier it was taken from.
func (o *Order) Reassign(courierID kernel.UUID, now time.Time) (kernel.UUID, error) {
	if err := courierID.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if o.status != Assigned {
		return kernel.UUID{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Assigned)
	}

	previous := *o.courierID
	o.courierID = &courierID
	o.assignedAt = &now
	return previous, nil
}

// RemoveCourier reverts an assigned order back to ready and returns the
// courier whose capacity must be released.
func (o *Order) RemoveCourier() (kernel.UUID, error) {
	if o.courierID == nil {
		return kernel.UUID{}, ErrNoCourierAssigned
	}
	if err := o.moveTo(Ready); err != nil {
		return kernel.UUID{}, err
	}

	released := *o.courierID
	o.courierID = nil
	o.assignedAt = nil
	return released, nil
}

// PickUp records that the courier collected the order from the seller.
func (o *Order) PickUp(now time.Time) error {
	if err := o.moveTo(OnTheWay); err != nil {
		return err
	}
	o.pickedUpAt = &now
	return nil
}

// Deliver completes the order and returns the courier that delivered it.
func (o *Order) Deliver(now time.Time) (kernel.UUID, error) {
	if err := o.moveTo(Delivered); err != nil {
		return kernel.UUID{}, err
	}
	o.deliveredAt = &now
	return *o.courierID, nil
}

// Cancel moves a non-terminal order to cancelled. If a courier was attached
// it is detached and returned so its capacity can be released.
func (o *Order) Cancel(reason string, now time.Time) (*kernel.UUID, error) {
	if err := o.moveTo(Cancelled); err != nil {
		return nil, err
	}

	released := o.courierID
	o.courierID = nil
	o.cancelledAt = &now
	o.cancellationReason = strings.TrimSpace(reason)
	return released, nil
}

func (o *Order) moveTo(next Status) error {
	status, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(sellerID, customerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), customerID.Validate()); err != nil {
		return err
	}
	o.sellerID = sellerID
	o.customerID = customerID
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setAmounts(totalAmount, courierFee int64) error {
	var err error
	if totalAmount < 0 {
		err = errs.NewValueIsInvalidErrorWithCause("total amount", fmt.Errorf("%d is negative", totalAmount))
	}
	if courierFee < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("courier fee", fmt.Errorf("%d is negative", courierFee)))
	}
	if err != nil {
		return err
	}
	o.totalAmount = totalAmount
	o.courierFee = courierFee
	return nil
}

func (o *Order) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
		id := *courierID
		o.courierID = &id
	}
	o.status = status
	return nil
}
