package commands

import (
	"errors"
	"strings"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired   = errors.New("delivery address is required")
	ErrAmountIsInvalid     = errors.New("total amount must not be negative")
	ErrCourierFeeIsInvalid = errors.New("courier fee must not be negative")
)

type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	sellerID    kernel.UUID
	customerID  kernel.UUID
	address     string
	totalAmount int64
	courierFee  int64

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, sellerID, customerID kernel.UUID,
	address string,
	totalAmount, courierFee int64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setIDs(orderID, sellerID, customerID),
		orderCommand.setAddress(address),
		orderCommand.setAmounts(totalAmount, courierFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

func (c CreateOrderCommand) TotalAmount() int64 {
	return c.totalAmount
}

func (c CreateOrderCommand) CourierFee() int64 {
	return c.courierFee
}

func (c *CreateOrderCommand) setIDs(orderID, sellerID, customerID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), sellerID.Validate(), customerID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.sellerID = sellerID
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setAmounts(totalAmount, courierFee int64) error {
	var err error
	if totalAmount < 0 {
		err = ErrAmountIsInvalid
	}
	if courierFee < 0 {
		err = errors.Join(err, ErrCourierFeeIsInvalid)
	}
	if err != nil {
		return err
	}

	c.totalAmount = totalAmount
	c.courierFee = courierFee
	return nil
}
