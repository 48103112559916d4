package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrAssignCourierManuallyCommandIsNotConstructed = errors.New(
	"AssignCourierManuallyCommand must be created via NewAssignCourierManuallyCommand constructor",
)

// AssignCourierManuallyCommand is an operator override: bind the given
// courier to the order without scoring.
type AssignCourierManuallyCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierManuallyCommand(orderID, courierID kernel.UUID) (AssignCourierManuallyCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return AssignCourierManuallyCommand{}, err
	}

	return AssignCourierManuallyCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierManuallyCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierManuallyCommandIsNotConstructed)
}

func (c AssignCourierManuallyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignCourierManuallyCommand) CourierID() kernel.UUID {
	return c.courierID
}
