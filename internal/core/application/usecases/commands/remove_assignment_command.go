package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrRemoveAssignmentCommandIsNotConstructed = errors.New(
	"RemoveAssignmentCommand must be created via NewRemoveAssignmentCommand constructor",
)

// RemoveAssignmentCommand detaches the courier from an assigned order and
// puts the order back into the ready queue.
type RemoveAssignmentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveAssignmentCommand(orderID kernel.UUID) (RemoveAssignmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RemoveAssignmentCommand{}, err
	}
	return RemoveAssignmentCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAssignmentCommandIsNotConstructed)
}

func (c RemoveAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
