package commands

import (
	"errors"
	"fmt"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
	ErrUnknownOrderStep = errors.New("unknown order step")
)

// OrderStep is a lifecycle step taken by the seller or the courier that does
// not touch courier capacity.
type OrderStep string

const (
	StepConfirm        OrderStep = "confirm"
	StepStartPreparing OrderStep = "preparing"
	StepMarkReady      OrderStep = "ready"
	StepPickUp         OrderStep = "pickup"
)

type AdvanceOrderCommand struct {
	orderID kernel.UUID
	step    OrderStep

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(orderID kernel.UUID, step OrderStep) (AdvanceOrderCommand, error) {
	var stepErr error
	switch step {
	case StepConfirm, StepStartPreparing, StepMarkReady, StepPickUp:
	default:
		stepErr = fmt.Errorf("%w: %q", ErrUnknownOrderStep, step)
	}

	if err := errors.Join(orderID.Validate(), stepErr); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{orderID: orderID, step: step, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Step() OrderStep {
	return c.step
}
