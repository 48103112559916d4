package commands

import (
	"errors"
	"fmt"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
		"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
	)
	ErrUnknownAvailabilityAction = errors.New("unknown availability action")
)

// AvailabilityAction is either the courier's own online toggle or an
// administrator's (de)activation.
type AvailabilityAction string

const (
	GoOnline   AvailabilityAction = "online"
	GoOffline  AvailabilityAction = "offline"
	Activate   AvailabilityAction = "activate"
	Deactivate AvailabilityAction = "deactivate"
)

type SetCourierAvailabilityCommand struct {
	courierID kernel.UUID
	action    AvailabilityAction

	guard guard.ConstructorGuard
}

func NewSetCourierAvailabilityCommand(courierID kernel.UUID, action AvailabilityAction) (SetCourierAvailabilityCommand, error) {
	var actionErr error
	switch action {
	case GoOnline, GoOffline, Activate, Deactivate:
	default:
		actionErr = fmt.Errorf("%w: %q", ErrUnknownAvailabilityAction, action)
	}

	if err := errors.Join(courierID.Validate(), actionErr); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return SetCourierAvailabilityCommand{courierID: courierID, action: action, guard: guard.NewConstructorGuard()}, nil
}

func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierAvailabilityCommand) Action() AvailabilityAction {
	return c.action
}
