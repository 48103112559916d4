package commands

import (
	"errors"
	"strings"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrCourierNameIsRequired = errors.New("courier name is required")
)

// CreateCourierCommand registers a courier. The identifier is generated here
// so the caller can address the courier right after the command succeeds.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     string

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(name, phone string) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		courierID: kernel.NewUUID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setName(name); err != nil {
		return CreateCourierCommand{}, err
	}
	cmd.phone = strings.TrimSpace(phone)

	return cmd, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c CreateCourierCommand) Phone() string {
	return c.phone
}

func (c *CreateCourierCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCourierNameIsRequired
	}
	c.name = name
	return nil
}
