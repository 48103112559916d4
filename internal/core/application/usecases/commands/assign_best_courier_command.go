package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrAssignBestCourierCommandIsNotConstructed = errors.New(
	"AssignBestCourierCommand must be created via NewAssignBestCourierCommand constructor",
)

// AssignBestCourierCommand asks the dispatch engine to pick and bind the best
// courier for a ready order. The pickup origin is resolved from the seller
// profile unless the caller already knows it.
type AssignBestCourierCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	sellerLocation *kernel.Location

	guard guard.ConstructorGuard
}

func NewAssignBestCourierCommand(orderID kernel.UUID) (AssignBestCourierCommand, error) {
	cmd := AssignBestCourierCommand{guard: guard.NewConstructorGuard()}

	if err := orderID.Validate(); err != nil {
		return AssignBestCourierCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

// WithSellerLocation overrides the origin lookup.
func (c AssignBestCourierCommand) WithSellerLocation(location kernel.Location) (AssignBestCourierCommand, error) {
	if err := location.Validate(); err != nil {
		return c, err
	}
	c.sellerLocation = &location
	return c, nil
}

func (c AssignBestCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignBestCourierCommandIsNotConstructed)
}

func (c AssignBestCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignBestCourierCommand) SellerLocation() *kernel.Location {
	return c.sellerLocation
}
