package order

import (
	"errors"
	"fmt"
	"slices"

	"fooddispatch/internal/pkg/errs"
)

// ErrInvalidTransition is wrapped by every rejected status change.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status is the lifecycle state of an order.
//
//	pending ──> confirmed ──> preparing ──> ready ──> assigned ──> on_the_way ──> delivered
//	                                          ^          │  │                      ^
//	                                          └──────────┘  └──────────────────────┘
//	                                         (unassign)         (delivered without pick-up scan)
//
// Any non-terminal status may move to cancelled. delivered and cancelled are
// terminal. The persisted form is the lowercase name returned by String.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	Assigned
	OnTheWay
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "unknown",
	Pending:   "pending",
	Confirmed: "confirmed",
	Preparing: "preparing",
	Ready:     "ready",
	Assigned:  "assigned",
	OnTheWay:  "on_the_way",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// transitions is the single source of truth for allowed status changes.
// Assigned -> Assigned is a manual reassignment to another courier.
var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Assigned, Cancelled},
	Assigned:  {Assigned, Ready, OnTheWay, Delivered, Cancelled},
	OnTheWay:  {Delivered, Cancelled},
}

// ParseStatus converts the persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// TransitionTo returns next when the move is allowed, otherwise an error
// wrapping ErrInvalidTransition.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// RequiresCourier reports whether an order in this status must reference a
// courier. Orders in any other status must not.
func (s Status) RequiresCourier() bool {
	return s == Assigned || s == OnTheWay || s == Delivered
}

// ValidateCanHaveCourier checks the status/courier consistency rule.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier == s.RequiresCourier() {
		return nil
	}
	if courier {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to have a courier", s))
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to have no courier", s))
}
