package ports

import (
	"context"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
)

type DispatchOutcome string

const (
	OutcomeAssigned   DispatchOutcome = "assigned"
	OutcomeReassigned DispatchOutcome = "reassigned"
	OutcomeUnassigned DispatchOutcome = "unassigned"
	OutcomeNoCourier  DispatchOutcome = "no_courier"
	OutcomeFailed     DispatchOutcome = "failed"
	OutcomeReleased   DispatchOutcome = "released"
)

// DispatchEvent tells seller and courier panels about a dispatch attempt.
type DispatchEvent struct {
	OrderID    kernel.UUID
	SellerID   kernel.UUID
	CourierID  *kernel.UUID
	Outcome    DispatchOutcome
	Candidates int
	Score      float64
	Reason     string
	OccurredAt time.Time
}

// Notifier delivers dispatch events. Calls happen after commit and are
// fire-and-forget: a failure is logged and never undoes the assignment.
type Notifier interface {
	NotifyDispatch(ctx context.Context, event DispatchEvent) error
}
