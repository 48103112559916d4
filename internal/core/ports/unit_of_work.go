package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork binds the repositories to one transaction. Rollback after
// Commit only reports that no transaction is open, so handlers defer it
// unconditionally and ignore its error.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	CourierRepository() CourierRepository

	OrderRepository() OrderRepository

	CapacityLedger() CapacityLedger

	EarningRepository() EarningRepository
}
