package memory

import (
	"context"
	"errors"
	"fmt"

	"fooddispatch/internal/core/ports"
)

var ErrNoTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork writes straight into the store while it holds it and restores
// the copy taken at Begin on Rollback.
type UnitOfWork struct {
	store  *Store
	backup *state
	active bool
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := u.store.lock(ctx); err != nil {
		return err
	}
	u.backup = u.store.data.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.store.data = u.backup
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.backup = nil
	u.active = false
	u.store.unlock()
}

// do runs fn against the store, inside the transaction when one is active.
func (u *UnitOfWork) do(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return storageErr(err)
	}
	if u.active {
		return fn(u.store.data)
	}
	if err := u.store.lock(ctx); err != nil {
		return err
	}
	defer u.store.unlock()
	return fn(u.store.data)
}

func (u *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: u}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) CapacityLedger() ports.CapacityLedger {
	return &capacityLedger{uow: u}
}

func (u *UnitOfWork) EarningRepository() ports.EarningRepository {
	return &earningRepository{uow: u}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
}
