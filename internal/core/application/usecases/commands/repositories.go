package commands

import (
	"context"

	"fooddispatch/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	CapacityLedgerFactory interface {
		CapacityLedger() ports.CapacityLedger
	}

	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// DispatchUoW covers every mutation that moves a courier reference: the
	// order row and the capacity counter change together.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		CapacityLedgerFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		CapacityLedgerFactory
		EarningRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
