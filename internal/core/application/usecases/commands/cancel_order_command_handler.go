package commands

import (
	"context"
	"time"

	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// CancelOrderCommandHandler cancels a non-terminal order. If a courier was
// attached, its capacity is released in the same unit of work.
type CancelOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	policy     DispatchPolicy
	events     eventSender
	logger     *zap.Logger
	now        func() time.Time
}

func NewCancelOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.Notifier,
	policy DispatchPolicy,
	logger *zap.Logger,
) CancelOrderCommandHandler {
	logger = logger.Named("orders")
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     eventSender{notifier: notifier, logger: logger, timeout: policy.NotifyTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	storageCtx, cancel := withStorageTimeout(ctx, h.policy.StorageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(storageCtx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(storageCtx)
	}()

	o, err := uow.OrderRepository().Get(storageCtx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.now()
	expected := ports.ExpectOrder(o)
	released, err := o.Cancel(cmd.Reason(), now)
	if err != nil {
		return asStateConflict(err)
	}

	if err = uow.OrderRepository().Update(storageCtx, o, expected); err != nil {
		return err
	}

	if released != nil {
		if _, err = uow.CapacityLedger().Adjust(storageCtx, *released, -1, ports.CapacityLimit{}); err != nil {
			return err
		}
	}

	if err = uow.Commit(storageCtx); err != nil {
		return err
	}

	log := h.logger.With(zap.String("order_id", o.ID().String()), zap.String("reason", o.CancellationReason()))
	if released == nil {
		log.Info("order cancelled")
		return nil
	}

	log.Info("order cancelled, courier released", zap.String("courier_id", released.String()))
	h.events.send(ctx, ports.DispatchEvent{
		OrderID:    o.ID(),
		SellerID:   o.SellerID(),
		CourierID:  released,
		Outcome:    ports.OutcomeReleased,
		Reason:     o.CancellationReason(),
		OccurredAt: now,
	})
	return nil
}
