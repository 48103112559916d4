package commands

import (
	"context"
	"time"

	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

type RemoveAssignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
	policy     DispatchPolicy
	events     eventSender
	logger     *zap.Logger
	now        func() time.Time
}

func NewRemoveAssignmentCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.Notifier,
	policy DispatchPolicy,
	logger *zap.Logger,
) RemoveAssignmentCommandHandler {
	logger = logger.Named("dispatch")
	return RemoveAssignmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     eventSender{notifier: notifier, logger: logger, timeout: policy.NotifyTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Handle reports whether a courier was removed. An order without a courier
// is left untouched and yields false with no error.
func (h RemoveAssignmentCommandHandler) Handle(ctx context.Context, cmd RemoveAssignmentCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	storageCtx, cancel := withStorageTimeout(ctx, h.policy.StorageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(storageCtx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(storageCtx)
	}()

	o, err := uow.OrderRepository().Get(storageCtx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if o.CourierID() == nil {
		return false, nil
	}

	expected := ports.ExpectOrder(o)
	released, err := o.RemoveCourier()
	if err != nil {
		return false, asStateConflict(err)
	}

	if err = uow.OrderRepository().Update(storageCtx, o, expected); err != nil {
		return false, err
	}

	count, err := uow.CapacityLedger().Adjust(storageCtx, released, -1, ports.CapacityLimit{})
	if err != nil {
		return false, err
	}

	if err = uow.Commit(storageCtx); err != nil {
		return false, err
	}

	h.logger.Info("courier removed from order",
		zap.String("order_id", o.ID().String()),
		zap.String("courier_id", released.String()),
		zap.Int("current_deliveries", count),
	)
	h.events.send(ctx, ports.DispatchEvent{
		OrderID:    o.ID(),
		SellerID:   o.SellerID(),
		CourierID:  &released,
		Outcome:    ports.OutcomeUnassigned,
		OccurredAt: h.now(),
	})

	return true, nil
}
