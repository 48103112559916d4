package commands

import (
	"context"
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// DeliverOrderCommandHandler completes an order. In one unit of work it marks
// the order delivered, frees the courier's capacity, counts the delivery and
// records the courier fee as a pending earning.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     DispatchPolicy
	logger     *zap.Logger
	now        func() time.Time
}

func NewDeliverOrderCommandHandler(uowFactory UoWFactory, policy DispatchPolicy, logger *zap.Logger) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.Named("orders"),
		now:        time.Now,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, cancel := withStorageTimeout(ctx, h.policy.StorageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.now()
	expected := ports.ExpectOrder(o)
	courierID, err := o.Deliver(now)
	if err != nil {
		return asStateConflict(err)
	}

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return err
	}

	if _, err = uow.CapacityLedger().Complete(ctx, courierID); err != nil {
		return err
	}

	earning, err := courier.NewDeliveryEarning(kernel.NewUUID(), courierID, o.ID(), o.CourierFee(), now)
	if err != nil {
		return err
	}

	if err = uow.EarningRepository().Add(ctx, earning); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order delivered",
		zap.String("order_id", o.ID().String()),
		zap.String("courier_id", courierID.String()),
		zap.Int64("courier_fee", o.CourierFee()),
	)
	return nil
}
