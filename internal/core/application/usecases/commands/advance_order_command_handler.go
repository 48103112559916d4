package commands

import (
	"context"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// DispatchRequester receives orders that just became ready.
type DispatchRequester interface {
	RequestDispatch(ctx context.Context, orderID kernel.UUID)
}

// AdvanceOrderCommandHandler applies seller and courier lifecycle steps. When
// an order becomes ready and auto-dispatch is enabled, dispatch is requested
// after commit.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatch   DispatchRequester
	policy     DispatchPolicy
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdvanceOrderCommandHandler builds the handler; dispatch may be nil.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatch DispatchRequester,
	policy DispatchPolicy,
	logger *zap.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		dispatch:   dispatch,
		policy:     policy,
		logger:     logger.Named("orders"),
		now:        time.Now,
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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

	expected := ports.ExpectOrder(o)
	if err = h.apply(o, cmd.Step()); err != nil {
		return asStateConflict(err)
	}

	if err = uow.OrderRepository().Update(storageCtx, o, expected); err != nil {
		return err
	}

	if err = uow.Commit(storageCtx); err != nil {
		return err
	}

	h.logger.Info("order advanced",
		zap.String("order_id", o.ID().String()),
		zap.String("from", expected.Status.String()),
		zap.String("to", o.Status().String()),
	)

	if o.Status() == order.Ready && h.policy.AutoDispatchOnReady && h.dispatch != nil {
		h.dispatch.RequestDispatch(ctx, o.ID())
	}

	return nil
}

func (h AdvanceOrderCommandHandler) apply(o *order.Order, step OrderStep) error {
	switch step {
	case StepConfirm:
		return o.Confirm()
	case StepStartPreparing:
		return o.StartPreparing()
	case StepMarkReady:
		return o.MarkReady()
	case StepPickUp:
		return o.PickUp(h.now())
	default:
		return ErrUnknownOrderStep
	}
}
