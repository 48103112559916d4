package commands

import (
	"context"
	"fmt"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// AssignCourierManuallyCommandHandler binds an operator-chosen courier to a
// ready order, or moves an assigned order to another courier. Eligibility is
// not re-checked; whether the concurrency cap still applies is decided by
// DispatchPolicy.ManualAssignEnforcesCapacity.
type AssignCourierManuallyCommandHandler struct {
	uowFactory DispatchUoWFactory
	policy     DispatchPolicy
	events     eventSender
	logger     *zap.Logger
	now        func() time.Time
}

func NewAssignCourierManuallyCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.Notifier,
	policy DispatchPolicy,
	logger *zap.Logger,
) AssignCourierManuallyCommandHandler {
	logger = logger.Named("dispatch")
	return AssignCourierManuallyCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     eventSender{notifier: notifier, logger: logger, timeout: policy.NotifyTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

func (h AssignCourierManuallyCommandHandler) Handle(ctx context.Context, cmd AssignCourierManuallyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	log := h.logger.With(
		zap.String("order_id", cmd.OrderID().String()),
		zap.String("courier_id", cmd.CourierID().String()),
		zap.Bool("capacity_enforced", h.policy.ManualAssignEnforcesCapacity),
	)

	event, changed, err := h.assign(ctx, cmd)
	if err != nil {
		log.Warn("manual assignment failed", zap.Error(err))
		return err
	}
	if !changed {
		log.Info("courier already assigned")
		return nil
	}

	log.Info("courier assigned manually", zap.String("outcome", string(event.Outcome)))
	h.events.send(ctx, event)
	return nil
}

func (h AssignCourierManuallyCommandHandler) assign(
	ctx context.Context,
	cmd AssignCourierManuallyCommand,
) (ports.DispatchEvent, bool, error) {
	ctx, cancel := withStorageTimeout(ctx, h.policy.StorageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.DispatchEvent{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.DispatchEvent{}, false, err
	}

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return ports.DispatchEvent{}, false, err
	}

	if current := o.CourierID(); current != nil && current.IsEqual(c.ID()) && o.Status() == order.Assigned {
		return ports.DispatchEvent{}, false, nil
	}

	now := h.now()
	courierID := c.ID()
	expected := ports.ExpectOrder(o)
	event := ports.DispatchEvent{
		OrderID:    o.ID(),
		SellerID:   o.SellerID(),
		CourierID:  &courierID,
		Outcome:    ports.OutcomeAssigned,
		OccurredAt: now,
	}

	var previous *kernel.UUID
	switch o.Status() {
	case order.Ready:
		err = o.AssignCourier(courierID, now)
	case order.Assigned:
		var prev kernel.UUID
		prev, err = o.Reassign(courierID, now)
		previous = &prev
		event.Outcome = ports.OutcomeReassigned
	default:
		err = fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status(), order.Assigned)
	}
	if err != nil {
		return ports.DispatchEvent{}, false, asStateConflict(err)
	}

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return ports.DispatchEvent{}, false, err
	}

	ledger := uow.CapacityLedger()
	if previous != nil {
		if _, err = ledger.Adjust(ctx, *previous, -1, ports.CapacityLimit{}); err != nil {
			return ports.DispatchEvent{}, false, err
		}
	}

	if _, err = ledger.Adjust(ctx, courierID, +1, ports.CapacityLimit{Max: h.policy.manualLimit()}); err != nil {
		return ports.DispatchEvent{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.DispatchEvent{}, false, err
	}

	return event, true, nil
}
