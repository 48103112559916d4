package commands

import (
	"context"

	"fooddispatch/internal/core/domain/model/courier"

	"go.uber.org/zap"
)

type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
	logger     *zap.Logger
}

func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory, logger *zap.Logger) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{uowFactory: uowFactory, logger: logger.Named("couriers")}
}

func (h SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = apply(c, cmd.Action()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("courier availability changed",
		zap.String("courier_id", c.ID().String()),
		zap.String("action", string(cmd.Action())),
		zap.Bool("is_online", c.IsOnline()),
		zap.String("status", c.Status().String()),
	)
	return nil
}

func apply(c *courier.Courier, action AvailabilityAction) error {
	switch action {
	case GoOnline:
		return c.GoOnline()
	case GoOffline:
		c.GoOffline()
	case Activate:
		c.Activate()
	case Deactivate:
		c.Deactivate()
	default:
		return ErrUnknownAvailabilityAction
	}
	return nil
}
