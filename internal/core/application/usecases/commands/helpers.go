package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// eventSender delivers dispatch events after commit. Failures are logged and
// swallowed; the caller's context cancellation does not cut a send short.
type eventSender struct {
	notifier ports.Notifier
	logger   *zap.Logger
	timeout  time.Duration
}

func (s eventSender) send(ctx context.Context, event ports.DispatchEvent) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := withStorageTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.notifier.NotifyDispatch(ctx, event); err != nil {
		s.logger.Warn("dispatch notification failed",
			zap.String("order_id", event.OrderID.String()),
			zap.String("outcome", string(event.Outcome)),
			zap.Error(err),
		)
	}
}

func withStorageTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// asStateConflict reports a rejected order transition as an order state
// conflict so callers see one error for "order moved on".
func asStateConflict(err error) error {
	if errors.Is(err, order.ErrInvalidTransition) && !errors.Is(err, ports.ErrOrderStateConflict) {
		return fmt.Errorf("%w: %w", ports.ErrOrderStateConflict, err)
	}
	return err
}
