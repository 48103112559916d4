package notifier

import (
	"context"
	"errors"

	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// Fanout sends every event to all wrapped notifiers and joins their errors.
type Fanout []ports.Notifier

func (f Fanout) NotifyDispatch(ctx context.Context, event ports.DispatchEvent) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyDispatch(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier only writes events to the log. It is the fallback when no
// broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) LogNotifier {
	return LogNotifier{logger: logger.Named("notifier")}
}

func (n LogNotifier) NotifyDispatch(_ context.Context, event ports.DispatchEvent) error {
	fields := []zap.Field{
		zap.String("order_id", event.OrderID.String()),
		zap.String("outcome", string(event.Outcome)),
		zap.Int("candidates", event.Candidates),
	}
	if event.CourierID != nil {
		fields = append(fields, zap.String("courier_id", event.CourierID.String()), zap.Float64("score", event.Score))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	n.logger.Info("dispatch event", fields...)
	return nil
}
