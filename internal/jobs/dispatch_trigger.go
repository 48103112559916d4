package jobs

import (
	"context"
	"errors"
	"sync"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// Dispatcher runs one automatic dispatch attempt.
type Dispatcher interface {
	Handle(ctx context.Context, cmd commands.AssignBestCourierCommand) (*courier.Courier, error)
}

// DispatchTrigger turns "order is ready" signals from the seller panel, the
// LISTEN channel and the poll job into dispatch attempts. At most one attempt
// per order is in flight; duplicate requests while it runs are dropped.
type DispatchTrigger struct {
	dispatcher Dispatcher
	logger     *zap.Logger

	inFlight sync.Map
	wg       sync.WaitGroup

	// mu orders wg.Add against Stop so no attempt starts after Stop waits.
	mu      sync.Mutex
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewDispatchTrigger(dispatcher Dispatcher, logger *zap.Logger) *DispatchTrigger {
	ctx, cancel := context.WithCancel(context.Background())
	return &DispatchTrigger{
		dispatcher: dispatcher,
		logger:     logger.Named("dispatch_trigger"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// RequestDispatch starts an attempt in the background and returns at once.
// The attempt outlives ctx; Stop cancels it.
func (t *DispatchTrigger) RequestDispatch(_ context.Context, orderID kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	if _, busy := t.inFlight.LoadOrStore(orderID, struct{}{}); busy {
		t.logger.Debug("dispatch already in flight", zap.String("order_id", orderID.String()))
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.inFlight.Delete(orderID)
		t.run(orderID)
	}()
}

// InFlight reports whether an attempt for orderID is running.
func (t *DispatchTrigger) InFlight(orderID kernel.UUID) bool {
	_, ok := t.inFlight.Load(orderID)
	return ok
}

// Wait blocks until every started attempt has finished.
func (t *DispatchTrigger) Wait() {
	t.wg.Wait()
}

// Stop refuses new requests, cancels running attempts and waits for them.
func (t *DispatchTrigger) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
}

func (t *DispatchTrigger) run(orderID kernel.UUID) {
	cmd, err := commands.NewAssignBestCourierCommand(orderID)
	if err != nil {
		t.logger.Error("invalid dispatch request", zap.String("order_id", orderID.String()), zap.Error(err))
		return
	}

	_, err = t.dispatcher.Handle(t.ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrOrderStateConflict), errors.Is(err, context.Canceled):
		t.logger.Debug("dispatch skipped", zap.String("order_id", orderID.String()), zap.Error(err))
	default:
		t.logger.Error("dispatch failed", zap.String("order_id", orderID.String()), zap.Error(err))
	}
}
