package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/services"
	"fooddispatch/internal/core/ports"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// AssignBestCourierCommandHandler is the automatic dispatch path.
//
// Candidate selection (order, origin, pool, scoring) reads outside any
// transaction. The assignment itself is one unit of work holding two
// conditional writes: the order must still be ready without a courier, and
// the winner must still be available and below the cap. Losing the capacity
// race rolls back and restarts selection, up to MaxCapacityRetries times;
// after that the order is left ready, exactly as if no courier was eligible.
//
// A nil courier with a nil error means nobody could take the order.
//
// Example:
//
//	cmd, _ := commands.NewAssignBestCourierCommand(orderID)
//	winner, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ports.ErrOrderStateConflict):
//	    // cancelled or dispatched elsewhere meanwhile
//	case err != nil:
//	    // storage trouble, try again later
//	case winner == nil:
//	    // no courier available
//	}
type AssignBestCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	sellers    ports.SellerLocationProvider
	dispatcher services.OrderDispatcher
	policy     DispatchPolicy
	events     eventSender
	logger     *zap.Logger
	now        func() time.Time
}

func NewAssignBestCourierCommandHandler(
	uowFactory DispatchUoWFactory,
	sellers ports.SellerLocationProvider,
	notifier ports.Notifier,
	policy DispatchPolicy,
	logger *zap.Logger,
) AssignBestCourierCommandHandler {
	logger = logger.Named("dispatch")
	return AssignBestCourierCommandHandler{
		uowFactory: uowFactory,
		sellers:    sellers,
		dispatcher: services.NewOrderDispatcher(policy.MaxConcurrentDeliveries),
		policy:     policy,
		events:     eventSender{notifier: notifier, logger: logger, timeout: policy.NotifyTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

type dispatchAttempt struct {
	sellerID   kernel.UUID
	candidates int
	winner     *services.RankedCandidate
}

func (h AssignBestCourierCommandHandler) Handle(ctx context.Context, cmd AssignBestCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		result   dispatchAttempt
		attempts int
	)

	backoff := retry.WithMaxRetries(h.policy.MaxCapacityRetries, retry.NewConstant(retryDelay(h.policy.RetryDelay)))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		var err error
		result, err = h.attempt(ctx, cmd)
		if errors.Is(err, ports.ErrCapacityConflict) {
			h.logger.Info("lost capacity race, reselecting",
				zap.String("order_id", cmd.OrderID().String()),
				zap.Int("attempt", attempts),
			)
			return retry.RetryableError(err)
		}
		return err
	})

	log := h.logger.With(
		zap.String("order_id", cmd.OrderID().String()),
		zap.Int("candidates", result.candidates),
		zap.Int("attempts", attempts),
	)
	event := ports.DispatchEvent{
		OrderID:    cmd.OrderID(),
		SellerID:   result.sellerID,
		Candidates: result.candidates,
		OccurredAt: h.now(),
	}

	switch {
	case errors.Is(err, ports.ErrCapacityConflict):
		log.Warn("dispatch gave up after capacity conflicts", zap.String("courier_id", "none"))
		event.Outcome = ports.OutcomeNoCourier
		event.Reason = "capacity conflicts exhausted retries"
		h.events.send(ctx, event)
		return nil, nil

	case err != nil:
		log.Warn("dispatch failed", zap.String("courier_id", "none"), zap.Error(err))
		event.Outcome = ports.OutcomeFailed
		event.Reason = err.Error()
		h.events.send(ctx, event)
		return nil, err

	case result.winner == nil:
		log.Info("no eligible courier", zap.String("courier_id", "none"))
		event.Outcome = ports.OutcomeNoCourier
		h.events.send(ctx, event)
		return nil, nil
	}

	winnerID := result.winner.Courier.ID()
	log.Info("courier assigned",
		zap.String("courier_id", winnerID.String()),
		zap.Float64("score", result.winner.Score.Total),
		zap.Float64("distance_km", result.winner.DistanceKm),
	)
	event.Outcome = ports.OutcomeAssigned
	event.CourierID = &winnerID
	event.Score = result.winner.Score.Total
	h.events.send(ctx, event)

	return result.winner.Courier, nil
}

func (h AssignBestCourierCommandHandler) attempt(ctx context.Context, cmd AssignBestCourierCommand) (dispatchAttempt, error) {
	ctx, cancel := withStorageTimeout(ctx, h.policy.StorageTimeout)
	defer cancel()

	var result dispatchAttempt
	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return result, err
	}
	result.sellerID = o.SellerID()

	if !o.IsAwaitingDispatch() {
		return result, fmt.Errorf("%w: order %s is %s", ports.ErrOrderStateConflict, o.ID(), o.Status())
	}

	origin := cmd.SellerLocation()
	if origin == nil {
		if origin, err = h.sellers.GetSellerLocation(ctx, o.SellerID()); err != nil {
			return result, err
		}
	}

	pool, err := uow.CourierRepository().GetAllEligible(ctx, h.dispatcher.MaxConcurrent())
	if err != nil {
		return result, err
	}

	ranked := h.dispatcher.Rank(pool, origin)
	result.candidates = len(ranked)

	expected := ports.ExpectOrder(o)
	winner, err := h.dispatcher.Assign(o, ranked, h.now())
	if errors.Is(err, services.ErrNoEligibleCourier) {
		return result, nil
	}
	if err != nil {
		return result, asStateConflict(err)
	}

	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return result, err
	}

	limit := ports.CapacityLimit{Max: h.dispatcher.MaxConcurrent(), RequireAvailable: true}
	if _, err = uow.CapacityLedger().Adjust(ctx, winner.Courier.ID(), +1, limit); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.winner = &winner
	return result, nil
}

func retryDelay(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Millisecond
	}
	return d
}
