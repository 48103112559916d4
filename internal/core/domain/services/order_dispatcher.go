package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
)

// ErrNoEligibleCourier means the pool was empty after filtering. It is an
// expected outcome: the order stays ready and the caller decides when to retry.
var ErrNoEligibleCourier = errors.New("no eligible courier")

// RankedCandidate is a scored Candidate.
type RankedCandidate struct {
	Candidate
	Score ScoreBreakdown
}

// OrderDispatcher picks the courier for a ready order. It is the only place
// the pool, the scorer and the order state machine meet; automatic dispatch,
// the candidate listing and the seller auto-assign all go through it.
type OrderDispatcher struct {
	pool   CourierPool
	scorer CourierScorer
}

func NewOrderDispatcher(maxConcurrent int) OrderDispatcher {
	return OrderDispatcher{
		pool:   NewCourierPool(maxConcurrent),
		scorer: NewCourierScorer(maxConcurrent),
	}
}

func (d OrderDispatcher) MaxConcurrent() int {
	return d.pool.MaxConcurrent()
}

// Rank returns the eligible couriers ordered by descending score. Equal
// scores keep the pool order, so the closer courier wins a tie.
func (d OrderDispatcher) Rank(couriers []*courier.Courier, origin *kernel.Location) []RankedCandidate {
	candidates := d.pool.FindEligible(couriers, origin)

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, RankedCandidate{Candidate: c, Score: d.scorer.Breakdown(c)})
	}

	slices.SortStableFunc(ranked, func(a, b RankedCandidate) int {
		switch {
		case a.Score.Total > b.Score.Total:
			return -1
		case a.Score.Total < b.Score.Total:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// Dispatch ranks the couriers and binds the winner to the order in memory.
// See Assign.
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	couriers []*courier.Courier,
	origin *kernel.Location,
	now time.Time,
) (RankedCandidate, error) {
	if err := checkAwaitingDispatch(o); err != nil {
		return RankedCandidate{}, err
	}
	return d.Assign(o, d.Rank(couriers, origin), now)
}

// Assign binds the head of an already ranked list to the order: the order
// moves to assigned and the courier's in-flight counter grows by one. Nothing
// is touched when the list is empty.
func (d OrderDispatcher) Assign(o *order.Order, ranked []RankedCandidate, now time.Time) (RankedCandidate, error) {
	if err := checkAwaitingDispatch(o); err != nil {
		return RankedCandidate{}, err
	}
	if len(ranked) == 0 {
		return RankedCandidate{}, ErrNoEligibleCourier
	}

	winner := ranked[0]
	if err := winner.Courier.TakeDelivery(d.MaxConcurrent()); err != nil {
		return RankedCandidate{}, err
	}
	if err := o.AssignCourier(winner.Courier.ID(), now); err != nil {
		winner.Courier.ReleaseDelivery()
		return RankedCandidate{}, err
	}

	return winner, nil
}

func checkAwaitingDispatch(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsAwaitingDispatch() {
		return fmt.Errorf("%w: order %s is %s", order.ErrInvalidTransition, o.ID(), o.Status())
	}
	return nil
}
