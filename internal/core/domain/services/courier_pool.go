package services

import (
	"math"
	"slices"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
)

// UnknownDistanceKm is assigned when either the courier's or the origin's
// position is unknown. Such couriers stay in the pool but rank last on
// distance.
const UnknownDistanceKm = 999.0

// Candidate is a courier under consideration for one dispatch decision.
type Candidate struct {
	Courier    *courier.Courier
	DistanceKm float64
}

// CourierPool filters couriers down to the ones automatic dispatch may use
// and annotates them with their distance to the pickup origin.
type CourierPool struct {
	maxConcurrent int
}

func NewCourierPool(maxConcurrent int) CourierPool {
	if maxConcurrent <= 0 {
		maxConcurrent = courier.MaxConcurrentDeliveries
	}
	return CourierPool{maxConcurrent: maxConcurrent}
}

func (p CourierPool) MaxConcurrent() int {
	return p.maxConcurrent
}

// FindEligible keeps online, active couriers below the concurrency cap and
// returns them ordered by ascending distance (stable for equal distances).
// The storage query applies the same predicate; it is re-checked here because
// the rows may be stale. An empty result is a normal outcome.
func (p CourierPool) FindEligible(couriers []*courier.Courier, origin *kernel.Location) []Candidate {
	candidates := make([]Candidate, 0, len(couriers))

	for _, c := range couriers {
		if c.Validate() != nil || !c.IsEligible(p.maxConcurrent) {
			continue
		}

		candidates = append(candidates, Candidate{
			Courier:    c,
			DistanceKm: distanceFrom(origin, c.Location()),
		})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	return candidates
}

func distanceFrom(origin, location *kernel.Location) float64 {
	if origin == nil || location == nil {
		return UnknownDistanceKm
	}

	d := origin.DistanceTo(*location)
	if math.IsNaN(d) {
		return UnknownDistanceKm
	}
	return d
}
