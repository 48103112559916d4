package services_test

import (
	"math/rand/v2"
	"testing"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCourierScorer_WeightedScenario(t *testing.T) {
	scorer := services.NewCourierScorer(courier.MaxConcurrentDeliveries)

	c1 := activeCourier()
	c1.current, c1.rating, c1.total = 2, 4.8, 150
	c2 := activeCourier()
	c2.current, c2.rating, c2.total = 0, 3.0, 10

	b1 := scorer.Breakdown(services.Candidate{Courier: newCourier(t, c1), DistanceKm: 1.0})
	b2 := scorer.Breakdown(services.Candidate{Courier: newCourier(t, c2), DistanceKm: 8.0})

	assert.InDelta(t, 90, b1.Distance, 1e-9)
	assert.InDelta(t, 96, b1.Performance, 1e-9)
	assert.InDelta(t, 60, b1.Workload, 1e-9)
	assert.InDelta(t, 100, b1.Experience, 1e-9)
	assert.InDelta(t, 86.8, b1.Total, 1e-9)

	assert.InDelta(t, 20, b2.Distance, 1e-9)
	assert.InDelta(t, 60, b2.Performance, 1e-9)
	assert.InDelta(t, 100, b2.Workload, 1e-9)
	assert.InDelta(t, 10, b2.Experience, 1e-9)
	assert.InDelta(t, 47, b2.Total, 1e-9)
}

func TestCourierScorer_UnknownDistanceScoresZero(t *testing.T) {
	scorer := services.NewCourierScorer(courier.MaxConcurrentDeliveries)

	b := scorer.Breakdown(services.Candidate{Courier: newCourier(t, activeCourier()), DistanceKm: services.UnknownDistanceKm})

	assert.Zero(t, b.Distance)
	assert.InDelta(t, 100*services.PerformanceWeight+100*services.WorkloadWeight, b.Total, 1e-9)
}

func TestCourierScorer_WorkloadAtOrOverCap(t *testing.T) {
	scorer := services.NewCourierScorer(courier.MaxConcurrentDeliveries)

	for _, current := range []int{5, 6, 9} {
		s := activeCourier()
		s.current = current
		b := scorer.Breakdown(services.Candidate{Courier: newCourier(t, s)})

		assert.Zero(t, b.Workload, current)
	}
}

func TestCourierScorer_Bounds(t *testing.T) {
	scorer := services.NewCourierScorer(courier.MaxConcurrentDeliveries)
	rng := rand.New(rand.NewPCG(7, 11))

	for range 2000 {
		s := activeCourier()
		s.current = rng.IntN(8)
		s.total = rng.IntN(1000)
		s.rating = rng.Float64() * courier.MaxRating
		km := rng.Float64() * 1200

		score := scorer.Score(services.Candidate{Courier: newCourier(t, s), DistanceKm: km})

		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}

	best := activeCourier()
	best.total = 100
	assert.InDelta(t, 100, scorer.Score(services.Candidate{Courier: newCourier(t, best)}), 1e-9)
}

func TestCourierScorer_DistanceMonotonicity(t *testing.T) {
	scorer := services.NewCourierScorer(courier.MaxConcurrentDeliveries)
	c := newCourier(t, activeCourier())
	rng := rand.New(rand.NewPCG(3, 5))

	for range 2000 {
		a, b := rng.Float64()*20, rng.Float64()*20
		if a > b {
			a, b = b, a
		}

		closer := scorer.Score(services.Candidate{Courier: c, DistanceKm: a})
		farther := scorer.Score(services.Candidate{Courier: c, DistanceKm: b})

		assert.GreaterOrEqual(t, closer, farther, "%f vs %f", a, b)
	}
}
