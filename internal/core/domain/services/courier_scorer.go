package services

import (
	"math"

	"fooddispatch/internal/core/domain/model/courier"
)

// Score weights. They sum to 1 so the total stays within [0, 100].
const (
	DistanceWeight    = 0.40
	PerformanceWeight = 0.30
	WorkloadWeight    = 0.20
	ExperienceWeight  = 0.10

	// DistancePenaltyPerKm drops the distance sub-score to zero at 10 km.
	DistancePenaltyPerKm = 10.0

	// ExperienceCap is the delivery count at which experience stops counting.
	ExperienceCap = 100
)

// ScoreBreakdown exposes each weighted factor's raw sub-score (0..100) and
// the weighted total, for operators choosing a courier by hand.
type ScoreBreakdown struct {
	Distance    float64
	Performance float64
	Workload    float64
	Experience  float64
	Total       float64
}

type CourierScorer struct {
	maxConcurrent int
}

func NewCourierScorer(maxConcurrent int) CourierScorer {
	if maxConcurrent <= 0 {
		maxConcurrent = courier.MaxConcurrentDeliveries
	}
	return CourierScorer{maxConcurrent: maxConcurrent}
}

// Score returns the weighted sum of the four sub-scores, in [0, 100].
func (s CourierScorer) Score(c Candidate) float64 {
	return s.Breakdown(c).Total
}

func (s CourierScorer) Breakdown(c Candidate) ScoreBreakdown {
	b := ScoreBreakdown{
		Distance:    distanceScore(c.DistanceKm),
		Performance: performanceScore(c.Courier.Rating()),
		Workload:    s.workloadScore(c.Courier.CurrentDeliveries()),
		Experience:  experienceScore(c.Courier.TotalDeliveries()),
	}

	b.Total = b.Distance*DistanceWeight +
		b.Performance*PerformanceWeight +
		b.Workload*WorkloadWeight +
		b.Experience*ExperienceWeight

	return b
}

func distanceScore(km float64) float64 {
	if math.IsNaN(km) || km < 0 {
		return 0
	}
	return math.Max(0, 100-km*DistancePenaltyPerKm)
}

func performanceScore(rating float64) float64 {
	if math.IsNaN(rating) {
		rating = courier.DefaultRating
	}
	rating = math.Min(math.Max(rating, 0), courier.MaxRating)
	return rating / courier.MaxRating * 100
}

func (s CourierScorer) workloadScore(current int) float64 {
	if current >= s.maxConcurrent {
		return 0
	}
	current = max(current, 0)
	return float64(s.maxConcurrent-current) / float64(s.maxConcurrent) * 100
}

func experienceScore(total int) float64 {
	return float64(min(max(total, 0), ExperienceCap)) / ExperienceCap * 100
}
