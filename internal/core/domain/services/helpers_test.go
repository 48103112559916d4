package services_test

import (
	"math"
	"testing"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var sellerOrigin = mustLocation(41.0, 29.0)

func mustLocation(lat, lon float64) kernel.Location {
	loc, err := kernel.NewLocation(lat, lon)
	if err != nil {
		panic(err)
	}
	return loc
}

// kmNorthOf returns a point exactly km kilometers due north of origin.
func kmNorthOf(origin kernel.Location, km float64) *kernel.Location {
	loc := mustLocation(origin.Latitude()+km/(kernel.EarthRadiusKm*math.Pi/180), origin.Longitude())
	return &loc
}

type courierSpec struct {
	online  bool
	status  courier.Status
	current int
	total   int
	rating  float64
	loc     *kernel.Location
}

func activeCourier() courierSpec {
	return courierSpec{online: true, status: courier.Active, rating: courier.DefaultRating}
}

func newCourier(t *testing.T, s courierSpec) *courier.Courier {
	t.Helper()
	rating := s.rating
	c, err := courier.RestoreCourier(courier.Snapshot{
		ID:                kernel.NewUUID(),
		Name:              "courier",
		IsOnline:          s.online,
		Status:            s.status,
		CurrentDeliveries: s.current,
		TotalDeliveries:   s.total,
		Rating:            &rating,
		Location:          s.loc,
	})
	require.NoError(t, err)
	return c
}
