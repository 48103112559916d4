package cmd

import (
	"context"
	"fmt"

	"fooddispatch/internal/adapters/out/postgres/sellerrepo"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"

	"github.com/jaswdr/faker"
)

// Demo data is scattered around central Istanbul.
const (
	seedCenterLat = 41.0082
	seedCenterLon = 28.9784
	seedSpread    = 0.05
)

type SellerSaver interface {
	Save(ctx context.Context, sellerID kernel.UUID, name string, location *kernel.Location) error
}

type Seeder struct {
	uowFactory ports.UnitOfWorkFactory
	sellers    SellerSaver
	fake       faker.Faker
}

func NewSeeder(storage Storage) Seeder {
	return Seeder{
		uowFactory: storage.UoWFactory,
		sellers:    sellerrepo.NewGormSellerLocationProvider(storage.DB),
		fake:       faker.New(),
	}
}

// Seed creates online couriers with a location and a rating, then seller
// profiles. Couriers are written in one transaction.
func (s Seeder) Seed(ctx context.Context, couriers, sellers int) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	for i := 0; i < couriers; i++ {
		c, err := s.newCourier()
		if err != nil {
			return err
		}
		if err = uow.CourierRepository().Add(ctx, c); err != nil {
			return fmt.Errorf("seed courier %d: %w", i, err)
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for i := 0; i < sellers; i++ {
		location, err := s.location()
		if err != nil {
			return err
		}
		if err = s.sellers.Save(ctx, kernel.NewUUID(), s.fake.Company().Name(), &location); err != nil {
			return fmt.Errorf("seed seller %d: %w", i, err)
		}
	}
	return nil
}

func (s Seeder) newCourier() (*courier.Courier, error) {
	c, err := courier.NewCourier(kernel.NewUUID(), s.fake.Person().Name(), s.fake.Phone().Number())
	if err != nil {
		return nil, err
	}
	location, err := s.location()
	if err != nil {
		return nil, err
	}
	if err = c.UpdateLocation(location); err != nil {
		return nil, err
	}
	rating := float64(s.fake.IntBetween(30, 50)) / 10
	if err = c.UpdateRating(rating); err != nil {
		return nil, err
	}
	if err = c.GoOnline(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s Seeder) location() (kernel.Location, error) {
	return kernel.NewLocation(
		seedCenterLat+s.offset(),
		seedCenterLon+s.offset(),
	)
}

func (s Seeder) offset() float64 {
	return (s.fake.Float64(6, 0, 2) - 1) * seedSpread
}
