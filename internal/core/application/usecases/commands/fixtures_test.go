package commands_test

import (
	"testing"
	"time"

	"fooddispatch/internal/adapters/out/memory"
	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"github.com/stretchr/testify/require"
)

// memoryFactory adapts the memory driver to the command-level factories.
type memoryFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f memoryFactory) Create() commands.UoW { return f.factory.Create() }

type memoryDispatchFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f memoryDispatchFactory) Create() commands.DispatchUoW { return f.factory.Create() }

type memoryOrderFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f memoryOrderFactory) Create() commands.OrderUoW { return f.factory.Create() }

type memoryCourierFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f memoryCourierFactory) Create() commands.CourierUoW { return f.factory.Create() }

type fixture struct {
	t       *testing.T
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	return &fixture{t: t, store: store, factory: memory.NewUnitOfWorkFactory(store)}
}

func (f *fixture) uow() commands.UoWFactory {
	return memoryFactory{factory: f.factory}
}

func (f *fixture) dispatch() commands.DispatchUoWFactory {
	return memoryDispatchFactory{factory: f.factory}
}

func (f *fixture) orders() commands.OrderUoWFactory {
	return memoryOrderFactory{factory: f.factory}
}

func (f *fixture) couriers() commands.CourierUoWFactory {
	return memoryCourierFactory{factory: f.factory}
}

type courierSpec struct {
	name     string
	offline  bool
	current  int
	total    int
	rating   float64
	location *kernel.Location
}

func (f *fixture) addCourier(spec courierSpec) *courier.Courier {
	f.t.Helper()
	ctx := f.t.Context()

	c, err := courier.NewCourier(kernel.NewUUID(), spec.name, "+90 555 010 10 10")
	require.NoError(f.t, err)
	if !spec.offline {
		require.NoError(f.t, c.GoOnline())
	}
	if spec.rating > 0 {
		require.NoError(f.t, c.UpdateRating(spec.rating))
	}
	if spec.location != nil {
		require.NoError(f.t, c.UpdateLocation(*spec.location))
	}

	uow := f.factory.Create()
	require.NoError(f.t, uow.CourierRepository().Add(ctx, c))
	for range spec.current {
		_, err = uow.CapacityLedger().Adjust(ctx, c.ID(), +1, ports.CapacityLimit{})
		require.NoError(f.t, err)
	}
	for range spec.total {
		_, err = uow.CapacityLedger().Adjust(ctx, c.ID(), +1, ports.CapacityLimit{})
		require.NoError(f.t, err)
		_, err = uow.CapacityLedger().Complete(ctx, c.ID())
		require.NoError(f.t, err)
	}

	return f.courier(c.ID())
}

func (f *fixture) courier(id kernel.UUID) *courier.Courier {
	f.t.Helper()
	c, err := f.factory.Create().CourierRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) order(id kernel.UUID) *order.Order {
	f.t.Helper()
	o, err := f.factory.Create().OrderRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return o
}

// addOrder stores a new order moved forward to status.
func (f *fixture) addOrder(status order.Status, seller *kernel.Location) *order.Order {
	f.t.Helper()
	ctx := f.t.Context()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Bagdat Cd. 210", 54000, 1800, time.Now())
	require.NoError(f.t, err)

	steps := []func() error{o.Confirm, o.StartPreparing, o.MarkReady}
	for _, step := range steps {
		if o.Status() == status {
			break
		}
		require.NoError(f.t, step())
	}
	require.Equal(f.t, status, o.Status(), "addOrder only goes up to ready")

	require.NoError(f.t, f.factory.Create().OrderRepository().Add(ctx, o))
	if seller != nil {
		require.NoError(f.t, f.store.PutSeller(ctx, o.SellerID(), seller))
	}
	return o
}

// assign binds c to o directly in storage, as a committed dispatch would.
func (f *fixture) assign(o *order.Order, c *courier.Courier) {
	f.t.Helper()
	ctx := f.t.Context()

	uow := f.factory.Create()
	require.NoError(f.t, uow.Begin(ctx))
	expected := ports.ExpectOrder(o)
	require.NoError(f.t, o.AssignCourier(c.ID(), time.Now()))
	require.NoError(f.t, uow.OrderRepository().Update(ctx, o, expected))
	_, err := uow.CapacityLedger().Adjust(ctx, c.ID(), +1, ports.CapacityLimit{})
	require.NoError(f.t, err)
	require.NoError(f.t, uow.Commit(ctx))
}

func location(t *testing.T, lat, lon float64) *kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return &loc
}

// kmNorth returns a point roughly km kilometres north of origin.
func kmNorth(t *testing.T, origin *kernel.Location, km float64) *kernel.Location {
	t.Helper()
	const kmPerDegree = 2 * 3.141592653589793 * kernel.EarthRadiusKm / 360
	return location(t, origin.Latitude()+km/kmPerDegree, origin.Longitude())
}

func testPolicy() commands.DispatchPolicy {
	p := commands.DefaultDispatchPolicy()
	p.RetryDelay = time.Millisecond
	p.NotifyTimeout = time.Second
	return p
}

var testNow = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

func onlineCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, "+90 555 020 20 20")
	require.NoError(t, err)
	require.NoError(t, c.GoOnline())
	return c
}

func readyOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Moda Cd. 1", 1000, 100, testNow)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.MarkReady())
	return o
}
