package postgres_test

import (
	"context"
	"database/sql"
	"time"

	postgres_adapter "fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"github.com/lib/pq"
)

func (suite *StorageIntegrationTestSuite) TestCourierRepository_AddGetUpdate() {
	ctx := context.Background()
	repo := suite.factory.Create().CourierRepository()

	c := suite.newCourier("Ayse", true)
	loc, err := kernel.NewLocation(41.0082, 28.9784)
	suite.Require().NoError(err)
	suite.Require().NoError(c.UpdateLocation(loc))
	suite.Require().NoError(repo.Add(ctx, c))

	suite.Require().Error(repo.Add(ctx, c), "duplicate id")

	_, err = suite.factory.Create().CapacityLedger().Adjust(ctx, c.ID(), +1, ports.CapacityLimit{Max: 5})
	suite.Require().NoError(err)

	stale, err := repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("Ayse", stale.Name())
	suite.True(stale.IsOnline())
	suite.Require().NotNil(stale.Location())
	suite.True(loc.IsEqual(*stale.Location()))

	// A profile update must not write the counters it read.
	stale.GoOffline()
	suite.Require().NoError(stale.UpdateRating(4.2))
	suite.Require().NoError(repo.Update(ctx, stale))

	got, err := repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.False(got.IsOnline())
	suite.Equal(courier.Offline, got.Status())
	suite.InDelta(4.2, got.Rating(), 1e-9)
	suite.Equal(1, got.CurrentDeliveries())
}

func (suite *StorageIntegrationTestSuite) TestCourierRepository_MissingCourier() {
	ctx := context.Background()
	repo := suite.factory.Create().CourierRepository()

	_, err := repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().ErrorIs(repo.Update(ctx, suite.newCourier("Ghost", false)), errs.ErrObjectNotFound)
}

func (suite *StorageIntegrationTestSuite) TestCourierRepository_GetAllEligible() {
	ctx := context.Background()
	busy := suite.addCourier("Busy", true, 5)
	free := suite.addCourier("Free", true, 4)
	suite.addCourier("Offline", false, 0)

	deactivated := suite.addCourier("Deactivated", true, 0)
	deactivated.Deactivate()
	suite.Require().NoError(suite.factory.Create().CourierRepository().Update(ctx, deactivated))

	eligible, err := suite.factory.Create().CourierRepository().GetAllEligible(ctx, 5)
	suite.Require().NoError(err)
	suite.Require().Len(eligible, 1)
	suite.Equal(free.ID(), eligible[0].ID())

	all, err := suite.factory.Create().CourierRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 4)
	suite.Equal(busy.ID(), all[0].ID(), "sorted by name")
}

func (suite *StorageIntegrationTestSuite) TestCapacityLedger_Adjust() {
	ctx := context.Background()
	ledger := suite.factory.Create().CapacityLedger()
	limit := ports.CapacityLimit{Max: 5, RequireAvailable: true}

	full := suite.addCourier("Full", true, 5)
	_, err := ledger.Adjust(ctx, full.ID(), +1, limit)
	suite.Require().ErrorIs(err, ports.ErrCapacityConflict)
	suite.Equal(5, suite.currentDeliveries(full.ID()))

	n, err := ledger.Adjust(ctx, full.ID(), +1, ports.CapacityLimit{})
	suite.Require().NoError(err, "uncapped increment")
	suite.Equal(6, n)

	offline := suite.addCourier("Offline", false, 0)
	_, err = ledger.Adjust(ctx, offline.ID(), +1, limit)
	suite.Require().ErrorIs(err, ports.ErrCapacityConflict)
	n, err = ledger.Adjust(ctx, offline.ID(), +1, ports.CapacityLimit{Max: 5})
	suite.Require().NoError(err)
	suite.Equal(1, n)

	n, err = ledger.Adjust(ctx, offline.ID(), -1, limit)
	suite.Require().NoError(err)
	suite.Equal(0, n)
	n, err = ledger.Adjust(ctx, offline.ID(), -1, limit)
	suite.Require().NoError(err, "decrement floors at zero")
	suite.Equal(0, n)

	_, err = ledger.Adjust(ctx, kernel.NewUUID(), +1, limit)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StorageIntegrationTestSuite) TestCapacityLedger_Complete() {
	ctx := context.Background()
	c := suite.addCourier("Ayse", true, 2)

	n, err := suite.factory.Create().CapacityLedger().Complete(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(1, n)

	got, err := suite.factory.Create().CourierRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(1, got.CurrentDeliveries())
	suite.Equal(1, got.TotalDeliveries())
}

func (suite *StorageIntegrationTestSuite) TestOrderRepository_ConditionalUpdate() {
	ctx := context.Background()
	o := suite.addOrder(true)
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	winner, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	loser, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	expected := ports.ExpectOrder(winner)
	suite.Require().NoError(winner.AssignCourier(first, time.Now()))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, winner, expected))

	expected = ports.ExpectOrder(loser)
	suite.Require().NoError(loser.AssignCourier(second, time.Now()))
	err = suite.factory.Create().OrderRepository().Update(ctx, loser, expected)
	suite.Require().ErrorIs(err, ports.ErrOrderStateConflict)

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, stored.Status())
	suite.Require().NotNil(stored.CourierID())
	suite.Equal(first, *stored.CourierID())
	suite.Require().NotNil(stored.AssignedAt())

	missing := suite.newOrder(false)
	err = suite.factory.Create().OrderRepository().Update(ctx, missing, ports.ExpectOrder(missing))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StorageIntegrationTestSuite) TestOrderRepository_Listings() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	older := suite.addOrder(true)
	suite.addOrder(false)
	newer := suite.addOrder(true)

	taken := suite.addOrder(true)
	expected := ports.ExpectOrder(taken)
	suite.Require().NoError(taken.AssignCourier(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(repo.Update(ctx, taken, expected))

	cancelled := suite.addOrder(false)
	expected = ports.ExpectOrder(cancelled)
	_, err := cancelled.Cancel("customer request", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Update(ctx, cancelled, expected))

	ready, err := repo.GetAllReadyUnassigned(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(ready, 2)
	suite.Equal(older.ID(), ready[0].ID())
	suite.Equal(newer.ID(), ready[1].ID())

	limited, err := repo.GetAllReadyUnassigned(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)

	active, err := repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(active, 4)
}

func (suite *StorageIntegrationTestSuite) TestEarningRepository_AddAndList() {
	ctx := context.Background()
	c := suite.addCourier("Ayse", true, 0)
	repo := suite.factory.Create().EarningRepository()

	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	earning, err := courier.NewDeliveryEarning(kernel.NewUUID(), c.ID(), kernel.NewUUID(), 1700, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, earning))

	duplicate, err := courier.NewDeliveryEarning(kernel.NewUUID(), c.ID(), earning.OrderID(), 1700, createdAt)
	suite.Require().NoError(err)
	suite.Require().Error(repo.Add(ctx, duplicate), "one delivery fee per order")

	list, err := repo.GetAllByCourier(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal(int64(1700), list[0].Amount())
	suite.Equal(earning.FeeType(), list[0].FeeType())
	suite.Equal(earning.Status(), list[0].Status())
	suite.True(createdAt.Equal(list[0].CreatedAt()))
}

func (suite *StorageIntegrationTestSuite) TestSellerLocationProvider() {
	ctx := context.Background()

	loc, err := suite.sellers.GetSellerLocation(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Nil(loc, "unknown seller")

	sellerID := kernel.NewUUID()
	suite.Require().NoError(suite.sellers.Save(ctx, sellerID, "Kadikoy Doner", nil))
	loc, err = suite.sellers.GetSellerLocation(ctx, sellerID)
	suite.Require().NoError(err)
	suite.Nil(loc, "seller without coordinates")

	want, err := kernel.NewLocation(40.9903, 29.0290)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.sellers.Save(ctx, sellerID, "Kadikoy Doner", &want))
	loc, err = suite.sellers.GetSellerLocation(ctx, sellerID)
	suite.Require().NoError(err)
	suite.Require().NotNil(loc)
	suite.True(want.IsEqual(*loc))
}

func (suite *StorageIntegrationTestSuite) TestOrderReadyTrigger_Notifies() {
	ctx := context.Background()

	listener := pq.NewListener(suite.dsn, 10*time.Millisecond, time.Second, nil)
	defer listener.Close()
	suite.Require().NoError(listener.Listen(postgres_adapter.OrderReadyChannel))

	o := suite.addOrder(false)
	expected := ports.ExpectOrder(o)
	suite.Require().NoError(o.Confirm())
	suite.Require().NoError(o.StartPreparing())
	suite.Require().NoError(o.MarkReady())
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, o, expected))

	select {
	case n := <-listener.Notify:
		suite.Require().NotNil(n)
		suite.Equal(o.ID().String(), n.Extra)
	case <-time.After(5 * time.Second):
		suite.Fail("no notification for ready order")
	}
}

func (suite *StorageIntegrationTestSuite) TestMigrate_CheckConstraintRejectsNegativeCounter() {
	c := suite.addCourier("Ayse", true, 0)
	err := suite.db.Exec("UPDATE couriers SET current_deliveries = -1 WHERE id = ?", c.ID().Bytes()).Error
	suite.Require().Error(err)

	var count sql.NullInt64
	suite.Require().NoError(suite.db.Raw("SELECT current_deliveries FROM couriers WHERE id = ?", c.ID().Bytes()).Scan(&count).Error)
	suite.Equal(int64(0), count.Int64)
}
