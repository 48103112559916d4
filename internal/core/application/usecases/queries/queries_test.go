package queries_test

import (
	"testing"
	"time"

	"fooddispatch/internal/adapters/out/memory"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/domain/services"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.factory = memory.NewUnitOfWorkFactory(suite.store)
}

func (suite *QueriesTestSuite) addCourier(name string, online bool, location *kernel.Location) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), name, "+90 555 030 30 30")
	suite.Require().NoError(err)
	if online {
		suite.Require().NoError(c.GoOnline())
	}
	if location != nil {
		suite.Require().NoError(c.UpdateLocation(*location))
	}
	suite.Require().NoError(suite.factory.Create().CourierRepository().Add(suite.T().Context(), c))
	return c
}

func (suite *QueriesTestSuite) addOrder(createdAt time.Time, ready bool) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Moda Cd. 5", 22000, 1200, createdAt)
	suite.Require().NoError(err)
	if ready {
		suite.Require().NoError(o.Confirm())
		suite.Require().NoError(o.StartPreparing())
		suite.Require().NoError(o.MarkReady())
	}
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(suite.T().Context(), o))
	return o
}

func (suite *QueriesTestSuite) location(lat, lon float64) *kernel.Location {
	loc, err := kernel.NewLocation(lat, lon)
	suite.Require().NoError(err)
	return &loc
}

func (suite *QueriesTestSuite) TestGetAllCouriers_OrderedByName() {
	suite.addCourier("Zeynep", true, nil)
	suite.addCourier("Ali", false, suite.location(41, 29))

	result, err := queries.NewGetAllCouriersQueryHandler(suite.factory).Handle(suite.T().Context(), queries.NewGetAllCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Ali", result[0].Name)
	suite.Equal("offline", result[0].Status)
	suite.NotNil(result[0].Location)
	suite.Equal("Zeynep", result[1].Name)
	suite.True(result[1].IsOnline)
	suite.Nil(result[1].Location)
}

func (suite *QueriesTestSuite) TestGetAllCouriers_EmptyStore() {
	result, err := queries.NewGetAllCouriersQueryHandler(suite.factory).Handle(suite.T().Context(), queries.NewGetAllCouriersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesTestSuite) TestGetAllCouriers_InvalidQuery() {
	result, err := queries.NewGetAllCouriersQueryHandler(suite.factory).Handle(suite.T().Context(), queries.GetAllCouriersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetAllCouriersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *QueriesTestSuite) TestGetActiveOrders_SkipsTerminalOrders() {
	ctx := suite.T().Context()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	later := suite.addOrder(base.Add(time.Minute), true)
	earlier := suite.addOrder(base, false)
	cancelled := suite.addOrder(base.Add(-time.Minute), false)

	uow := suite.factory.Create()
	expected := ports.ExpectOrder(cancelled)
	_, err := cancelled.Cancel("duplicate", base)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, cancelled, expected))

	result, err := queries.NewGetActiveOrdersQueryHandler(suite.factory).Handle(ctx, queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(earlier.ID(), result[0].ID)
	suite.Equal("pending", result[0].Status)
	suite.Equal(later.ID(), result[1].ID)
	suite.Equal("ready", result[1].Status)
}

func (suite *QueriesTestSuite) TestGetDispatchCandidates_RankedWithBreakdown() {
	ctx := suite.T().Context()
	seller := suite.location(41.0, 29.0)

	far := suite.addCourier("Far", true, suite.location(41.05, 29.0))
	near := suite.addCourier("Near", true, suite.location(41.001, 29.0))
	suite.addCourier("Offline", false, seller)

	o := suite.addOrder(time.Now(), true)
	suite.Require().NoError(suite.store.PutSeller(ctx, o.SellerID(), seller))

	query, err := queries.NewGetDispatchCandidatesQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetDispatchCandidatesQueryHandler(suite.factory, suite.store, courier.MaxConcurrentDeliveries).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("ready", view.Status)
	suite.NotNil(view.Origin)
	suite.Require().Len(view.Candidates, 2)
	suite.Equal(near.ID(), view.Candidates[0].CourierID)
	suite.Equal(far.ID(), view.Candidates[1].CourierID)
	suite.Greater(view.Candidates[0].Score.Total, view.Candidates[1].Score.Total)
	suite.Greater(view.Candidates[0].Score.Distance, view.Candidates[1].Score.Distance)
	suite.Less(view.Candidates[0].DistanceKm, 0.2)

	// Ranking is read-only.
	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Ready, stored.Status())
}

func (suite *QueriesTestSuite) TestGetDispatchCandidates_UnknownSellerLocation() {
	suite.addCourier("Ayse", true, suite.location(41, 29))
	o := suite.addOrder(time.Now(), true)

	query, err := queries.NewGetDispatchCandidatesQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetDispatchCandidatesQueryHandler(suite.factory, suite.store, courier.MaxConcurrentDeliveries).Handle(suite.T().Context(), query)

	suite.Require().NoError(err)
	suite.Nil(view.Origin)
	suite.Require().Len(view.Candidates, 1)
	suite.InDelta(services.UnknownDistanceKm, view.Candidates[0].DistanceKm, 1e-9)
	suite.InDelta(0, view.Candidates[0].Score.Distance, 1e-9)
}

func (suite *QueriesTestSuite) TestGetDispatchCandidates_TerminalOrder() {
	ctx := suite.T().Context()
	o := suite.addOrder(time.Now(), false)

	uow := suite.factory.Create()
	expected := ports.ExpectOrder(o)
	_, err := o.Cancel("", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o, expected))

	query, err := queries.NewGetDispatchCandidatesQuery(o.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetDispatchCandidatesQueryHandler(suite.factory, suite.store, courier.MaxConcurrentDeliveries).Handle(ctx, query)

	suite.Require().ErrorIs(err, ports.ErrOrderStateConflict)
}

func (suite *QueriesTestSuite) TestGetCourierEarnings() {
	ctx := suite.T().Context()
	c := suite.addCourier("Ayse", true, nil)

	for _, amount := range []int64{1500, 900} {
		e, err := courier.NewDeliveryEarning(kernel.NewUUID(), c.ID(), kernel.NewUUID(), amount, time.Now())
		suite.Require().NoError(err)
		suite.Require().NoError(suite.factory.Create().EarningRepository().Add(ctx, e))
	}

	query, err := queries.NewGetCourierEarningsQuery(c.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetCourierEarningsQueryHandler(suite.factory).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(int64(2400), result.Total)
	suite.Len(result.Earnings, 2)
}

func (suite *QueriesTestSuite) TestGetCourierEarnings_UnknownCourier() {
	query, err := queries.NewGetCourierEarningsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetCourierEarningsQueryHandler(suite.factory).Handle(suite.T().Context(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
