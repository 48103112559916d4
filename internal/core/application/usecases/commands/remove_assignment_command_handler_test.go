package commands_test

import (
	"testing"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func removeAssignment(t *testing.T, factory commands.DispatchUoWFactory, notifier ports.Notifier, orderID kernel.UUID) (bool, error) {
	t.Helper()
	cmd, err := commands.NewRemoveAssignmentCommand(orderID)
	require.NoError(t, err)
	h := commands.NewRemoveAssignmentCommandHandler(factory, notifier, testPolicy(), zaptest.NewLogger(t))
	return h.Handle(t.Context(), cmd)
}

func TestRemoveAssignmentCommandHandler_RestoresCapacityAndReadiness(t *testing.T) {
	f := newFixture(t)
	c := f.addCourier(courierSpec{name: "Ayse", current: 4})
	o := f.addOrder(order.Ready, nil)
	f.assign(o, c)
	require.Equal(t, 5, f.courier(c.ID()).CurrentDeliveries())

	notifier := new(MockNotifier)
	notifier.On("NotifyDispatch", mock.Anything, outcome(ports.OutcomeUnassigned)).Return(nil).Once()

	removed, err := removeAssignment(t, f.dispatch(), notifier, o.ID())

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 4, f.courier(c.ID()).CurrentDeliveries())

	stored := f.order(o.ID())
	assert.Equal(t, order.Ready, stored.Status())
	assert.Nil(t, stored.CourierID())
	notifier.AssertExpectations(t)
}

func TestRemoveAssignmentCommandHandler_WithoutCourierIsNoop(t *testing.T) {
	uow, orders, _, ledger, _ := newMockUoW()
	o := readyOrder(t)

	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	removed, err := removeAssignment(t, mockDispatchUoWFactory{uow: uow}, nil, o.ID())

	require.NoError(t, err)
	assert.False(t, removed)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "Adjust", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRemoveAssignmentCommandHandler_AfterPickUpIsRejected(t *testing.T) {
	f := newFixture(t)
	c := f.addCourier(courierSpec{name: "Ayse"})
	o := f.addOrder(order.Ready, nil)
	f.assign(o, c)

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	expected := ports.ExpectOrder(o)
	require.NoError(t, o.PickUp(testNow))
	require.NoError(t, uow.OrderRepository().Update(t.Context(), o, expected))
	require.NoError(t, uow.Commit(t.Context()))

	removed, err := removeAssignment(t, f.dispatch(), nil, o.ID())

	require.ErrorIs(t, err, ports.ErrOrderStateConflict)
	assert.False(t, removed)
	assert.Equal(t, 1, f.courier(c.ID()).CurrentDeliveries())
	assert.Equal(t, order.OnTheWay, f.order(o.ID()).Status())
}

func TestRemoveAssignmentCommandHandler_LedgerFailureRollsBack(t *testing.T) {
	uow, orders, _, ledger, _ := newMockUoW()
	o := readyOrder(t)
	courierID := kernel.NewUUID()
	require.NoError(t, o.AssignCourier(courierID, testNow))

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orders.On("Update", mock.Anything, o, ports.OrderPrecondition{Status: order.Assigned, CourierID: &courierID}).Return(nil).Once(),
		ledger.On("Adjust", mock.Anything, courierID, -1, ports.CapacityLimit{}).Return(0, ports.ErrStorageUnavailable).Once(),
	)

	removed, err := removeAssignment(t, mockDispatchUoWFactory{uow: uow}, nil, o.ID())

	require.ErrorIs(t, err, ports.ErrStorageUnavailable)
	assert.False(t, removed)
	uow.AssertCalled(t, "Rollback", mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
