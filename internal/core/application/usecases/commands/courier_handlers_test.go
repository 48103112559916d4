package commands_test

import (
	"testing"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCreateCourierCommandHandler_RegistersOfflineCourier(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewCreateCourierCommand("  Ayse Kaya ", "+90 555 111 22 33")
	require.NoError(t, err)

	require.NoError(t, commands.NewCreateCourierCommandHandler(f.couriers()).Handle(t.Context(), cmd))

	c := f.courier(cmd.CourierID())
	assert.Equal(t, "Ayse Kaya", c.Name())
	assert.False(t, c.IsOnline())
	assert.Equal(t, courier.Offline, c.Status())
	assert.InDelta(t, courier.DefaultRating, c.Rating(), 1e-9)
	assert.Equal(t, 0, c.CurrentDeliveries())
}

func TestCreateCourierCommandHandler_AddFails(t *testing.T) {
	uow, _, couriers, _, _ := newMockUoW()
	cmd, err := commands.NewCreateCourierCommand("Ayse", "")
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		couriers.On("Add", mock.Anything, mock.Anything).Return(ports.ErrStorageUnavailable).Once(),
	)

	err = commands.NewCreateCourierCommandHandler(mockCourierUoWFactory{uow: uow}).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, ports.ErrStorageUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func setAvailability(t *testing.T, f *fixture, courierID kernel.UUID, action commands.AvailabilityAction) error {
	t.Helper()
	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, action)
	require.NoError(t, err)
	return commands.NewSetCourierAvailabilityCommandHandler(f.couriers(), zaptest.NewLogger(t)).Handle(t.Context(), cmd)
}

func TestSetCourierAvailabilityCommandHandler_Transitions(t *testing.T) {
	f := newFixture(t)
	c := f.addCourier(courierSpec{name: "Ayse", offline: true, current: 2})

	require.NoError(t, setAvailability(t, f, c.ID(), commands.GoOnline))
	got := f.courier(c.ID())
	assert.True(t, got.IsOnline())
	assert.Equal(t, courier.Active, got.Status())
	assert.Equal(t, 2, got.CurrentDeliveries(), "profile updates never touch the counter")

	require.NoError(t, setAvailability(t, f, c.ID(), commands.GoOffline))
	got = f.courier(c.ID())
	assert.False(t, got.IsOnline())
	assert.Equal(t, courier.Offline, got.Status())

	require.NoError(t, setAvailability(t, f, c.ID(), commands.Deactivate))
	assert.Equal(t, courier.Inactive, f.courier(c.ID()).Status())

	err := setAvailability(t, f, c.ID(), commands.GoOnline)
	require.ErrorIs(t, err, courier.ErrCourierIsDeactivated)

	require.NoError(t, setAvailability(t, f, c.ID(), commands.Activate))
	require.NoError(t, setAvailability(t, f, c.ID(), commands.GoOnline))
	assert.Equal(t, courier.Active, f.courier(c.ID()).Status())
}

func TestSetCourierAvailabilityCommandHandler_UnknownCourier(t *testing.T) {
	f := newFixture(t)

	err := setAvailability(t, f, kernel.NewUUID(), commands.GoOnline)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateCourierLocationCommandHandler(t *testing.T) {
	f := newFixture(t)
	c := f.addCourier(courierSpec{name: "Ayse"})

	cmd, err := commands.NewUpdateCourierLocationCommand(c.ID(), 41.0082, 28.9784)
	require.NoError(t, err)
	require.NoError(t, commands.NewUpdateCourierLocationCommandHandler(f.couriers()).Handle(t.Context(), cmd))

	got := f.courier(c.ID()).Location()
	require.NotNil(t, got)
	assert.InDelta(t, 41.0082, got.Latitude(), 1e-9)
	assert.InDelta(t, 28.9784, got.Longitude(), 1e-9)
}
