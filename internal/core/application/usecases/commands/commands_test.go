package commands_test

import (
	"testing"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	tests := []struct {
		name        string
		address     string
		totalAmount int64
		courierFee  int64
		wantErr     []error
	}{
		{name: "valid", address: "Moda Cd. 1", totalAmount: 1000, courierFee: 100},
		{name: "zero fee", address: "Moda Cd. 1", totalAmount: 1000},
		{name: "blank address", address: "   ", totalAmount: 1000, wantErr: []error{commands.ErrAddressIsRequired}},
		{name: "negative amounts", address: "Moda Cd. 1", totalAmount: -1, courierFee: -1,
			wantErr: []error{commands.ErrAmountIsInvalid, commands.ErrCourierFeeIsInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), tt.address, tt.totalAmount, tt.courierFee)

			if len(tt.wantErr) > 0 {
				for _, want := range tt.wantErr {
					require.ErrorIs(t, err, want)
				}
				assert.Error(t, cmd.Validate())
				return
			}
			require.NoError(t, err)
			assert.NoError(t, cmd.Validate())
		})
	}
}

func TestNewCreateOrderCommand_RequiresIDs(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "Moda Cd. 1", 1, 1)

	require.Error(t, err)
}

func TestNewCreateCourierCommand(t *testing.T) {
	cmd, err := commands.NewCreateCourierCommand("Ayse", " +90 555 ")
	require.NoError(t, err)
	assert.NoError(t, cmd.CourierID().Validate())
	assert.Equal(t, "+90 555", cmd.Phone())

	_, err = commands.NewCreateCourierCommand("  ", "")
	require.ErrorIs(t, err, commands.ErrCourierNameIsRequired)
}

func TestNewAdvanceOrderCommand(t *testing.T) {
	_, err := commands.NewAdvanceOrderCommand(kernel.NewUUID(), commands.StepMarkReady)
	require.NoError(t, err)

	_, err = commands.NewAdvanceOrderCommand(kernel.NewUUID(), "teleport")
	require.ErrorIs(t, err, commands.ErrUnknownOrderStep)
}

func TestNewSetCourierAvailabilityCommand(t *testing.T) {
	_, err := commands.NewSetCourierAvailabilityCommand(kernel.NewUUID(), commands.Deactivate)
	require.NoError(t, err)

	_, err = commands.NewSetCourierAvailabilityCommand(kernel.NewUUID(), "vanish")
	require.ErrorIs(t, err, commands.ErrUnknownAvailabilityAction)
}

func TestNewUpdateCourierLocationCommand(t *testing.T) {
	_, err := commands.NewUpdateCourierLocationCommand(kernel.NewUUID(), 91, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewUpdateCourierLocationCommand(kernel.NewUUID(), -33.86, 151.2)
	require.NoError(t, err)
	assert.InDelta(t, -33.86, cmd.Location().Latitude(), 1e-9)
}

func TestNewAssignCourierManuallyCommand_RequiresIDs(t *testing.T) {
	_, err := commands.NewAssignCourierManuallyCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)

	cmd, err := commands.NewAssignCourierManuallyCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
}

func TestUnconstructedCommandsAreRejected(t *testing.T) {
	assert.ErrorIs(t, commands.AssignBestCourierCommand{}.Validate(), commands.ErrAssignBestCourierCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RemoveAssignmentCommand{}.Validate(), commands.ErrRemoveAssignmentCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.DeliverOrderCommand{}.Validate(), commands.ErrDeliverOrderCommandIsNotConstructed)
}
