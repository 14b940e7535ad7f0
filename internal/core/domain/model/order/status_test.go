package order_test

import (
	"testing"

	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.StatusOpen,
		order.StatusInNegotiation,
		order.StatusAccepted,
		order.StatusLoading,
		order.StatusLoaded,
		order.StatusInTransit,
		order.StatusDelivered,
		order.StatusDeliveredPendingConfirmation,
		order.StatusCompleted,
		order.StatusCancelled,
		order.StatusRejected,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.StatusUnknown.Validate())
	require.Error(t, order.Status(99).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.True(t, order.StatusRejected.IsTerminal())

	assert.False(t, order.StatusOpen.IsTerminal())
	assert.False(t, order.StatusDelivered.IsTerminal())
	assert.False(t, order.StatusDeliveredPendingConfirmation.IsTerminal())
}

func TestStatus_IsAcceptedFamily(t *testing.T) {
	assert.False(t, order.StatusOpen.IsAcceptedFamily())
	assert.False(t, order.StatusInNegotiation.IsAcceptedFamily())
	assert.False(t, order.StatusCancelled.IsAcceptedFamily())

	assert.True(t, order.StatusAccepted.IsAcceptedFamily())
	assert.True(t, order.StatusLoading.IsAcceptedFamily())
	assert.True(t, order.StatusInTransit.IsAcceptedFamily())
	assert.True(t, order.StatusCompleted.IsAcceptedFamily())
}

func TestStatus_IsPrePickup(t *testing.T) {
	assert.True(t, order.StatusOpen.IsPrePickup())
	assert.True(t, order.StatusInNegotiation.IsPrePickup())
	assert.True(t, order.StatusAccepted.IsPrePickup())

	assert.False(t, order.StatusLoading.IsPrePickup())
	assert.False(t, order.StatusInTransit.IsPrePickup())
}

func TestStatus_AcceptsReservations(t *testing.T) {
	assert.True(t, order.StatusOpen.AcceptsReservations())
	assert.True(t, order.StatusInNegotiation.AcceptsReservations())

	assert.False(t, order.StatusAccepted.AcceptsReservations())
	assert.False(t, order.StatusCancelled.AcceptsReservations())
}
