package order_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertTransition_LegalEdges(t *testing.T) {
	cases := []struct {
		name string
		from order.Status
		to   order.Status
		role kernel.Role
	}{
		{"fulfiller opens negotiation", order.StatusOpen, order.StatusInNegotiation, kernel.RoleFulfiller},
		{"requester cancels open order", order.StatusOpen, order.StatusCancelled, kernel.RoleRequester},
		{"requester accepts proposal", order.StatusInNegotiation, order.StatusAccepted, kernel.RoleRequester},
		{"fulfiller accepts counter", order.StatusInNegotiation, order.StatusAccepted, kernel.RoleFulfiller},
		{"negotiation returns to open", order.StatusInNegotiation, order.StatusOpen, kernel.RoleRequester},
		{"fulfiller starts loading", order.StatusAccepted, order.StatusLoading, kernel.RoleFulfiller},
		{"fulfiller finishes loading", order.StatusLoading, order.StatusLoaded, kernel.RoleFulfiller},
		{"fulfiller starts transit", order.StatusLoaded, order.StatusInTransit, kernel.RoleFulfiller},
		{"fulfiller marks delivered", order.StatusInTransit, order.StatusDeliveredPendingConfirmation, kernel.RoleFulfiller},
		{"requester confirms in transit", order.StatusInTransit, order.StatusDelivered, kernel.RoleRequester},
		{"requester completes", order.StatusDeliveredPendingConfirmation, order.StatusCompleted, kernel.RoleRequester},
		{"sweep closes stale confirmation", order.StatusDeliveredPendingConfirmation, order.StatusDelivered, kernel.RoleSweep},
		{"admin resolves dispute", order.StatusDeliveredPendingConfirmation, order.StatusCancelled, kernel.RoleAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, order.AssertTransition(tc.from, tc.to, tc.role))
		})
	}
}

func TestAssertTransition_IllegalEdge(t *testing.T) {
	// No edge from Open to Completed exists for any role.
	err := order.AssertTransition(order.StatusOpen, order.StatusCompleted, kernel.RoleRequester)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	assert.NotErrorIs(t, err, order.ErrForbiddenForRole)
}

func TestAssertTransition_RefusalCarriesEdgeContext(t *testing.T) {
	err := order.AssertTransition(order.StatusOpen, order.StatusCancelled, kernel.RoleFulfiller)
	require.Error(t, err)

	var refusal *order.TransitionError
	require.ErrorAs(t, err, &refusal)

	assert.Equal(t, order.StatusOpen, refusal.From)
	assert.Equal(t, order.StatusCancelled, refusal.To)
	assert.Equal(t, kernel.RoleFulfiller, refusal.Role)
}

func TestAssertTransition_ForbiddenForRole(t *testing.T) {
	cases := []struct {
		name string
		from order.Status
		to   order.Status
		role kernel.Role
	}{
		{"fulfiller cannot cancel", order.StatusOpen, order.StatusCancelled, kernel.RoleFulfiller},
		{"requester cannot drive loading", order.StatusLoading, order.StatusLoaded, kernel.RoleRequester},
		{"fulfiller cannot complete", order.StatusDeliveredPendingConfirmation, order.StatusCompleted, kernel.RoleFulfiller},
		{"sweep cannot cancel", order.StatusOpen, order.StatusCancelled, kernel.RoleSweep},
		{"admin cannot drive transit", order.StatusLoaded, order.StatusInTransit, kernel.RoleAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := order.AssertTransition(tc.from, tc.to, tc.role)

			require.ErrorIs(t, err, order.ErrForbiddenForRole)
		})
	}
}

func TestAssertTransition_TerminalStatusesHaveNoEdges(t *testing.T) {
	terminals := []order.Status{order.StatusCompleted, order.StatusCancelled, order.StatusRejected}
	roles := []kernel.Role{kernel.RoleRequester, kernel.RoleFulfiller, kernel.RoleAdmin, kernel.RoleSweep}

	for _, from := range terminals {
		for _, role := range roles {
			err := order.AssertTransition(from, order.StatusOpen, role)
			require.ErrorIs(t, err, order.ErrIllegalTransition)

			assert.Empty(t, order.GetAllowedActions(from, role))
		}
	}
}

func TestGetAllowedActions(t *testing.T) {
	t.Run("requester on open order", func(t *testing.T) {
		actions := order.GetAllowedActions(order.StatusOpen, kernel.RoleRequester)

		assert.ElementsMatch(t, []order.Action{order.ActionCancel}, actions)
	})

	t.Run("fulfiller on open order", func(t *testing.T) {
		actions := order.GetAllowedActions(order.StatusOpen, kernel.RoleFulfiller)

		assert.ElementsMatch(t,
			[]order.Action{order.ActionOpenNegotiation, order.ActionReserveSlot},
			actions)
	})

	t.Run("sweep sees only the confirmation edge", func(t *testing.T) {
		assert.Empty(t, order.GetAllowedActions(order.StatusOpen, kernel.RoleSweep))
		assert.Empty(t, order.GetAllowedActions(order.StatusInTransit, kernel.RoleSweep))

		actions := order.GetAllowedActions(order.StatusDeliveredPendingConfirmation, kernel.RoleSweep)
		assert.ElementsMatch(t, []order.Action{order.ActionSweepConfirmation}, actions)
	})

	t.Run("unknown role gets nothing", func(t *testing.T) {
		assert.Empty(t, order.GetAllowedActions(order.StatusOpen, kernel.RoleUnknown))
	})
}

func TestActionForTransition(t *testing.T) {
	action, ok := order.ActionForTransition(order.StatusLoading, order.StatusLoaded)
	require.True(t, ok)
	assert.Equal(t, order.ActionFinishLoading, action)

	_, ok = order.ActionForTransition(order.StatusOpen, order.StatusCompleted)
	assert.False(t, ok)
}
