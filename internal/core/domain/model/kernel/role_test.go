package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("known roles", func(t *testing.T) {
		for name, expected := range map[string]kernel.Role{
			"Requester": kernel.RoleRequester,
			"Fulfiller": kernel.RoleFulfiller,
			"Admin":     kernel.RoleAdmin,
			"Sweep":     kernel.RoleSweep,
		} {
			role, err := kernel.RoleFromString(name)
			require.NoError(t, err)
			assert.Equal(t, expected, role)
		}
	})

	t.Run("unknown role name", func(t *testing.T) {
		_, err := kernel.RoleFromString("Dispatcher")
		require.Error(t, err)
	})

	t.Run("unknown is not accepted as a name", func(t *testing.T) {
		_, err := kernel.RoleFromString("Unknown")
		require.Error(t, err)
	})
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, kernel.RoleRequester.Validate())
	require.NoError(t, kernel.RoleSweep.Validate())
	require.Error(t, kernel.RoleUnknown.Validate())
	require.Error(t, kernel.Role(99).Validate())
}
