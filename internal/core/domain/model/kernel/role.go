package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Role identifies the kind of actor attempting an operation. Every status
// transition in the system is gated by the combination of current status
// and actor role.
//
// RoleSweep is a synthetic role used only by the confirmation timeout job;
// it is legal for exactly one edge of the order state machine.
type Role int

const (
	// RoleUnknown represents an unidentified or unauthenticated actor.
	RoleUnknown Role = iota

	// RoleRequester is the actor who created the order.
	RoleRequester

	// RoleFulfiller is an actor executing one truck's leg of the order.
	RoleFulfiller

	// RoleAdmin is a read-mostly operator; it may override leg progress
	// and close disputed confirmations.
	RoleAdmin

	// RoleSweep is the synthetic role of the confirmation timeout job.
	RoleSweep
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		RoleRequester: "Requester",
		RoleFulfiller: "Fulfiller",
		RoleAdmin:     "Admin",
		RoleSweep:     "Sweep",
	}
}

// RoleFromString parses a role name, case-sensitively, as stored in
// authentication claims. Unrecognized names return an error.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a known role", s),
	)
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}
