package commands

import (
	"errors"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrUpdateLegProgressCommandIsNotConstructed = errors.New(
		"UpdateLegProgressCommand must be created via NewUpdateLegProgressCommand constructor",
	)
)

// UpdateLegProgressCommand represents a fulfiller reporting movement on
// their leg. The first report creates the leg's progress record; later
// reports advance it. An admin may set override to bypass the forward-only
// transition table when correcting a bad report.
type UpdateLegProgressCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	fulfillerID kernel.UUID
	to          assignment.Status
	role        kernel.Role
	override    bool

	guard guard.ConstructorGuard
}

// NewUpdateLegProgressCommand creates a command to record leg movement.
// Override requires the admin role.
func NewUpdateLegProgressCommand(
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	to assignment.Status,
	role kernel.Role,
	override bool,
) (UpdateLegProgressCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		fulfillerID.Validate(),
		to.Validate(),
		role.Validate(),
	); err != nil {
		return UpdateLegProgressCommand{}, err
	}

	if override && role != kernel.RoleAdmin {
		return UpdateLegProgressCommand{}, assignment.ErrLegForbiddenForRole
	}

	return UpdateLegProgressCommand{
		orderID:     orderID,
		fulfillerID: fulfillerID,
		to:          to,
		role:        role,
		override:    override,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLegProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLegProgressCommandIsNotConstructed)
}

// OrderID returns the order the leg belongs to.
func (c UpdateLegProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillerID returns the fulfiller reporting movement.
func (c UpdateLegProgressCommand) FulfillerID() kernel.UUID {
	return c.fulfillerID
}

// To returns the reported leg status.
func (c UpdateLegProgressCommand) To() assignment.Status {
	return c.to
}

// Role returns who is reporting.
func (c UpdateLegProgressCommand) Role() kernel.Role {
	return c.role
}

// Override reports whether the transition table is bypassed.
func (c UpdateLegProgressCommand) Override() bool {
	return c.override
}
