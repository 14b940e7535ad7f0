package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrReleaseSlotCommandIsNotConstructed = errors.New(
		"ReleaseSlotCommand must be created via NewReleaseSlotCommand constructor",
	)
)

// ReleaseSlotCommand represents giving a claimed truck slot back. A
// fulfiller withdraws their own assignment; a requester or admin removes
// one. The role decides how the released assignment is marked.
type ReleaseSlotCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	fulfillerID kernel.UUID
	role        kernel.Role

	guard guard.ConstructorGuard
}

// NewReleaseSlotCommand creates a command to release a claimed slot.
func NewReleaseSlotCommand(
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	role kernel.Role,
) (ReleaseSlotCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		fulfillerID.Validate(),
		role.Validate(),
	); err != nil {
		return ReleaseSlotCommand{}, err
	}

	return ReleaseSlotCommand{
		orderID:     orderID,
		fulfillerID: fulfillerID,
		role:        role,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseSlotCommand) Validate() error {
	return c.guard.Validate(ErrReleaseSlotCommandIsNotConstructed)
}

// OrderID returns the order whose slot is released.
func (c ReleaseSlotCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillerID returns the fulfiller whose assignment is released.
func (c ReleaseSlotCommand) FulfillerID() kernel.UUID {
	return c.fulfillerID
}

// Role returns who is releasing the slot.
func (c ReleaseSlotCommand) Role() kernel.Role {
	return c.role
}
