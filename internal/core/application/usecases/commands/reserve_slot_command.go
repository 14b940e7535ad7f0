package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrReserveSlotCommandIsNotConstructed = errors.New(
		"ReserveSlotCommand must be created via NewReserveSlotCommand constructor",
	)
)

// ReserveSlotCommand represents a fulfiller claiming one truck slot on an
// open order. Carries the windows the fulfiller commits to for pickup and
// delivery.
type ReserveSlotCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	orderID      kernel.UUID
	fulfillerID  kernel.UUID
	pickup       assignment.Window
	delivery     assignment.Window

	guard guard.ConstructorGuard
}

// NewReserveSlotCommand creates a command to claim a truck slot.
// Both windows must be well formed (end after start).
func NewReserveSlotCommand(
	assignmentID kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	pickupFrom, pickupTo time.Time,
	deliveryFrom, deliveryTo time.Time,
) (ReserveSlotCommand, error) {
	if err := errors.Join(
		assignmentID.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
	); err != nil {
		return ReserveSlotCommand{}, err
	}

	pickup, err := assignment.NewWindow(pickupFrom, pickupTo)
	if err != nil {
		return ReserveSlotCommand{}, err
	}

	delivery, err := assignment.NewWindow(deliveryFrom, deliveryTo)
	if err != nil {
		return ReserveSlotCommand{}, err
	}

	return ReserveSlotCommand{
		assignmentID: assignmentID,
		orderID:      orderID,
		fulfillerID:  fulfillerID,
		pickup:       pickup,
		delivery:     delivery,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveSlotCommand) Validate() error {
	return c.guard.Validate(ErrReserveSlotCommandIsNotConstructed)
}

// AssignmentID returns the identifier the new assignment will be stored under.
func (c ReserveSlotCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// OrderID returns the order whose slot is being claimed.
func (c ReserveSlotCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillerID returns the fulfiller claiming the slot.
func (c ReserveSlotCommand) FulfillerID() kernel.UUID {
	return c.fulfillerID
}

// Pickup returns the committed pickup window.
func (c ReserveSlotCommand) Pickup() assignment.Window {
	return c.pickup
}

// Delivery returns the committed delivery window.
func (c ReserveSlotCommand) Delivery() assignment.Window {
	return c.delivery
}
