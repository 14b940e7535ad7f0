package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to publish a new shipment order.
// Encapsulates the requester, the pricing terms and how many truck slots
// the shipment needs.
//
// Example:
//
//	pricing, _ := order.NewFixedPricing(perSlot)
//	cmd, err := NewCreateOrderCommand(orderID, requesterID, pricing, 4)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	requesterID   kernel.UUID
	pricing       order.PricingTerms
	requiredSlots int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to publish a new shipment order.
// Validates that both identifiers are valid, the pricing terms were
// constructed, and at least one slot is requested.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	requesterID kernel.UUID,
	pricing order.PricingTerms,
	requiredSlots int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setPricing(pricing),
		cmd.setRequiredSlots(requiredSlots),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the identifier of the requester publishing the order.
func (c CreateOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Pricing returns the declared pricing terms.
func (c CreateOrderCommand) Pricing() order.PricingTerms {
	return c.pricing
}

// RequiredSlots returns how many truck slots the shipment needs.
func (c CreateOrderCommand) RequiredSlots() int {
	return c.requiredSlots
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateOrderCommand) setPricing(pricing order.PricingTerms) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	c.pricing = pricing
	return nil
}

func (c *CreateOrderCommand) setRequiredSlots(requiredSlots int) error {
	if requiredSlots < 1 {
		return errs.NewValueIsInvalidError("required slots")
	}

	c.requiredSlots = requiredSlots
	return nil
}
