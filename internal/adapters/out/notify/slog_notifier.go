// Package notify publishes capacity and status changes through structured
// logging. A message broker can replace this adapter without touching the
// command handlers, which only see the CapacityNotifier port.
package notify

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// SlogCapacityNotifier implements CapacityNotifier on top of slog.
type SlogCapacityNotifier struct {
	logger *slog.Logger
}

// NewSlogCapacityNotifier creates a notifier writing to the given logger.
func NewSlogCapacityNotifier(logger *slog.Logger) *SlogCapacityNotifier {
	return &SlogCapacityNotifier{
		logger: logger.With("component", "capacity_notifier"),
	}
}

// NotifySlotReserved announces that a slot on the order was taken.
func (n *SlogCapacityNotifier) NotifySlotReserved(
	ctx context.Context,
	orderID kernel.UUID,
	acceptedSlots, requiredSlots int,
) error {
	n.logger.InfoContext(ctx, "Slot reserved",
		"order_id", orderID.String(),
		"accepted_slots", acceptedSlots,
		"required_slots", requiredSlots,
	)
	return nil
}

// NotifySlotReleased announces that a slot on the order was freed.
func (n *SlogCapacityNotifier) NotifySlotReleased(
	ctx context.Context,
	orderID kernel.UUID,
	acceptedSlots, requiredSlots int,
) error {
	n.logger.InfoContext(ctx, "Slot released",
		"order_id", orderID.String(),
		"accepted_slots", acceptedSlots,
		"required_slots", requiredSlots,
	)
	return nil
}

// NotifyStatusChanged announces an order status change.
func (n *SlogCapacityNotifier) NotifyStatusChanged(
	ctx context.Context,
	orderID kernel.UUID,
	status order.Status,
) error {
	n.logger.InfoContext(ctx, "Order status changed",
		"order_id", orderID.String(),
		"status", status.String(),
	)
	return nil
}
