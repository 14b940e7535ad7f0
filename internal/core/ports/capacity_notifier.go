package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// CapacityNotifier publishes capacity changes on an order so interested
// parties learn when slots fill up or free again. Notification failures
// must not fail the command that triggered them.
type CapacityNotifier interface {
	// NotifySlotReserved announces that a slot on the order was taken.
	NotifySlotReserved(ctx context.Context, orderID kernel.UUID, acceptedSlots, requiredSlots int) error

	// NotifySlotReleased announces that a slot on the order was freed.
	NotifySlotReleased(ctx context.Context, orderID kernel.UUID, acceptedSlots, requiredSlots int) error

	// NotifyStatusChanged announces an order status change.
	NotifyStatusChanged(ctx context.Context, orderID kernel.UUID, status order.Status) error
}
