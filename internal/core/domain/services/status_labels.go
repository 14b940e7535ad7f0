package services

import (
	"fmt"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/order"
)

// The status label guard maps internal status codes and action
// identifiers to the canonical, pre-approved user-facing label set.
// Every user-visible surface goes through these functions; raw internal
// codes are never rendered.

// fallbackLabel is shown when a code has no approved label. It reveals
// nothing about the internal code.
const fallbackLabel = "Unavailable"

func getOrderStatusLabels() map[order.Status]string {
	return map[order.Status]string{
		order.StatusOpen:                         "Open for offers",
		order.StatusInNegotiation:                "Under negotiation",
		order.StatusAccepted:                     "Awaiting pickup",
		order.StatusLoading:                      "Loading",
		order.StatusLoaded:                       "Loaded",
		order.StatusInTransit:                    "In transit",
		order.StatusDelivered:                    "Delivered",
		order.StatusDeliveredPendingConfirmation: "Delivered, awaiting confirmation",
		order.StatusCompleted:                    "Completed",
		order.StatusCancelled:                    "Cancelled",
		order.StatusRejected:                     "Rejected",
	}
}

func getLegStatusLabels() map[assignment.Status]string {
	return map[assignment.Status]string{
		assignment.StatusPending:   "Offer pending",
		assignment.StatusAccepted:  "Awaiting pickup",
		assignment.StatusLoading:   "Loading",
		assignment.StatusLoaded:    "Loaded",
		assignment.StatusInTransit: "In transit",
		assignment.StatusDelivered: "Delivered",
		assignment.StatusCompleted: "Completed",
		assignment.StatusCancelled: "Cancelled",
		assignment.StatusRejected:  "Rejected",
	}
}

func getActionLabels() map[order.Action]string {
	return map[order.Action]string{
		order.ActionOpenNegotiation:   "open negotiation",
		order.ActionReserveSlot:       "take a truck slot",
		order.ActionAcceptProposal:    "accept the offer",
		order.ActionReturnToOpen:      "withdraw from negotiation",
		order.ActionCancel:            "cancel the order",
		order.ActionStartLoading:      "start loading",
		order.ActionFinishLoading:     "finish loading",
		order.ActionStartTransit:      "depart",
		order.ActionMarkDelivered:     "report delivery",
		order.ActionConfirmDelivery:   "confirm delivery",
		order.ActionSweepConfirmation: "auto-confirm delivery",
		order.ActionDispute:           "open a dispute",
	}
}

// OrderStatusLabel returns the approved label for an order status.
func OrderStatusLabel(s order.Status) string {
	if label, ok := getOrderStatusLabels()[s]; ok {
		return label
	}
	return fallbackLabel
}

// LegStatusLabel returns the approved label for a leg status.
func LegStatusLabel(s assignment.Status) string {
	if label, ok := getLegStatusLabels()[s]; ok {
		return label
	}
	return fallbackLabel
}

// ActionLabel returns the approved label for an action identifier.
func ActionLabel(a order.Action) string {
	if label, ok := getActionLabels()[a]; ok {
		return label
	}
	return fallbackLabel
}

// BlockedActionMessage formats the user-visible message for a refused
// transition, naming the current status and the blocked action through
// their approved labels only.
func BlockedActionMessage(current order.Status, attempted order.Action) string {
	return fmt.Sprintf("cannot %s while the order is %q",
		ActionLabel(attempted), OrderStatusLabel(current))
}

// BlockedTransitionMessage formats the user-visible message for a refused
// order status change. When an edge between the statuses exists its
// action is named through BlockedActionMessage; otherwise only the
// current status label is revealed.
func BlockedTransitionMessage(from, to order.Status) string {
	if action, ok := order.ActionForTransition(from, to); ok {
		return BlockedActionMessage(from, action)
	}
	return fmt.Sprintf("the requested change is not available while the order is %q",
		OrderStatusLabel(from))
}

// BlockedLegUpdateMessage formats the user-visible message for a refused
// leg status change, naming both statuses through their approved labels.
func BlockedLegUpdateMessage(current, attempted assignment.Status) string {
	return fmt.Sprintf("cannot move the leg to %q while it is %q",
		LegStatusLabel(attempted), LegStatusLabel(current))
}
