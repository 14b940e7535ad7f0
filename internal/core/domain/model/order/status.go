package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as a whole.
// Transitions between statuses are validated by the transition guard
// (see AssertTransition); no code outside this package may decide whether
// a status change is legal.
//
// State machine:
//
//	Open ──┬──> InNegotiation ──> Accepted / Open / Cancelled
//	       ├──> Accepted (via slot reservation)
//	       └──> Cancelled
//	Accepted ──> Loading ──> Loaded ──> InTransit
//	InTransit ──┬──> Delivered (requester confirms directly)
//	            └──> DeliveredPendingConfirmation
//	DeliveredPendingConfirmation ──> Completed / Delivered / Cancelled
//
// Completed, Cancelled and Rejected are terminal. Delivered has no
// outgoing edges either, but it records a closed delivery rather than an
// aborted one.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusOpen is the initial status: the order is visible to
	// fulfillers and still has free slots.
	StatusOpen

	// StatusInNegotiation indicates at least one proposal is being
	// negotiated against the order.
	StatusInNegotiation

	// StatusAccepted indicates every required slot has been claimed.
	StatusAccepted

	// StatusLoading indicates cargo is being loaded onto trucks.
	StatusLoading

	// StatusLoaded indicates loading has finished on all legs.
	StatusLoaded

	// StatusInTransit indicates the shipment is on the road.
	StatusInTransit

	// StatusDelivered indicates a confirmed, closed delivery.
	StatusDelivered

	// StatusDeliveredPendingConfirmation indicates the fulfiller reported
	// delivery and the requester has not yet confirmed. The confirmation
	// timeout sweep converts this to Delivered after the configured window.
	StatusDeliveredPendingConfirmation

	// StatusCompleted indicates the requester confirmed completion.
	// Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was called off. Terminal.
	StatusCancelled

	// StatusRejected indicates the order was turned down. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:                      "Unknown",
		StatusOpen:                         "Open",
		StatusInNegotiation:                "InNegotiation",
		StatusAccepted:                     "Accepted",
		StatusLoading:                      "Loading",
		StatusLoaded:                       "Loaded",
		StatusInTransit:                    "InTransit",
		StatusDelivered:                    "Delivered",
		StatusDeliveredPendingConfirmation: "DeliveredPendingConfirmation",
		StatusCompleted:                    "Completed",
		StatusCancelled:                    "Cancelled",
		StatusRejected:                     "Rejected",
	}
}

// String returns the internal code name of the status. Internal codes are
// never rendered to users; presentation goes through the status label
// guard in the services package.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsAcceptedFamily reports whether the status implies at least one
// accepted slot.
func (s Status) IsAcceptedFamily() bool {
	switch s {
	case StatusAccepted, StatusLoading, StatusLoaded, StatusInTransit,
		StatusDelivered, StatusDeliveredPendingConfirmation, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsPrePickup reports whether the order has not progressed past the
// pre-pickup stage. Releasing a slot may reopen the order only while this
// holds.
func (s Status) IsPrePickup() bool {
	return s == StatusOpen || s == StatusInNegotiation || s == StatusAccepted
}

// AcceptsReservations reports whether new slot reservations are allowed
// in this status.
func (s Status) AcceptsReservations() bool {
	return s == StatusOpen || s == StatusInNegotiation
}
