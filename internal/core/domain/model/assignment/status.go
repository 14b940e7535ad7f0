package assignment

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a single fulfiller's leg.
// It shares its vocabulary with the order-level machine for the shared
// middle segment (Loading through Delivered) but is tracked per leg.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is an assignment offered but not yet accepted.
	StatusPending

	// StatusAccepted is a claimed slot; the leg has not started moving.
	StatusAccepted

	// StatusLoading indicates cargo is being loaded on this leg.
	StatusLoading

	// StatusLoaded indicates loading finished on this leg.
	StatusLoaded

	// StatusInTransit indicates this leg is on the road.
	StatusInTransit

	// StatusDelivered indicates this leg's cargo has been handed over.
	StatusDelivered

	// StatusCompleted indicates the leg is confirmed and closed. Terminal.
	StatusCompleted

	// StatusCancelled indicates the leg was called off. Terminal.
	StatusCancelled

	// StatusRejected indicates the offered leg was turned down. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusAccepted:  "Accepted",
		StatusLoading:   "Loading",
		StatusLoaded:    "Loaded",
		StatusInTransit: "InTransit",
		StatusDelivered: "Delivered",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
		StatusRejected:  "Rejected",
	}
}

// String returns the internal code name of the leg status.
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
			fmt.Errorf("%d is not a valid assignment status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the leg permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsActive reports whether the assignment still occupies a slot.
// Cancelled and Rejected legs free their slot and stop counting against
// the order's capacity.
func (s Status) IsActive() bool {
	return s != StatusCancelled && s != StatusRejected
}

// HasMovedPastAccepted reports whether the leg has progressed beyond the
// pre-pickup stage. Once any leg on an order has, releasing capacity
// never reopens the order.
func (s Status) HasMovedPastAccepted() bool {
	switch s {
	case StatusLoading, StatusLoaded, StatusInTransit, StatusDelivered, StatusCompleted:
		return true
	default:
		return false
	}
}

var (
	// ErrIllegalLegTransition indicates no leg-level edge between the two
	// statuses exists for any role.
	ErrIllegalLegTransition = errors.New("illegal leg status transition")

	// ErrLegForbiddenForRole indicates the leg-level edge exists, but not
	// for the acting role.
	ErrLegForbiddenForRole = errors.New("leg status transition is forbidden for role")
)

// legTransitionRule is one edge of the leg-level machine, in the same
// lookup-table form as the order-level guard.
type legTransitionRule struct {
	from  Status
	to    Status
	roles []kernel.Role
}

func getLegTransitionRules() []legTransitionRule {
	requester := []kernel.Role{kernel.RoleRequester}
	fulfiller := []kernel.Role{kernel.RoleFulfiller}

	return []legTransitionRule{
		{StatusPending, StatusAccepted, []kernel.Role{kernel.RoleRequester, kernel.RoleFulfiller}},
		{StatusPending, StatusRejected, requester},
		{StatusPending, StatusCancelled, fulfiller},

		{StatusAccepted, StatusLoading, fulfiller},
		{StatusAccepted, StatusCancelled, []kernel.Role{kernel.RoleRequester, kernel.RoleFulfiller}},

		{StatusLoading, StatusLoaded, fulfiller},
		{StatusLoading, StatusCancelled, requester},

		{StatusLoaded, StatusInTransit, fulfiller},
		{StatusLoaded, StatusCancelled, requester},

		{StatusInTransit, StatusDelivered, fulfiller},

		{StatusDelivered, StatusCompleted, []kernel.Role{kernel.RoleRequester, kernel.RoleSweep}},
	}
}

// LegTransitionError is the refusal returned by AssertLegTransition. It
// wraps ErrIllegalLegTransition or ErrLegForbiddenForRole and carries the
// attempted edge, so presentation can label the failure without parsing
// the text. Error() names internal status codes and is for logs only.
type LegTransitionError struct {
	From Status
	To   Status
	Role kernel.Role

	err error
}

func (e *LegTransitionError) Error() string {
	if errors.Is(e.err, ErrLegForbiddenForRole) {
		return fmt.Sprintf("%s: %s -> %s as %s", e.err, e.From, e.To, e.Role)
	}
	return fmt.Sprintf("%s: %s -> %s", e.err, e.From, e.To)
}

func (e *LegTransitionError) Unwrap() error {
	return e.err
}

// AssertLegTransition validates one leg-level status change for a role.
// Mirrors the order-level AssertTransition contract: a LegTransitionError
// wrapping ErrIllegalLegTransition when the edge does not exist at all,
// one wrapping ErrLegForbiddenForRole when it exists for a different
// role. RoleAdmin may traverse any existing edge; this is the
// administrative override the progress record allows.
func AssertLegTransition(from, to Status, role kernel.Role) error {
	edgeExists := false
	for _, rule := range getLegTransitionRules() {
		if rule.from != from || rule.to != to {
			continue
		}
		edgeExists = true
		if role == kernel.RoleAdmin {
			return nil
		}
		for _, allowed := range rule.roles {
			if allowed == role {
				return nil
			}
		}
	}

	if !edgeExists {
		return &LegTransitionError{From: from, To: to, Role: role, err: ErrIllegalLegTransition}
	}
	return &LegTransitionError{From: from, To: to, Role: role, err: ErrLegForbiddenForRole}
}
