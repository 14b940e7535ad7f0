package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
)

var (
	// ErrIllegalTransition indicates that no edge between the two
	// statuses exists for any role. Receiving it means the caller is
	// stale or defective; it is always surfaced and logged.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrForbiddenForRole indicates that the requested edge exists, but
	// not for the acting role. It is an authorization failure and is
	// never silently downgraded.
	ErrForbiddenForRole = errors.New("status transition is forbidden for role")
)

// Action identifies an operation a role may perform on an order in its
// current status. Actions, not raw target statuses, are offered to
// presentation because one action can imply a status change plus side
// effects (reserving a slot, emitting a capacity signal).
type Action string

const (
	ActionOpenNegotiation   Action = "OpenNegotiation"
	ActionReserveSlot       Action = "ReserveSlot"
	ActionAcceptProposal    Action = "AcceptProposal"
	ActionReturnToOpen      Action = "ReturnToOpen"
	ActionCancel            Action = "Cancel"
	ActionStartLoading      Action = "StartLoading"
	ActionFinishLoading     Action = "FinishLoading"
	ActionStartTransit      Action = "StartTransit"
	ActionMarkDelivered     Action = "MarkDelivered"
	ActionConfirmDelivery   Action = "ConfirmDelivery"
	ActionSweepConfirmation Action = "SweepConfirmation"
	ActionDispute           Action = "Dispute"
)

// transitionRule is one edge of the role-aware state machine. The full
// rule set below is the single source of truth for transition legality;
// adding a role or status is a change to this data, not to call sites.
type transitionRule struct {
	from   Status
	to     Status
	action Action
	roles  []kernel.Role
}

func getTransitionRules() []transitionRule {
	requester := []kernel.Role{kernel.RoleRequester}
	fulfiller := []kernel.Role{kernel.RoleFulfiller}
	negotiators := []kernel.Role{kernel.RoleRequester, kernel.RoleFulfiller}

	return []transitionRule{
		{StatusOpen, StatusInNegotiation, ActionOpenNegotiation, fulfiller},
		{StatusOpen, StatusAccepted, ActionReserveSlot, fulfiller},
		{StatusOpen, StatusCancelled, ActionCancel, requester},

		{StatusInNegotiation, StatusAccepted, ActionAcceptProposal, negotiators},
		{StatusInNegotiation, StatusOpen, ActionReturnToOpen, negotiators},
		{StatusInNegotiation, StatusCancelled, ActionCancel, requester},

		{StatusAccepted, StatusLoading, ActionStartLoading, fulfiller},
		{StatusAccepted, StatusCancelled, ActionCancel, requester},

		{StatusLoading, StatusLoaded, ActionFinishLoading, fulfiller},
		{StatusLoading, StatusCancelled, ActionCancel, requester},

		{StatusLoaded, StatusInTransit, ActionStartTransit, fulfiller},
		{StatusLoaded, StatusCancelled, ActionCancel, requester},

		{StatusInTransit, StatusDeliveredPendingConfirmation, ActionMarkDelivered, fulfiller},
		{StatusInTransit, StatusDelivered, ActionConfirmDelivery, requester},

		{StatusDeliveredPendingConfirmation, StatusCompleted, ActionConfirmDelivery, requester},
		{StatusDeliveredPendingConfirmation, StatusDelivered, ActionSweepConfirmation,
			[]kernel.Role{kernel.RoleSweep}},
		{StatusDeliveredPendingConfirmation, StatusCancelled, ActionDispute,
			[]kernel.Role{kernel.RoleRequester, kernel.RoleAdmin}},
	}
}

func (r transitionRule) allows(role kernel.Role) bool {
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// GetAllowedActions returns the actions the given role may perform on an
// order in the given status. Pure, no I/O. The result drives which
// controls a client offers; it is advisory only and never trusted as the
// actual gate — AssertTransition runs immediately before every mutation.
func GetAllowedActions(status Status, role kernel.Role) []Action {
	actions := make([]Action, 0)
	seen := make(map[Action]bool)

	for _, rule := range getTransitionRules() {
		if rule.from != status || !rule.allows(role) || seen[rule.action] {
			continue
		}
		seen[rule.action] = true
		actions = append(actions, rule.action)
	}

	return actions
}

// TransitionError is the refusal returned by AssertTransition. It wraps
// ErrIllegalTransition or ErrForbiddenForRole and carries the attempted
// edge, so presentation can label the failure without parsing the text.
// Error() names internal status codes and is for logs only.
type TransitionError struct {
	From Status
	To   Status
	Role kernel.Role

	err error
}

func (e *TransitionError) Error() string {
	if errors.Is(e.err, ErrForbiddenForRole) {
		return fmt.Sprintf("%s: %s -> %s as %s", e.err, e.From, e.To, e.Role)
	}
	return fmt.Sprintf("%s: %s -> %s", e.err, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return e.err
}

// AssertTransition is the sole authority on whether a status change is
// legal for a role. It returns a TransitionError wrapping
// ErrIllegalTransition when no edge from `from` to `to` exists for any
// role, and one wrapping ErrForbiddenForRole when the edge exists but not
// for this role.
func AssertTransition(from, to Status, role kernel.Role) error {
	edgeExists := false
	for _, rule := range getTransitionRules() {
		if rule.from != from || rule.to != to {
			continue
		}
		edgeExists = true
		if rule.allows(role) {
			return nil
		}
	}

	if !edgeExists {
		return &TransitionError{From: from, To: to, Role: role, err: ErrIllegalTransition}
	}
	return &TransitionError{From: from, To: to, Role: role, err: ErrForbiddenForRole}
}

// ActionForTransition returns the action identifier attached to the edge
// between two statuses. Used to name the blocked action in user-visible
// failures. The second return is false when no such edge exists.
func ActionForTransition(from, to Status) (Action, bool) {
	for _, rule := range getTransitionRules() {
		if rule.from == from && rule.to == to {
			return rule.action, true
		}
	}
	return "", false
}
