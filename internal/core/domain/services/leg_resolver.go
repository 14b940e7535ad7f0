package services

import (
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/progress"
)

// StatusSource names which record a resolved leg status came from.
type StatusSource string

const (
	// SourceProgress means a progress record exists and won.
	SourceProgress StatusSource = "progress"

	// SourceAssignment means resolution fell back to the assignment.
	SourceAssignment StatusSource = "assignment"

	// SourceUnknown means neither record exists. Callers treat this as
	// "not yet actionable", never as an error.
	SourceUnknown StatusSource = "unknown"
)

// LegStatusResolution is the effective status of one fulfiller's leg
// together with its source of truth.
type LegStatusResolution struct {
	Status assignment.Status
	Source StatusSource
}

// ResolveLegStatus resolves the effective status of one (order,
// fulfiller) pair from its two possible sources of truth. The progress
// record, when present, is authoritative; otherwise the active
// (non-cancelled, non-rejected) assignment's status is used; with
// neither, the leg is unknown.
//
// Pure and side-effect free: the function only inspects the records it
// is handed. Copying terminal assignment statuses onto progress records
// is an external reconciliation job's business.
func ResolveLegStatus(prog *progress.Progress, asg *assignment.Assignment) LegStatusResolution {
	if prog != nil {
		return LegStatusResolution{Status: prog.Status(), Source: SourceProgress}
	}

	if asg != nil && asg.IsActive() {
		return LegStatusResolution{Status: asg.Status(), Source: SourceAssignment}
	}

	return LegStatusResolution{Status: assignment.StatusUnknown, Source: SourceUnknown}
}
