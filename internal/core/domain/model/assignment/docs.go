// Package assignment contains the Assignment aggregate: the record binding
// one fulfiller to one truck slot of an order.
//
// Assignments are append-mostly. They are created when a slot is reserved
// and are never physically deleted; releasing a slot transitions the
// assignment to Cancelled or Rejected so the audit trail stays intact.
// The number of active (non-Cancelled, non-Rejected) assignments on an
// order never exceeds the order's required slots; the reservation
// transaction enforces this together with the order's capacity counters.
//
// The package also defines the leg-level status vocabulary and its own
// role-gated transition table. Only the fulfiller who owns the leg drives
// it through Loading, Loaded, InTransit and Delivered.
package assignment
