// Package order contains the Order aggregate and the order-level state
// machine of the freight platform.
//
// An Order is a shipment request that may require several trucks; each
// truck-sized unit of capacity is a slot. The aggregate owns the two
// counters that make up the capacity ledger (required and accepted slots)
// and enforces their invariants on every mutation:
//
//   - 0 <= accepted slots <= required slots, at all times
//   - an accepted-family status requires at least one accepted slot
//   - Open requires free capacity (accepted < required)
//
// The package also hosts the transition guard: a role-aware lookup table
// over (current status, next status) edges that is the sole authority on
// whether a status change is legal and who may perform it. Adding a role
// or a status is a data change in the table, not a call-site change.
package order
