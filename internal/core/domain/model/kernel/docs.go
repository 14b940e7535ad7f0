// Package kernel provides core domain primitives for the freight platform.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A value object for per-slot and aggregate prices in minor currency units
//   - Role: The set of actors whose permissions gate status transitions
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, suitable for concurrent use.
package kernel
