// Package guard provides a lightweight constructor guard for value objects,
// commands and queries. Embedding a ConstructorGuard lets a type detect
// whether it was created through its designated constructor or as a zero
// value, so validation can reject improperly built instances.
package guard

import "errors"

// ErrNotConstructed is the default error returned by Validate when the
// guarded object was not created through its constructor and no specific
// error was supplied.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// fails validation; only instances created via NewConstructorGuard pass.
//
// Example:
//
//	type ReserveSlotCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewReserveSlotCommand(orderID kernel.UUID) (ReserveSlotCommand, error) {
//	    ...
//	    return ReserveSlotCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ReserveSlotCommand) Validate() error {
//	    return c.guard.Validate(ErrReserveSlotCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object as
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was properly constructed. Otherwise
// it returns validationError, or ErrNotConstructed when validationError is
// nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}

	if validationError == nil {
		return ErrNotConstructed
	}

	return validationError
}
