package mixin

import (
	"errors"
	"strconv"
)

var (
	// ErrNilTrait is returned when a composition contains a nil trait
	// definition or a trait with an empty name.
	ErrNilTrait = errors.New("mixin: nil trait definition")

	// ErrNilBody is returned when a trait defines an operation with a nil
	// body.
	ErrNilBody = errors.New("mixin: nil operation body")
)

// DuplicateTraitError is returned when a composition mixes in two traits
// with the same name. Chains and field diagnostics are keyed by trait name,
// so names must be unique within one composition.
type DuplicateTraitError struct{ Trait string }

// Error implements the error interface.
func (e DuplicateTraitError) Error() string {
	// Example: mixin: duplicate trait "Sugar"
	return "mixin: duplicate trait " + strconv.Quote(e.Trait)
}

// UnresolvedOperationError is returned when an operation is declared (or
// invoked) but no trait in the composition defines it, i.e. its resolution
// chain is empty.
type UnresolvedOperationError struct{ Op OperationName }

// Error implements the error interface.
func (e UnresolvedOperationError) Error() string {
	// Example: mixin: unresolved operation "price"
	return "mixin: unresolved operation " + strconv.Quote(string(e.Op))
}

// UnsatisfiedRequirementError is returned when a trait's self-type names a
// capability (operation) that the composition resolves nowhere.
type UnsatisfiedRequirementError struct {
	// Trait is the trait whose self-type is unsatisfied.
	Trait string

	// Op is the needed operation with no resolution chain.
	Op OperationName
}

// Error implements the error interface.
func (e UnsatisfiedRequirementError) Error() string {
	// Example: mixin: trait "Fraud" needs unresolved capability "score"
	return "mixin: trait " + strconv.Quote(e.Trait) +
		" needs unresolved capability " + strconv.Quote(string(e.Op))
}

// IncompatibleFieldTypeError is returned when the single concrete
// initializer supplied for a shared field is not assignable to some trait's
// declared requirement for that field.
type IncompatibleFieldTypeError struct {
	// Field is the shared field name.
	Field string

	// Trait is the trait whose requirement the value does not satisfy.
	Trait string

	// Required is the declared requirement type, as a string.
	Required string

	// GotType is reflect.TypeOf(value).String() for the initializer, or
	// "<nil>" for an untyped nil.
	GotType string
}

// Error implements the error interface.
func (e IncompatibleFieldTypeError) Error() string {
	// Example: mixin: field "item" does not satisfy trait "Priced" requirement mixin_test.Priced (got string)
	return "mixin: field " + strconv.Quote(e.Field) +
		" does not satisfy trait " + strconv.Quote(e.Trait) +
		" requirement " + e.Required + " (got " + e.GotType + ")"
}

// MissingFieldValueError is returned when a trait requires a field and the
// composition supplies no initializer for it.
//
// It is kept distinct from IncompatibleFieldTypeError so callers can tell
// "absent" from "wrong shape".
type MissingFieldValueError struct {
	// Field is the required field name.
	Field string

	// Trait is the first trait (in composition order) requiring it.
	Trait string
}

// Error implements the error interface.
func (e MissingFieldValueError) Error() string {
	// Example: mixin: field "basePrice" required by trait "Coffee" has no value
	return "mixin: field " + strconv.Quote(e.Field) +
		" required by trait " + strconv.Quote(e.Trait) + " has no value"
}

// UnknownFieldError is returned when the composition supplies an
// initializer for a field no trait requires. Silently accepting extras
// would hide typos in field names.
type UnknownFieldError struct{ Field string }

// Error implements the error interface.
func (e UnknownFieldError) Error() string {
	// Example: mixin: field "basePrize" is not required by any trait
	return "mixin: field " + strconv.Quote(e.Field) + " is not required by any trait"
}

// NoSuchSuperImplementationError is returned when a body at the first
// (base) position of a chain invokes its Next handle: there is nothing
// below the base. It indicates a defect in trait authoring and is
// propagated to the Invoke caller, never recovered internally.
type NoSuchSuperImplementationError struct {
	// Op is the operation being dispatched.
	Op OperationName

	// Trait is the trait whose body chained past the bottom.
	Trait string
}

// Error implements the error interface.
func (e NoSuchSuperImplementationError) Error() string {
	// Example: mixin: trait "Coffee" has no super implementation for "price"
	return "mixin: trait " + strconv.Quote(e.Trait) +
		" has no super implementation for " + strconv.Quote(string(e.Op))
}

// WrongResultTypeError is returned by TryInvokeAs when an operation
// completes but its result is not the requested type.
type WrongResultTypeError struct {
	// Op is the operation invoked.
	Op OperationName

	// GotType is reflect.TypeOf(result).String() for the actual result.
	GotType string
}

// Error implements the error interface.
func (e WrongResultTypeError) Error() string {
	// Example: mixin: operation "price" returned wrong type (string)
	return "mixin: operation " + strconv.Quote(string(e.Op)) +
		" returned wrong type (" + e.GotType + ")"
}
