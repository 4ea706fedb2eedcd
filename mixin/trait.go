package mixin

import (
	"reflect"
)

// OperationName identifies a behavior resolvable on a composed instance.
//
// Names are typically defined as package-level constants to avoid typos.
//
// Example:
//
//	const (
//	  OpPrice    mixin.OperationName = "price"
//	  OpDescribe mixin.OperationName = "describe"
//	)
type OperationName string

// Op converts a string into an OperationName.
//
// This is a small convenience for defining names (often as constants).
func Op(name string) OperationName { return OperationName(name) }

// Next is the handle a body holds on "the remaining chain" for its own
// operation. Calling it dispatches to the implementation immediately below
// the body's position in the resolution chain.
//
// A body that never calls Next terminates the descent at its position.
type Next func() (any, error)

// Body is one trait's implementation of an operation.
//
// Bodies are pure functions of the receiving instance (read-only field
// access, virtual calls to sibling operations via self.Invoke) and the Next
// handle bound to their chain position. The dispatcher does not interpret
// errors returned by a body; they propagate to the caller unchanged.
type Body func(self *Instance, next Next) (any, error)

// FieldRequirement declares that a trait needs a field of a given shape
// supplied at composition time.
//
// Multiple traits may require the same field name with different shapes;
// the composition then stores a single physical value that must be
// assignable to every declared shape (checked once at build time).
type FieldRequirement struct {
	// Field is the shared field name.
	Field string

	// Type is the required shape. A value satisfies the requirement when it
	// is assignable to this type.
	Type reflect.Type
}

// RequireAs builds a FieldRequirement for type T.
//
// T may be a concrete or an interface type; interface requirements are how
// unrelated traits share one field covariantly.
func RequireAs[T any](field string) FieldRequirement {
	return FieldRequirement{Field: field, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// TraitDef is a named unit of behavior: operation bodies it defines,
// abstract operations it declares, fields it requires, and capabilities it
// needs from the rest of the composition.
//
// A TraitDef is assembled with the fluent Define / Declare / Require / Need
// helpers and must not be mutated after it has been composed.
type TraitDef struct {
	name     string
	ops      []opDef
	declares []OperationName
	requires []FieldRequirement
	needs    []OperationName
}

// opDef is one (operation, body) pair in definition order.
type opDef struct {
	name OperationName
	body Body
}

// NewTrait creates an empty trait definition.
func NewTrait(name string) *TraitDef {
	return &TraitDef{name: name}
}

// Name returns the trait's name.
func (t *TraitDef) Name() string { return t.name }

// Define adds (or overrides, for this trait) an implementation body for op
// and returns the trait for chaining.
//
// Defining the same operation twice on one trait keeps the last body.
func (t *TraitDef) Define(op OperationName, body Body) *TraitDef {
	for i := range t.ops {
		if t.ops[i].name == op {
			t.ops[i].body = body
			return t
		}
	}
	t.ops = append(t.ops, opDef{name: op, body: body})
	return t
}

// Declare marks operations as abstract: the composition is invalid unless
// some trait in it defines each declared operation.
//
// A base trait typically declares the full operation set of the composition.
func (t *TraitDef) Declare(ops ...OperationName) *TraitDef {
	t.declares = append(t.declares, ops...)
	return t
}

// Require adds a field requirement and returns the trait for chaining.
func (t *TraitDef) Require(reqs ...FieldRequirement) *TraitDef {
	t.requires = append(t.requires, reqs...)
	return t
}

// Need declares capabilities this trait expects the composition to resolve
// (the self-type of the trait): operations its bodies call on self without
// defining them itself.
//
// Build fails with UnsatisfiedRequirementError when a needed operation has
// no resolution chain.
func (t *TraitDef) Need(ops ...OperationName) *TraitDef {
	t.needs = append(t.needs, ops...)
	return t
}

// Defines reports whether this trait provides a body for op.
func (t *TraitDef) Defines(op OperationName) bool {
	for i := range t.ops {
		if t.ops[i].name == op {
			return true
		}
	}
	return false
}

// Operations returns the operation names this trait defines, in definition
// order.
func (t *TraitDef) Operations() []OperationName {
	out := make([]OperationName, len(t.ops))
	for i := range t.ops {
		out[i] = t.ops[i].name
	}
	return out
}

// Requirements returns the trait's field requirements in declaration order.
func (t *TraitDef) Requirements() []FieldRequirement {
	out := make([]FieldRequirement, len(t.requires))
	copy(out, t.requires)
	return out
}
