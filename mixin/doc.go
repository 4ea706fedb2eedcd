// Package mixin implements linearized multiple-trait composition with
// stackable super-calls.
//
// The model has three stages:
//
//   - Describe traits with NewTrait: each trait may Define operation bodies,
//     Declare abstract operations, Require fields, and Need capabilities
//     supplied by other traits in the same composition.
//
//   - Compose traits in the order they are mixed in and Build an Instance.
//     Linearization walks the composition left to right and appends each
//     defining trait to the operation's resolution chain, so the last-listed
//     trait is the most specific. Build also checks every field initializer
//     against every trait's declared requirement for that field name, and
//     that every declared or needed operation resolves to a non-empty chain.
//
//   - Invoke operations on the Instance. A call enters the chain at its
//     tail; when a body calls its Next handle, dispatch re-enters the chain
//     one position below the caller, regardless of any supertype
//     relationship between the traits. A base body that calls Next fails
//     with NoSuchSuperImplementationError.
//
// All validation failures are typed errors that work with errors.As:
// duplicate traits, unresolved or unneeded operations, and field
// requirement conflicts surface at build time; only a next-call past the
// bottom of a chain surfaces at invoke time.
//
// Compositions, traits, and resolution chains are immutable once built, so
// distinct instances of the same composition may be used concurrently
// without coordination.
//
// Typed results are retrieved via InvokeAs / TryInvokeAs / MustInvoke, and
// shared field projections via FieldAs.
//
// Import
//
//	 "github.com/sghaida/omix/mixin"
package mixin
