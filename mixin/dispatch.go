package mixin

import (
	"go.uber.org/zap"
)

// Instance is one concrete object produced by a Composition: the resolution
// table, the single physical storage for every shared field, and the
// receiver passed to every body invocation.
//
// Instances are immutable after Build. Distinct instances share no mutable
// state, so concurrent use needs no coordination.
type Instance struct {
	table  ResolutionTable
	fields map[string]any
	logger *zap.Logger
}

// Resolution returns the instance's resolution table.
func (in *Instance) Resolution() ResolutionTable { return in.table }

// Operations returns every operation invocable on this instance.
// Order is unspecified.
func (in *Instance) Operations() []OperationName { return in.table.Operations() }

// Field returns the raw shared value stored under name.
func (in *Instance) Field(name string) (any, bool) {
	v, ok := in.fields[name]
	return v, ok
}

// FieldAs returns the shared field narrowed to T.
//
// ok is false if the field is absent or not a T. For a field the instance's
// composition validated against a requirement of type T, the narrowing
// always succeeds: it is a projection of the one stored value, not a copy.
func FieldAs[T any](in *Instance, name string) (T, bool) {
	var zero T
	if in == nil || in.fields == nil {
		return zero, false
	}
	raw, ok := in.fields[name]
	if !ok || raw == nil {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Invoke runs op with virtual-dispatch semantics: execution enters the
// resolution chain at its last (most-specific) position, and every Next
// call inside a body re-enters the chain one position below that body.
//
// Invoking an operation absent from the resolution table fails with
// UnresolvedOperationError. A base body that calls Next surfaces
// NoSuchSuperImplementationError; errors returned by bodies themselves
// propagate unchanged.
func (in *Instance) Invoke(op OperationName) (any, error) {
	chain, ok := in.table[op]
	if !ok || chain.Len() == 0 {
		return nil, UnresolvedOperationError{Op: op}
	}
	return in.descend(chain, chain.Len()-1)
}

// descend executes the body at chain position i. The Next handle it hands
// out targets i-1, so the descent index strictly decreases and every call
// terminates.
func (in *Instance) descend(chain Chain, i int) (any, error) {
	l := chain.at(i)
	in.logger.Debug("dispatch",
		zap.String("op", string(chain.op)),
		zap.String("trait", l.trait),
		zap.Int("position", i),
	)
	next := Next(func() (any, error) {
		if i == 0 {
			return nil, NoSuchSuperImplementationError{Op: chain.op, Trait: l.trait}
		}
		return in.descend(chain, i-1)
	})
	return l.body(in, next)
}

// InvokeAs runs op and returns its result typed as V.
//
// ok is false if the invocation failed or the result is not a V.
func InvokeAs[V any](in *Instance, op OperationName) (V, bool) {
	var zero V
	raw, err := in.Invoke(op)
	if err != nil {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// TryInvokeAs runs op and returns its result typed as V.
//
// It returns:
//   - the invocation error, if dispatch failed
//   - WrongResultTypeError if the operation completed with a non-V result
func TryInvokeAs[V any](in *Instance, op OperationName) (V, error) {
	var zero V
	raw, err := in.Invoke(op)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(V)
	if !ok {
		return zero, WrongResultTypeError{Op: op, GotType: typeName(raw)}
	}
	return v, nil
}

// MustInvoke runs op and returns its result typed as V or panics.
//
// It panics on any invocation error or result type mismatch. Useful in
// examples/tests where a failed dispatch should fail fast.
func MustInvoke[V any](in *Instance, op OperationName) V {
	v, err := TryInvokeAs[V](in, op)
	if err != nil {
		panic(err)
	}
	return v
}
