package mixin

import (
	"github.com/benbjohnson/immutable"
)

var emptyLinks = immutable.NewList()

// link is one resolved position in a chain: the defining trait and its body.
type link struct {
	trait string
	body  Body
}

// Chain is the resolution chain for one operation: the sub-sequence of
// traits defining that operation, in composition order. Index 0 is the
// least-specific (base) implementation; the last index is the entry point
// for virtual dispatch.
//
// Chains are immutable; sharing them across instances and goroutines is
// safe.
type Chain struct {
	op OperationName
	l  *immutable.List
}

// Operation returns the operation this chain resolves.
func (c Chain) Operation() OperationName { return c.op }

// Len returns the number of implementations in the chain.
func (c Chain) Len() int {
	if c.l == nil {
		return 0
	}
	return c.l.Len()
}

// Trait returns the name of the trait at chain position i.
func (c Chain) Trait(i int) string { return c.l.Get(i).(link).trait }

// Traits returns the trait names in chain order (base first).
func (c Chain) Traits() []string {
	out := make([]string, 0, c.Len())
	c.Range(func(_ int, name string) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Range iterates over chain positions from base to most-specific.
// If f returns false, iteration will be stopped.
func (c Chain) Range(f func(int, string) bool) {
	if c.l == nil {
		return
	}
	iter := c.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(link).trait) {
			return
		}
	}
}

// at returns the full link at position i. Callers guarantee bounds.
func (c Chain) at(i int) link { return c.l.Get(i).(link) }

type chainBuilder struct {
	op OperationName
	b  *immutable.ListBuilder
}

func newChainBuilder(op OperationName) *chainBuilder {
	return &chainBuilder{op: op, b: immutable.NewListBuilder(emptyLinks)}
}

func (b *chainBuilder) append(trait string, body Body) { b.b.Append(link{trait: trait, body: body}) }

func (b *chainBuilder) build() Chain { return Chain{op: b.op, l: b.b.List()} }

// ResolutionTable maps every operation of a composition to its chain.
//
// Tables returned by Linearize are treated as read-only by the rest of the
// package; callers should do the same.
type ResolutionTable map[OperationName]Chain

// Chain returns the resolution chain for op.
func (rt ResolutionTable) Chain(op OperationName) (Chain, bool) {
	c, ok := rt[op]
	return c, ok
}

// Operations returns every resolvable operation name. Order is unspecified.
func (rt ResolutionTable) Operations() []OperationName {
	out := make([]OperationName, 0, len(rt))
	for op := range rt {
		out = append(out, op)
	}
	return out
}
