package mixin

import (
	"errors"
	"fmt"
	"sort"
)

// TraitSource provides trait definitions by name at composition time.
//
// It is intentionally:
// - read-only
// - side effect free
// - composition-time only
//
// Expected usage:
//
//	def, ok, err := src.Resolve("Sugar")
type TraitSource interface {
	Resolve(name string) (def *TraitDef, ok bool, err error)
}

// ErrRegistryPanic is returned if a trait source implementation panics
// internally.
var ErrRegistryPanic = errors.New("mixin: panic during Resolve")

// TraitRegistry is a simple in-memory TraitSource keyed by trait name.
type TraitRegistry struct {
	items map[string]*TraitDef
}

func NewTraitRegistry() *TraitRegistry {
	return &TraitRegistry{items: map[string]*TraitDef{}}
}

// Provide stores trait definitions under their names and returns the
// registry for chaining. Nil or unnamed traits are ignored; a later
// definition with the same name replaces the earlier one.
func (r *TraitRegistry) Provide(defs ...*TraitDef) *TraitRegistry {
	for _, def := range defs {
		if def == nil || def.name == "" {
			continue
		}
		r.items[def.name] = def
	}
	return r
}

// Resolve implements TraitSource and defensively converts panics into
// errors.
func (r *TraitRegistry) Resolve(name string) (def *TraitDef, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			def = nil
			ok = false
			err = fmt.Errorf("%w: %v", ErrRegistryPanic, rec)
		}
	}()

	d, ok := r.items[name]
	return d, ok, nil
}

// Get returns the trait if present (no panic).
func (r *TraitRegistry) Get(name string) (*TraitDef, bool) {
	d, ok := r.items[name]
	return d, ok
}

// Names returns the registered trait names in lexical order.
func (r *TraitRegistry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustGet returns the trait or panics with a helpful message.
// Useful in examples/tests where missing traits should fail fast.
func (r *TraitRegistry) MustGet(name string) *TraitDef {
	d, ok := r.items[name]
	if !ok {
		panic(fmt.Errorf("mixin: registry missing trait %q", name))
	}
	return d
}

// ComposeFrom builds a composition by resolving names against a source:
// the first name is the base, the rest are mixed in left to right.
func ComposeFrom(src TraitSource, names ...string) (*Composition, error) {
	if len(names) == 0 {
		return nil, ErrNilTrait
	}
	traits := make([]*TraitDef, 0, len(names))
	for _, name := range names {
		def, ok, err := src.Resolve(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("mixin: unknown trait %q", name)
		}
		traits = append(traits, def)
	}
	return Compose(traits[0], traits[1:]...), nil
}
