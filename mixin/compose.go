package mixin

import (
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Composition is the ordered list of traits mixed into a base, plus the
// concrete initializers for every required field.
//
// The order is the whole story: linearization appends defining traits left
// to right, so the last-listed trait is the most specific for every
// operation it defines. Declared supertype relationships between traits
// play no part.
//
// A Composition is assembled with WithField / WithLogger and is fixed once
// Build has been called; traits are never added or removed at runtime.
type Composition struct {
	traits []*TraitDef
	fields map[string]any
	logger *zap.Logger
}

// Compose creates a composition over base followed by mixins, in mix-in
// order.
func Compose(base *TraitDef, mixins ...*TraitDef) *Composition {
	traits := make([]*TraitDef, 0, 1+len(mixins))
	traits = append(traits, base)
	traits = append(traits, mixins...)
	return &Composition{
		traits: traits,
		fields: make(map[string]any),
	}
}

// WithField supplies the concrete initializer for a required field and
// returns the composition for chaining. Supplying the same field twice
// keeps the last value.
func (c *Composition) WithField(name string, value any) *Composition {
	c.fields[name] = value
	return c
}

// WithLogger attaches a logger used for build and dispatch tracing at debug
// level. The default is a nop logger.
func (c *Composition) WithLogger(l *zap.Logger) *Composition {
	c.logger = l
	return c
}

// Traits returns the composition's trait names in mix-in order.
func (c *Composition) Traits() []string {
	out := make([]string, len(c.traits))
	for i, t := range c.traits {
		if t != nil {
			out[i] = t.name
		}
	}
	return out
}

func (c *Composition) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// checkTraits validates the trait list itself: no nil or unnamed traits,
// no nil bodies, unique names.
func (c *Composition) checkTraits() error {
	seen := make(map[string]struct{}, len(c.traits))
	for _, t := range c.traits {
		if t == nil || t.name == "" {
			return ErrNilTrait
		}
		if _, dup := seen[t.name]; dup {
			return DuplicateTraitError{Trait: t.name}
		}
		seen[t.name] = struct{}{}
		for _, od := range t.ops {
			if od.body == nil {
				return ErrNilBody
			}
		}
	}
	return nil
}

// Linearize builds the resolution table: one chain per operation, ordered
// from least-specific (base) to most-specific (last mixed-in trait).
//
// It fails with:
//   - ErrNilTrait / ErrNilBody / DuplicateTraitError on malformed input
//   - UnresolvedOperationError when a declared operation has an empty chain
//   - UnsatisfiedRequirementError when a trait's self-type needs an
//     operation the composition resolves nowhere
//
// Linearize is deterministic and side effect free: calling it twice on the
// same composition yields tables with identical chains.
func (c *Composition) Linearize() (ResolutionTable, error) {
	if err := c.checkTraits(); err != nil {
		return nil, err
	}

	builders := make(map[OperationName]*chainBuilder)
	var order []OperationName

	for _, t := range c.traits {
		for _, od := range t.ops {
			b, ok := builders[od.name]
			if !ok {
				b = newChainBuilder(od.name)
				builders[od.name] = b
				order = append(order, od.name)
			}
			b.append(t.name, od.body)
		}
	}

	table := make(ResolutionTable, len(order))
	for _, op := range order {
		table[op] = builders[op].build()
	}

	// Declared operations must resolve, in declaration order so the first
	// offender is reported stably.
	for _, t := range c.traits {
		for _, op := range t.declares {
			if _, ok := table[op]; !ok {
				return nil, UnresolvedOperationError{Op: op}
			}
		}
	}

	// Self-types: every needed capability must have a chain somewhere in
	// this composition, whoever ends up providing it.
	for _, t := range c.traits {
		for _, op := range t.needs {
			if _, ok := table[op]; !ok {
				return nil, UnsatisfiedRequirementError{Trait: t.name, Op: op}
			}
		}
	}

	logger := c.log()
	for _, op := range order {
		logger.Debug("chain linearized",
			zap.String("op", string(op)),
			zap.Strings("traits", table[op].Traits()),
		)
	}
	return table, nil
}

// Build linearizes the composition, validates every field initializer
// against every trait's requirement for that field, and returns a ready
// Instance.
//
// Field validation per requirement, in composition order:
//   - MissingFieldValueError when no initializer was supplied
//   - IncompatibleFieldTypeError when the initializer is not assignable to
//     the declared requirement type
//
// An initializer no trait requires fails with UnknownFieldError. On
// success the instance owns a single physical value per field name; trait
// bodies read narrowing projections of it, never copies.
func (c *Composition) Build() (*Instance, error) {
	table, err := c.Linearize()
	if err != nil {
		return nil, err
	}

	required := make(map[string]struct{})
	for _, t := range c.traits {
		for _, req := range t.requires {
			required[req.Field] = struct{}{}
			value, ok := c.fields[req.Field]
			if !ok {
				return nil, MissingFieldValueError{Field: req.Field, Trait: t.name}
			}
			if !satisfies(value, req.Type) {
				return nil, IncompatibleFieldTypeError{
					Field:    req.Field,
					Trait:    t.name,
					Required: req.Type.String(),
					GotType:  typeName(value),
				}
			}
		}
	}

	// Report extras stably: lowest name first.
	var unknown []string
	for name := range c.fields {
		if _, ok := required[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, UnknownFieldError{Field: unknown[0]}
	}

	fields := make(map[string]any, len(c.fields))
	for name, value := range c.fields {
		fields[name] = value
	}

	return &Instance{
		table:  table,
		fields: fields,
		logger: c.log(),
	}, nil
}

// satisfies reports whether value is assignable to the requirement type.
// An untyped nil satisfies nothing; requirements are for supplied values.
func satisfies(value any, req reflect.Type) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).AssignableTo(req)
}

func typeName(value any) string {
	if value == nil {
		return "<nil>"
	}
	return reflect.TypeOf(value).String()
}
