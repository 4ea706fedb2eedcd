// Package manifest loads YAML composition descriptions and compiles them
// into mixin compositions.
//
// A manifest declares traits with small declarative bodies, the mix-in
// order, the field initializers, and the operations a driver should invoke:
//
//	traits:
//	  - name: Coffee
//	    declares: [describe, price]
//	    fields:
//	      basePrice: number
//	    ops:
//	      describe: {value: coffee}
//	      price: {field: basePrice}
//	  - name: Milk
//	    ops:
//	      describe: {append: " with milk"}
//	      price: {add: 0.5}
//	compose: [Coffee, Milk]
//	fields:
//	  basePrice: 1.0
//	invoke: [describe, price]
//
// Each operation spec carries exactly one kind:
//
//	value:  a constant result
//	field:  read a named shared field
//	append: call next and append a suffix (string operations)
//	add:    call next and add a delta (numeric operations)
//
// Field shapes are the words string, number, bool, any. Numeric values are
// normalized to float64 so "number" fields and "add" deltas compose.
package manifest

import (
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/omix/mixin"
)

// Document is a parsed composition description.
type Document struct {
	Traits  []TraitSpec    `yaml:"traits"`
	Compose []string       `yaml:"compose"`
	Fields  map[string]any `yaml:"fields"`
	Invoke  []string       `yaml:"invoke"`
}

// TraitSpec describes one trait: abstract declarations, self-type needs,
// field shapes, and declarative operation bodies.
//
// Ops values stay loose maps at the YAML layer; Composition decodes them
// into opSpec with mapstructure so unknown keys are reported with trait and
// operation context.
type TraitSpec struct {
	Name     string                    `yaml:"name"`
	Declares []string                  `yaml:"declares"`
	Needs    []string                  `yaml:"needs"`
	Fields   map[string]string         `yaml:"fields"`
	Ops      map[string]map[string]any `yaml:"ops"`
}

// opSpec is the decoded declarative body for one operation.
type opSpec struct {
	Value  any      `mapstructure:"value"`
	Field  string   `mapstructure:"field"`
	Append *string  `mapstructure:"append"`
	Add    *float64 `mapstructure:"add"`
}

var shapeTypes = map[string]reflect.Type{
	"string": reflect.TypeOf(""),
	"number": reflect.TypeOf(float64(0)),
	"bool":   reflect.TypeOf(true),
	"any":    reflect.TypeOf((*any)(nil)).Elem(),
}

// Parse decodes and validates a YAML manifest.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// InvokeOps returns the operations the manifest asks a driver to call, in
// document order.
func (d *Document) InvokeOps() []mixin.OperationName {
	out := make([]mixin.OperationName, len(d.Invoke))
	for i, name := range d.Invoke {
		out[i] = mixin.Op(name)
	}
	return out
}

func (d *Document) validate() error {
	if len(d.Traits) == 0 {
		return fmt.Errorf("manifest: no traits declared")
	}
	if len(d.Compose) == 0 {
		return fmt.Errorf("manifest: compose order is empty")
	}

	declared := make(map[string]struct{}, len(d.Traits))
	for _, ts := range d.Traits {
		if ts.Name == "" {
			return fmt.Errorf("manifest: trait without a name")
		}
		if _, dup := declared[ts.Name]; dup {
			return fmt.Errorf("manifest: trait %q declared twice", ts.Name)
		}
		declared[ts.Name] = struct{}{}

		for field, shape := range ts.Fields {
			if _, ok := shapeTypes[shape]; !ok {
				return fmt.Errorf("manifest: trait %q field %q has unknown shape %q", ts.Name, field, shape)
			}
		}
	}

	for _, name := range d.Compose {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("manifest: compose references undeclared trait %q", name)
		}
	}
	return nil
}

// Composition compiles the manifest into a mixin composition ready to
// Linearize or Build.
func (d *Document) Composition() (*mixin.Composition, error) {
	defs := make(map[string]*mixin.TraitDef, len(d.Traits))
	for _, ts := range d.Traits {
		def, err := ts.compile()
		if err != nil {
			return nil, err
		}
		defs[ts.Name] = def
	}

	traits := make([]*mixin.TraitDef, len(d.Compose))
	for i, name := range d.Compose {
		traits[i] = defs[name]
	}

	comp := mixin.Compose(traits[0], traits[1:]...)
	for name, value := range d.Fields {
		comp.WithField(name, normalizeNumber(value))
	}
	return comp, nil
}

// compile turns one TraitSpec into a TraitDef with closure bodies.
func (ts TraitSpec) compile() (*mixin.TraitDef, error) {
	def := mixin.NewTrait(ts.Name)

	for _, op := range ts.Declares {
		def.Declare(mixin.Op(op))
	}
	for _, op := range ts.Needs {
		def.Need(mixin.Op(op))
	}

	// Maps carry no order; sort so requirement and definition order is
	// stable across loads.
	for _, field := range sortedKeys(ts.Fields) {
		def.Require(mixin.FieldRequirement{Field: field, Type: shapeTypes[ts.Fields[field]]})
	}

	for _, op := range sortedKeys(ts.Ops) {
		body, err := ts.compileOp(op, ts.Ops[op])
		if err != nil {
			return nil, err
		}
		def.Define(mixin.Op(op), body)
	}
	return def, nil
}

func (ts TraitSpec) compileOp(op string, raw map[string]any) (mixin.Body, error) {
	var spec opSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("manifest: trait %q op %q: %w", ts.Name, op, err)
	}

	kinds := 0
	if _, ok := raw["value"]; ok {
		kinds++
	}
	if _, ok := raw["field"]; ok {
		if spec.Field == "" {
			return nil, fmt.Errorf("manifest: trait %q op %q: empty field name", ts.Name, op)
		}
		kinds++
	}
	if spec.Append != nil {
		kinds++
	}
	if spec.Add != nil {
		kinds++
	}
	if kinds != 1 {
		return nil, fmt.Errorf("manifest: trait %q op %q needs exactly one of value/field/append/add", ts.Name, op)
	}

	switch {
	case spec.Append != nil:
		suffix := *spec.Append
		return func(_ *mixin.Instance, next mixin.Next) (any, error) {
			prev, err := next()
			if err != nil {
				return nil, err
			}
			s, ok := prev.(string)
			if !ok {
				return nil, fmt.Errorf("manifest: op %q: append over non-string %T", op, prev)
			}
			return s + suffix, nil
		}, nil

	case spec.Add != nil:
		delta := *spec.Add
		return func(_ *mixin.Instance, next mixin.Next) (any, error) {
			prev, err := next()
			if err != nil {
				return nil, err
			}
			n, ok := normalizeNumber(prev).(float64)
			if !ok {
				return nil, fmt.Errorf("manifest: op %q: add over non-number %T", op, prev)
			}
			return n + delta, nil
		}, nil

	case spec.Field != "":
		field := spec.Field
		return func(self *mixin.Instance, _ mixin.Next) (any, error) {
			value, ok := self.Field(field)
			if !ok {
				return nil, fmt.Errorf("manifest: op %q: field %q not present", op, field)
			}
			return value, nil
		}, nil

	default:
		value := normalizeNumber(spec.Value)
		return func(_ *mixin.Instance, _ mixin.Next) (any, error) {
			return value, nil
		}, nil
	}
}

// normalizeNumber widens YAML integer scalars to float64 so numeric fields
// and add deltas compose regardless of how the literal was written.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
