package mixin_test

import (
	"github.com/sghaida/omix/mixin"
)

// Operation names shared across the tests.
const (
	opDescribe = mixin.OperationName("describe")
	opPrice    = mixin.OperationName("price")
)

/*
Shared fixture traits.

The coffee fixtures mirror the classic stackable-modification setup: a base
providing ground implementations and condiment traits that delegate to next
and fold a fixed suffix/delta on top.
*/

// coffeeBase declares the operation set, requires the basePrice field, and
// provides the ground implementations nothing below can delegate past.
func coffeeBase() *mixin.TraitDef {
	return mixin.NewTrait("Coffee").
		Declare(opDescribe, opPrice).
		Require(mixin.RequireAs[float64]("basePrice")).
		Define(opDescribe, func(_ *mixin.Instance, _ mixin.Next) (any, error) {
			return "coffee", nil
		}).
		Define(opPrice, func(self *mixin.Instance, _ mixin.Next) (any, error) {
			base, _ := mixin.FieldAs[float64](self, "basePrice")
			return base, nil
		})
}

// condiment overrides describe (next + suffix) and price (next + delta).
func condiment(name, suffix string, delta float64) *mixin.TraitDef {
	return mixin.NewTrait(name).
		Define(opDescribe, func(_ *mixin.Instance, next mixin.Next) (any, error) {
			prev, err := next()
			if err != nil {
				return nil, err
			}
			return prev.(string) + suffix, nil
		}).
		Define(opPrice, func(_ *mixin.Instance, next mixin.Next) (any, error) {
			prev, err := next()
			if err != nil {
				return nil, err
			}
			return prev.(float64) + delta, nil
		})
}

func sugar() *mixin.TraitDef { return condiment("Sugar", " with sugar", 0.2) }
func milk() *mixin.TraitDef  { return condiment("Milk", " with milk", 0.5) }

/*
Covariant shared-field fixtures: two unrelated interface requirements over
the same field name, plus concrete values satisfying both or only one.
*/

type named interface{ DisplayName() string }

type priced interface{ Cents() int }

// menuItem satisfies both named and priced.
type menuItem struct {
	name  string
	cents int
}

func (m menuItem) DisplayName() string { return m.name }
func (m menuItem) Cents() int          { return m.cents }

// labelOnly satisfies named but not priced.
type labelOnly struct{ name string }

func (l labelOnly) DisplayName() string { return l.name }

// labelTrait reads the "item" field through its named projection.
func labelTrait() *mixin.TraitDef {
	return mixin.NewTrait("Label").
		Require(mixin.RequireAs[named]("item")).
		Define(mixin.Op("label"), func(self *mixin.Instance, _ mixin.Next) (any, error) {
			item, _ := mixin.FieldAs[named](self, "item")
			return item.DisplayName(), nil
		})
}

// billTrait reads the same "item" field through its priced projection.
func billTrait() *mixin.TraitDef {
	return mixin.NewTrait("Bill").
		Require(mixin.RequireAs[priced]("item")).
		Define(mixin.Op("cents"), func(self *mixin.Instance, _ mixin.Next) (any, error) {
			item, _ := mixin.FieldAs[priced](self, "item")
			return item.Cents(), nil
		})
}
