// Package omix provides explicit, linearized mixin composition for Go.
//
// This repository models trait-style composition as plain data instead of
// language inheritance:
//
//   - a trait is a named record of operation bodies, abstract declarations,
//     field requirements, and capability needs
//   - a composition is the literal left-to-right list of mixed-in traits
//   - linearization turns that list into one resolution chain per operation
//   - dispatch enters a chain at its most-specific link, and every
//     "call the next implementation" is resolved against the chain position,
//     never against a declared supertype
//
// The goal is to keep composition explicit (the mix-in order is the whole
// story), avoid reflection-driven dispatch tables, and keep the surface area
// intentionally small.
//
// See subpackages:
//   - mixin: the linearizer and dispatcher library
//   - manifest: YAML composition descriptions for drivers and the CLI
//   - cmd/omix: command-line harness (run / chains)
//   - examples/*: runnable single-concept demos
package omix
