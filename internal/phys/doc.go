// Package phys provides the grouping and lifecycle layer of a 2D
// rigid-body simulation:
//
//   - [Body]: particle with position, mass and shapes
//   - [Constraint]: joint between bodies with rewritable body slots
//   - [Compound]: ownership tree grouping bodies, constraints and
//     nested compounds into one unit
//   - [Space]: the world; owns roots and runs the stepping lifecycle
//
// A compound tree is inserted into or removed from a space
// atomically, deep-copied with internal references remapped (and
// external references nulled), and dissolved in place with
// [Compound.BreakApart] without disturbing the space's callback
// bookkeeping.
//
// # Stepping
//
// Structural mutation is rejected while a space is executing
// [Space.Step]; read-only traversal, [Compound.COM] and
// [Compound.Copy] stay legal at any time. Everything is
// single-threaded and synchronous.
package phys
