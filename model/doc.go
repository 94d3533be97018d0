// Package model implements the immutable, schema-typed document tree used by
// the inkwell engine.
//
// Positions are integer offsets in the canonical depth-first flattening of a
// document: every node boundary and every rune of text consumes one unit.
// Ranges are half-open: [From, To).
//
// Nodes are never mutated after construction. Every edit produces new nodes
// along the changed path and shares the rest.
package model
