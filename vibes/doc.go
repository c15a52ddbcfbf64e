// Package vibes implements a small embeddable scripting engine whose values
// live on a garbage-collected heap. Its headline value is the 4-component
// float32 vector, available in two representations selected by
// Config.VectorKind:
//   - native: an immutable heap value of its own kind (KindVector).
//   - boxed: a mutable userdata carrying the "vec.box" metatable.
//
// Both are exposed through the vec library (vec.new, vec.dot3, vec.cross,
// vec.normalize4, ...) and through the arithmetic operators, which
// dispatch on a closed set of capabilities.
//
// The language supports literals for ints, floats, strings, bools, nil,
// arrays and hashes; arithmetic, comparison and logical operators;
// ranges; indexing and member access; calls; assignment; if/elsif/else and
// for loops. Comments beginning with `#` are ignored. The value of the
// last statement is the script result.
//
// Each State owns a heap. Values on its stack, its globals and its
// registry are the collector roots; everything else is reclaimed
// incrementally. The interpreter enforces a step quota and a memory quota.
package vibes
