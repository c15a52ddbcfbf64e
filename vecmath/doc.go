// Package vecmath provides the float32 arithmetic behind the interpreter's
// 4-component vector kind.
//
// Every function takes and returns [4]float32 by value. Three-component
// operations read x, y and z and produce w = 0.
//
// # Usage
//
//	d := vecmath.Dot3(a, b)
//	n := vecmath.Normalize4(v)
//	c := vecmath.Cross(a, b)
//
// No function guards against degenerate input: normalizing a zero vector
// yields NaN components, and float rules decide Inf and NaN elsewhere.
package vecmath
