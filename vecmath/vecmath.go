package vecmath

import "math"

// Zero returns (0, 0, 0, 0).
func Zero() [4]float32 { return [4]float32{} }

// One returns (1, 1, 1, 1).
func One() [4]float32 { return [4]float32{1, 1, 1, 1} }

// Dot3 is the dot product of the x, y and z components.
func Dot3(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Dot4 is the dot product of all four components.
func Dot4(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Cross is the 3-D cross product with w = 0.
func Cross(a, b [4]float32) [4]float32 {
	return [4]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
		0,
	}
}

func Length3(v [4]float32) float32 {
	return sqrt(Dot3(v, v))
}

func Length4(v [4]float32) float32 {
	return sqrt(Dot4(v, v))
}

// Normalize3 divides x, y and z by the 3-D length and sets w = 0.
func Normalize3(v [4]float32) [4]float32 {
	n := Length3(v)
	return [4]float32{v[0] / n, v[1] / n, v[2] / n, 0}
}

// Normalize4 divides every component by the 4-D length.
func Normalize4(v [4]float32) [4]float32 {
	n := Length4(v)
	return [4]float32{v[0] / n, v[1] / n, v[2] / n, v[3] / n}
}

func Add(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func Sub(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Mul multiplies component-wise.
func Mul(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func Scale(v [4]float32, s float32) [4]float32 {
	return [4]float32{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Div divides every component by s. Callers reject s == 0 themselves when
// they want an error instead of Inf or NaN.
func Div(v [4]float32, s float32) [4]float32 {
	return [4]float32{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

func Negate(v [4]float32) [4]float32 {
	return [4]float32{-v[0], -v[1], -v[2], -v[3]}
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
