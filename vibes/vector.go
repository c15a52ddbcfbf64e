package vibes

import (
	"math"

	"github.com/mgomes/vecscript/heap"
	"github.com/mgomes/vecscript/vecmath"
)

const estimatedVectorBytes = 40

// Vector is the heap object behind KindVector values. Its components never
// change after allocation.
type Vector struct {
	heap.Header
	c [4]float32
}

// Components returns a copy of the four components.
func (v *Vector) Components() [4]float32 { return v.c }

// NewVector allocates a native vector holding c verbatim.
func (st *State) NewVector(c [4]float32) (*Vector, error) {
	v := &Vector{c: c}
	if err := st.heap.Alloc(v, heap.TagVector, estimatedVectorBytes); err != nil {
		return nil, err
	}
	return v, nil
}

func (st *State) newVectorValue(c [4]float32) (Value, error) {
	v, err := st.NewVector(c)
	if err != nil {
		return NewNil(), err
	}
	return newVectorValue(v), nil
}

// PushVector allocates a native vector and pushes it.
func (st *State) PushVector(c [4]float32) error {
	v, err := st.newVectorValue(c)
	if err != nil {
		return err
	}
	st.Push(v)
	return nil
}

// IsVector reports whether the value at idx is a native vector.
func (st *State) IsVector(idx int) bool {
	return st.Get(idx).IsVector()
}

// ToVector returns a copy of the components at idx.
func (st *State) ToVector(idx int) ([4]float32, bool) {
	return st.Get(idx).AsVector()
}

// CheckVector is ToVector with an argument error when idx does not hold a
// native vector.
func (st *State) CheckVector(idx int) ([4]float32, error) {
	v := st.Get(idx)
	if c, ok := v.AsVector(); ok {
		return c, nil
	}
	return [4]float32{}, argTypeError("", idx, "vector", v)
}

func checkVector(fn string, args []Value, i int) ([4]float32, error) {
	v := argAt(args, i)
	if c, ok := v.AsVector(); ok {
		return c, nil
	}
	return [4]float32{}, argTypeError(fn, i, "vector", v)
}

func checkNumber(fn string, args []Value, i int) (float32, error) {
	v := argAt(args, i)
	if !v.IsNumber() {
		return 0, argTypeError(fn, i, "number", v)
	}
	return float32(v.Float()), nil
}

func optNumber(fn string, args []Value, i int) (float32, error) {
	if argAt(args, i).IsNil() {
		return 0, nil
	}
	return checkNumber(fn, args, i)
}

// checkComponent converts a 1-based component index into a slot.
func checkComponent(fn string, args []Value, i int) (int, error) {
	v := argAt(args, i)
	if !v.IsNumber() {
		return 0, argTypeError(fn, i, "number", v)
	}
	n, ok := integralIndex(v)
	if !ok || n < 1 || n > 4 {
		return 0, argRangeError(fn, i)
	}
	return int(n - 1), nil
}

func integralIndex(v Value) (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.data.(int64), true
	case KindFloat:
		f := v.data.(float64)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// vectorComponents reads the constructor arguments shared by both vector
// kinds: up to four numbers, missing or nil components are zero.
func vectorComponents(fn string, args []Value) ([4]float32, error) {
	var c [4]float32
	if len(args) > 4 {
		return c, &ArgError{Func: fn, Arg: 5, Kind: ErrTypeMismatch, Message: "at most 4 components expected"}
	}
	for i := range c {
		n, err := optNumber(fn, args, i+1)
		if err != nil {
			return c, err
		}
		c[i] = n
	}
	return c, nil
}

// nativeVectorOps dispatches operators on native vectors. Native vectors
// are immutable, so the table has no CapIndexAssign handler.
var nativeVectorOps = newNativeVectorOps()

func newNativeVectorOps() *Metatable {
	mt := &Metatable{Name: "vector"}
	mt.Set(CapAdd, nativeBinary("add", vecmath.Add))
	mt.Set(CapSub, nativeBinary("sub", vecmath.Sub))
	mt.Set(CapMul, nativeMul)
	mt.Set(CapDiv, nativeDiv)
	mt.Set(CapNegate, nativeNegate)
	mt.Set(CapIndex, nativeIndex)
	mt.Set(CapStringify, nativeStringify)
	return mt
}

func nativeBinary(fn string, op func(a, b [4]float32) [4]float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		a, err := checkVector(fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		b, err := checkVector(fn, args, 2)
		if err != nil {
			return NewNil(), err
		}
		return st.newVectorValue(op(a, b))
	}
}

func nativeMul(st *State, args []Value) (Value, error) {
	a, b := argAt(args, 1), argAt(args, 2)
	switch {
	case a.IsVector() && b.IsVector():
		x, _ := a.AsVector()
		y, _ := b.AsVector()
		return st.newVectorValue(vecmath.Mul(x, y))
	case a.IsVector() && b.IsNumber():
		x, _ := a.AsVector()
		return st.newVectorValue(vecmath.Scale(x, float32(b.Float())))
	case a.IsNumber() && b.IsVector():
		y, _ := b.AsVector()
		return st.newVectorValue(vecmath.Scale(y, float32(a.Float())))
	case a.IsVector():
		return NewNil(), argTypeError("mul", 2, "vector or number", b)
	default:
		return NewNil(), argTypeError("mul", 1, "vector or number", a)
	}
}

func nativeDiv(st *State, args []Value) (Value, error) {
	v, err := checkVector("div", args, 1)
	if err != nil {
		return NewNil(), err
	}
	s, err := checkNumber("div", args, 2)
	if err != nil {
		return NewNil(), err
	}
	if s == 0 {
		return NewNil(), &ArgError{Func: "div", Arg: 2, Kind: ErrDivisionByZero, Message: "division by zero"}
	}
	return st.newVectorValue(vecmath.Div(v, s))
}

func nativeNegate(st *State, args []Value) (Value, error) {
	v, err := checkVector("unm", args, 1)
	if err != nil {
		return NewNil(), err
	}
	return st.newVectorValue(vecmath.Negate(v))
}

func nativeIndex(st *State, args []Value) (Value, error) {
	v, err := checkVector("index", args, 1)
	if err != nil {
		return NewNil(), err
	}
	i, err := checkComponent("index", args, 2)
	if err != nil {
		return NewNil(), err
	}
	return NewFloat(float64(v[i])), nil
}

func nativeStringify(_ *State, args []Value) (Value, error) {
	v, err := checkVector("tostring", args, 1)
	if err != nil {
		return NewNil(), err
	}
	return NewString(formatVector(v)), nil
}
