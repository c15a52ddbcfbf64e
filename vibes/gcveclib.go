package vibes

import (
	"encoding/binary"
	"math"

	"github.com/mgomes/vecscript/vecmath"
)

const (
	// BoxedVectorMetatable names the metatable of boxed vectors.
	BoxedVectorMetatable = "vec.box"

	boxedVectorBytes = 16
)

var boxedVectors = vectorKind{
	check:       checkBox,
	make:        (*State).newBox,
	index:       boxIndex,
	indexAssign: boxIndexAssign,
	open:        openBoxMetatable,
}

func openBoxMetatable(st *State) error {
	mt, _ := st.NewMetatable(BoxedVectorMetatable)
	mt.Set(CapAdd, boxBinary("add", vecmath.Add))
	mt.Set(CapSub, boxBinary("sub", vecmath.Sub))
	mt.Set(CapMul, boxMul)
	mt.Set(CapDiv, boxDiv)
	mt.Set(CapNegate, boxNegate)
	mt.Set(CapIndex, boxIndex)
	mt.Set(CapIndexAssign, boxIndexAssign)
	mt.Set(CapStringify, boxStringify)
	return nil
}

func (st *State) newBox(c [4]float32) (Value, error) {
	u, err := st.NewUserdata(boxedVectorBytes, st.Metatable(BoxedVectorMetatable))
	if err != nil {
		return NewNil(), err
	}
	for i, f := range c {
		putBoxComponent(u, i, f)
	}
	return newUserdataValue(u), nil
}

func boxComponents(u *Userdata) [4]float32 {
	var c [4]float32
	for i := range c {
		c[i] = math.Float32frombits(binary.LittleEndian.Uint32(u.data[i*4:]))
	}
	return c
}

func putBoxComponent(u *Userdata, i int, f float32) {
	binary.LittleEndian.PutUint32(u.data[i*4:], math.Float32bits(f))
}

func checkBox(st *State, fn string, args []Value, i int) ([4]float32, error) {
	u, err := st.CheckUserdata(args, i, fn, BoxedVectorMetatable)
	if err != nil {
		return [4]float32{}, err
	}
	return boxComponents(u), nil
}

func (st *State) isBox(v Value) bool {
	u := v.Userdata()
	return u != nil && u.meta != nil && u.meta == st.metatables[BoxedVectorMetatable]
}

func boxBinary(fn string, op func(a, b [4]float32) [4]float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		a, err := checkBox(st, fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		b, err := checkBox(st, fn, args, 2)
		if err != nil {
			return NewNil(), err
		}
		return st.newBox(op(a, b))
	}
}

func boxMul(st *State, args []Value) (Value, error) {
	a, b := argAt(args, 1), argAt(args, 2)
	switch {
	case st.isBox(a) && st.isBox(b):
		return st.newBox(vecmath.Mul(boxComponents(a.Userdata()), boxComponents(b.Userdata())))
	case st.isBox(a) && b.IsNumber():
		return st.newBox(vecmath.Scale(boxComponents(a.Userdata()), float32(b.Float())))
	case a.IsNumber() && st.isBox(b):
		return st.newBox(vecmath.Scale(boxComponents(b.Userdata()), float32(a.Float())))
	case st.isBox(a):
		return NewNil(), argTypeError("mul", 2, "vector or number", b)
	default:
		return NewNil(), argTypeError("mul", 1, "vector or number", a)
	}
}

func boxDiv(st *State, args []Value) (Value, error) {
	v, err := checkBox(st, "div", args, 1)
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
	return st.newBox(vecmath.Div(v, s))
}

func boxNegate(st *State, args []Value) (Value, error) {
	v, err := checkBox(st, "unm", args, 1)
	if err != nil {
		return NewNil(), err
	}
	return st.newBox(vecmath.Negate(v))
}

func boxIndex(st *State, args []Value) (Value, error) {
	v, err := checkBox(st, "index", args, 1)
	if err != nil {
		return NewNil(), err
	}
	i, err := checkComponent("index", args, 2)
	if err != nil {
		return NewNil(), err
	}
	return NewFloat(float64(v[i])), nil
}

func boxIndexAssign(st *State, args []Value) (Value, error) {
	u, err := st.CheckUserdata(args, 1, "newindex", BoxedVectorMetatable)
	if err != nil {
		return NewNil(), err
	}
	i, err := checkComponent("newindex", args, 2)
	if err != nil {
		return NewNil(), err
	}
	f, err := checkNumber("newindex", args, 3)
	if err != nil {
		return NewNil(), err
	}
	putBoxComponent(u, i, f)
	return NewNil(), nil
}

// boxStringify may run without a State, so it only inspects the block.
func boxStringify(_ *State, args []Value) (Value, error) {
	u := argAt(args, 1).Userdata()
	if u == nil || len(u.data) < boxedVectorBytes {
		return NewNil(), argTypeError("tostring", 1, BoxedVectorMetatable, argAt(args, 1))
	}
	return NewString(formatVector(boxComponents(u))), nil
}
