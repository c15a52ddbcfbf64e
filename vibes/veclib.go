package vibes

import "github.com/mgomes/vecscript/vecmath"

const (
	VectorKindNative = "native"
	VectorKindBoxed  = "boxed"
)

// vectorKind abstracts over the two vector representations so the vec
// library is written once.
type vectorKind struct {
	check func(st *State, fn string, args []Value, i int) ([4]float32, error)
	make  func(st *State, c [4]float32) (Value, error)
	// index and indexAssign implement get and set. indexAssign is nil for
	// immutable kinds.
	index       BuiltinFunc
	indexAssign BuiltinFunc
	open        func(st *State) error
}

var nativeVectors = vectorKind{
	check: func(_ *State, fn string, args []Value, i int) ([4]float32, error) {
		return checkVector(fn, args, i)
	},
	make:  (*State).newVectorValue,
	index: nativeIndex,
}

// vectorLibrary builds the vec global for kind.
func vectorLibrary(kind vectorKind) Library {
	funcs := []LibraryFunc{
		{Name: "new", Fn: vecNew(kind)},
		{Name: "dot3", Fn: vecScalar(kind, "dot3", vecmath.Dot3)},
		{Name: "dot4", Fn: vecScalar(kind, "dot4", vecmath.Dot4)},
		{Name: "dot", Fn: vecScalar(kind, "dot", vecmath.Dot4)},
		{Name: "cross", Fn: vecBinary(kind, "cross", vecmath.Cross)},
		{Name: "length3", Fn: vecLength(kind, "length3", vecmath.Length3)},
		{Name: "length4", Fn: vecLength(kind, "length4", vecmath.Length4)},
		{Name: "length", Fn: vecLength(kind, "length", vecmath.Length4)},
		{Name: "normalize3", Fn: vecUnary(kind, "normalize3", vecmath.Normalize3)},
		{Name: "normalize4", Fn: vecUnary(kind, "normalize4", vecmath.Normalize4)},
		{Name: "normalize", Fn: vecUnary(kind, "normalize", vecmath.Normalize4)},
		{Name: "get", Fn: renamed("get", kind.index)},
		{Name: "add", Fn: vecOperator(CapAdd)},
		{Name: "sub", Fn: vecOperator(CapSub)},
		{Name: "mul", Fn: vecOperator(CapMul)},
		{Name: "div", Fn: vecOperator(CapDiv)},
		{Name: "unm", Fn: vecNegate},
	}
	if kind.indexAssign != nil {
		funcs = append(funcs, LibraryFunc{Name: "set", Fn: renamed("set", kind.indexAssign)})
	}

	return Library{
		Name:  "vec",
		Funcs: funcs,
		Open: func(st *State, lib *Table) error {
			if kind.open != nil {
				if err := kind.open(st); err != nil {
					return err
				}
			}
			zero, err := kind.make(st, vecmath.Zero())
			if err != nil {
				return err
			}
			st.SetField(lib, "zero", zero)
			one, err := kind.make(st, vecmath.One())
			if err != nil {
				return err
			}
			st.SetField(lib, "one", one)
			return nil
		},
	}
}

func vecNew(kind vectorKind) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		c, err := vectorComponents("new", args)
		if err != nil {
			return NewNil(), err
		}
		return kind.make(st, c)
	}
}

func vecScalar(kind vectorKind, fn string, op func(a, b [4]float32) float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		a, err := kind.check(st, fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		b, err := kind.check(st, fn, args, 2)
		if err != nil {
			return NewNil(), err
		}
		return NewFloat(float64(op(a, b))), nil
	}
}

func vecLength(kind vectorKind, fn string, op func(v [4]float32) float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		v, err := kind.check(st, fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		return NewFloat(float64(op(v))), nil
	}
}

func vecBinary(kind vectorKind, fn string, op func(a, b [4]float32) [4]float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		a, err := kind.check(st, fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		b, err := kind.check(st, fn, args, 2)
		if err != nil {
			return NewNil(), err
		}
		return kind.make(st, op(a, b))
	}
}

func vecUnary(kind vectorKind, fn string, op func(v [4]float32) [4]float32) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		v, err := kind.check(st, fn, args, 1)
		if err != nil {
			return NewNil(), err
		}
		return kind.make(st, op(v))
	}
}

// vecOperator exposes an arithmetic operator as a function so scripts can
// pcall it.
func vecOperator(op Capability) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		return st.arith(op, argAt(args, 1), argAt(args, 2))
	}
}

func vecNegate(st *State, args []Value) (Value, error) {
	return st.negate(argAt(args, 1))
}

// renamed reports argument errors of an index handler under the library
// function name.
func renamed(fn string, handler BuiltinFunc) BuiltinFunc {
	return func(st *State, args []Value) (Value, error) {
		v, err := handler(st, args)
		if argErr, ok := err.(*ArgError); ok {
			out := *argErr
			out.Func = fn
			return v, &out
		}
		return v, err
	}
}
