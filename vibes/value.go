package vibes

import "github.com/mgomes/vecscript/heap"

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRange
	KindBuiltin
	KindTable
	KindUserdata
	KindVector
)

// Value is a tagged script value. Tables, userdata and vectors carry a
// pointer to a heap object; every other kind is held inline.
type Value struct {
	kind ValueKind
	data any
}

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// BuiltinFunc is the signature shared by builtins, library functions and
// capability handlers. Arguments stay rooted on the state stack for the
// duration of the call. A function may allocate at most once after it has
// finished reading heap values it does not hold on the stack.
type BuiltinFunc func(st *State, args []Value) (Value, error)

type Range struct {
	Start int64
	End   int64
}

// object returns the heap object behind v, or nil for inline kinds.
func (v Value) object() heap.Object {
	switch v.kind {
	case KindTable:
		return v.data.(*Table)
	case KindUserdata:
		return v.data.(*Userdata)
	case KindVector:
		return v.data.(*Vector)
	default:
		return nil
	}
}
